// Command micscribe records an answer from a file stand-in for the
// microphone and transcribes it through the transcribe-audio function, or
// serves a local emulator of that function.
//
//	micscribe transcribe -file clip.webm [-mime audio/webm] [-config path] [-backend whisper]
//	micscribe devserver [-addr :54321] [-engine whisper]
//	micscribe version
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/micscribe/errors"
	"github.com/kbukum/micscribe/version"
)

const usage = `usage: micscribe <command> [flags]

commands:
  transcribe   transcribe a recorded clip
  devserver    serve a local transcribe-audio function
  version      print version information
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "transcribe":
		err = runTranscribe(ctx, args[1:], stdout)
	case "devserver":
		err = runDevserver(ctx, args[1:])
	case "version":
		err = printVersion(stdout)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			fmt.Fprintln(stderr, errors.UserMessage(appErr))
			if appErr.Cause == nil {
				return 1
			}
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func printVersion(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(version.Get())
}
