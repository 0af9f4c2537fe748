package supabase

import "fmt"

// ErrorKind names the failure the functions client reports.
type ErrorKind string

const (
	// KindHTTP is a non-2xx answer from the function.
	KindHTTP ErrorKind = "FunctionsHTTPError"
	// KindFetch is a request that never got an answer.
	KindFetch ErrorKind = "FunctionsFetchError"
	// KindRelay is a failure of the Supabase relay in front of the function.
	KindRelay ErrorKind = "FunctionsRelayError"
)

var kindMessages = map[ErrorKind]string{
	KindHTTP:  "Edge Function returned a non-2xx status code",
	KindFetch: "Failed to send a request to the Edge Function",
	KindRelay: "Relay Error invoking the Edge Function",
}

// FunctionsError is returned by Transcribe when the invocation fails.
type FunctionsError struct {
	Kind ErrorKind
	// StatusCode is 0 for fetch errors.
	StatusCode int
	// Body is the raw response body, if any.
	Body []byte
	Err  error
}

func (e *FunctionsError) Error() string {
	msg := kindMessages[e.Kind]
	if e.StatusCode > 0 {
		return fmt.Sprintf("supabase: %s: %s (HTTP %d)", e.Kind, msg, e.StatusCode)
	}
	return fmt.Sprintf("supabase: %s: %s", e.Kind, msg)
}

func (e *FunctionsError) Unwrap() error { return e.Err }

// Message returns the message a functions client would report.
func (e *FunctionsError) Message() string {
	return kindMessages[e.Kind]
}
