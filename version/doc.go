// Package version exposes build information set with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/micscribe/version.Version=1.2.0"
package version
