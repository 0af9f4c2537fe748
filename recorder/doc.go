// Package recorder is the headless microphone toggle: it probes microphone
// access, tracks the flags that disable the control and renders a View on
// every visible change. Recording itself is done by the caller's Actions.
package recorder
