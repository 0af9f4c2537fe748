// Package platform abstracts the ambient environment the recorder and the
// transcription handler depend on: whether the context is secure, the user
// agent, mobile detection, and microphone access.
package platform
