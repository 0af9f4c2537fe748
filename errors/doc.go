// Package errors provides the structured error type shared by the recorder
// control, the transcription handler and the transcription backends.
//
// Every failure a user can see is an *AppError whose Message is the French
// text shown in the notification. The diagnostic cause is kept in Cause and
// only ever reaches the logs.
package errors
