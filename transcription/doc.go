// Package transcription turns a captured audio clip into text.
//
// Handler is the client side: it validates and normalizes an AudioPayload,
// base64-encodes it, sends a Request to a Transcriber and hands the text to a
// ResultSink, reporting the outcome through a notify.Notifier.
//
// Transcriber is the remote call (see transcription/supabase). Provider is
// a speech-to-text engine (transcription/whisper, transcription/openai);
// Local turns an engine into a Transcriber, which is also how the local
// function emulator in devserver answers requests.
//
//	h := transcription.NewHandler(client, caps, transcription.SinkFunc(setAnswer), notifier)
//	err := h.Handle(ctx, transcription.NewPayload(clip, "audio/webm;codecs=opus"))
package transcription
