// Package httpclient is the HTTP transport used by the remote transcription
// backends. It resolves paths against a base URL, applies default headers and
// authentication, encodes JSON and multipart bodies, and classifies failures
// into *Error values.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:    "supabase",
//	    BaseURL: "https://abc.supabase.co",
//	    Auth:    httpclient.BearerAuth(anonKey),
//	})
//
//	resp, err := httpclient.Post[Result](client, ctx, "/functions/v1/transcribe-audio", body)
//
// Adapter also satisfies provider.RequestResponse so it can be wrapped by the
// provider middleware chain.
package httpclient
