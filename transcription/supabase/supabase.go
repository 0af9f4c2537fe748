package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/micscribe/httpclient"
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/provider"
	"github.com/kbukum/micscribe/transcription"
	"github.com/kbukum/micscribe/version"
)

// ProviderName is the registered name of the Supabase backend.
const ProviderName = "supabase"

const headerRelayError = "x-relay-error"

// Client invokes the transcription edge function of a Supabase project.
type Client struct {
	cfg     Config
	adapter *httpclient.Adapter
	rr      provider.RequestResponse[transcription.Request, *transcription.Response]
	log     *logger.Logger
	now     func() time.Time
}

var (
	_ transcription.Transcriber = (*Client)(nil)
	_ provider.Initializable    = (*Client)(nil)
	_ provider.Closeable        = (*Client)(nil)
)

// New creates a client. Options are passed to the underlying HTTP adapter.
func New(cfg Config, opts ...httpclient.Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	adapter, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.FunctionsURL(),
		Timeout: cfg.Timeout,
		Headers: map[string]string{
			"apikey":        cfg.AnonKey,
			"x-client-info": version.ClientInfo(),
		},
		Auth: httpclient.BearerAuth(cfg.AnonKey),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("supabase: %w", err)
	}

	c := &Client{
		cfg:     cfg,
		adapter: adapter,
		log:     logger.Get(ProviderName),
		now:     time.Now,
	}
	c.rr = provider.Adapt[transcription.Request, *transcription.Response, httpclient.Request, *httpclient.Response](
		functions{adapter: adapter},
		ProviderName,
		c.toInvocation,
		fromInvocation,
	)
	return c, nil
}

// Factory returns a provider.Factory building clients from a config map
// with the keys url, anon_key, function and timeout.
func Factory() provider.Factory[transcription.Transcriber] {
	return func(cfg map[string]any) (transcription.Transcriber, error) {
		return New(configFromMap(cfg))
	}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.rr.IsAvailable(ctx)
}

// Init rejects keys that a browser client must not hold.
func (c *Client) Init(_ context.Context) error {
	info, err := InspectKey(c.cfg.AnonKey, c.now())
	if err != nil {
		return err
	}
	if info.IsJWT {
		c.log.Debug("anon key accepted", logger.Fields("role", info.Role, "ref", info.Ref))
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.adapter.Close(ctx)
}

// Transcribe invokes the edge function with req as JSON body.
func (c *Client) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanEdgeFunction)
	defer span.End()

	resp, err := c.rr.Execute(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		c.log.WithContext(ctx).Warn("edge function invocation failed",
			logger.MergeWithError(logger.Fields("function", c.cfg.Function), err))
		return nil, err
	}
	return resp, nil
}

func (c *Client) toInvocation(ctx context.Context, req transcription.Request) (httpclient.Request, error) {
	requestID := uuid.NewString()
	observability.SetSpanAttribute(ctx, observability.AttrRequestID, requestID)
	return httpclient.Request{
		Method:  http.MethodPost,
		Path:    c.cfg.Function,
		Headers: map[string]string{"x-request-id": requestID},
		Body:    req,
	}, nil
}

// fromInvocation decodes a JSON answer. Other content types carry no
// transcript and yield an empty response.
func fromInvocation(resp *httpclient.Response) (*transcription.Response, error) {
	out := &transcription.Response{}
	if !strings.Contains(resp.Header("Content-Type"), "application/json") || len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return nil, fmt.Errorf("supabase: decode function response: %w", err)
	}
	return out, nil
}

// functions maps adapter failures onto FunctionsError.
type functions struct {
	adapter *httpclient.Adapter
}

func (f functions) Name() string                         { return ProviderName }
func (f functions) IsAvailable(ctx context.Context) bool { return f.adapter.IsAvailable(ctx) }

func (f functions) Execute(ctx context.Context, req httpclient.Request) (*httpclient.Response, error) {
	resp, err := f.adapter.Do(ctx, req)
	if resp == nil {
		if err == nil {
			return nil, &FunctionsError{Kind: KindFetch}
		}
		return nil, &FunctionsError{Kind: KindFetch, Err: err}
	}
	if resp.Header(headerRelayError) == "true" {
		return nil, &FunctionsError{Kind: KindRelay, StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	if err != nil || !resp.IsSuccess() {
		return nil, &FunctionsError{Kind: KindHTTP, StatusCode: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return resp, nil
}
