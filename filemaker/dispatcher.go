package filemaker

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

/* Dispatcher orchestrates the authenticate -> build payload -> send flow
 * Uses pointer semantics as it's an API, not data
 * It holds no per-operation state: every operation opens its own session
 */
type Dispatcher struct {
	cfg      Config
	builder  PayloadBuilder
	reporter ErrorReporter
	tokens   TokenSource
	forms    FormSource
	http     *http.Client
	clock    Clock
	codec    JSONCodec
	recorder Recorder
	logger   zerolog.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithTokenSource replaces the default Authenticator
func WithTokenSource(ts TokenSource) Option {
	return func(d *Dispatcher) { d.tokens = ts }
}

// WithForms sets the form source used by FetchFormSettings
func WithForms(fs FormSource) Option {
	return func(d *Dispatcher) { d.forms = fs }
}

// WithHTTPClient sets the http.Client webhook requests go through
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.http = c }
}

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(d *Dispatcher) { d.clock = c }
}

// WithCodec replaces the encoding/json codec
func WithCodec(c JSONCodec) Option {
	return func(d *Dispatcher) { d.codec = c }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher creates a dispatcher with dependency injection
func NewDispatcher(cfg Config, builder PayloadBuilder, reporter ErrorReporter, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		builder:  builder,
		reporter: reporter,
		clock:    SystemClock(),
		codec:    StdCodec(),
		recorder: nopRecorder{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.http == nil {
		d.http = &http.Client{Timeout: defaultTimeout}
	}
	if d.tokens == nil {
		d.tokens = NewAuthenticator(d.http.Timeout, d.logger)
	}
	return d
}

// Config returns the integration settings the dispatcher was built with
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// SendPayload dispatches a submission and reports whether it was delivered
func (d *Dispatcher) SendPayload(ctx context.Context, submission Submission) bool {
	return d.Dispatch(ctx, submission).Success
}

// Dispatch builds the envelope for a submission, fetches a fresh token and
// POSTs it to the webhook URL. Every failure is reported exactly once and
// returned in the result; nothing escapes to the caller. A response with a
// status below 400 is a success and its body is not inspected.
func (d *Dispatcher) Dispatch(ctx context.Context, submission Submission) (result DispatchResult) {
	start := d.clock.Now()
	stage := PayloadSerialization
	var values []byte

	defer func() {
		if r := recover(); r != nil {
			detail := d.fail(ctx, OpSendPayload, stage, fmt.Errorf("recovered panic: %v", r), values, nil)
			result = DispatchResult{Error: &detail}
		}
		d.recorder.RecordOperation(ctx, OpSendPayload, result.Success, d.clock.Now().Sub(start))
	}()

	body, values, err := d.buildBody(ctx, submission)
	if err != nil {
		return d.failed(ctx, OpSendPayload, PayloadSerialization, err, values, nil)
	}

	target := RenderURL(d.cfg.WebhookURL, submission)
	if err := ValidateURL(target); err != nil {
		return d.failed(ctx, OpSendPayload, WebhookTransport, err, values, nil)
	}

	stage = AuthTransport
	client, err := d.session(ctx)
	if err != nil {
		return d.failed(ctx, OpSendPayload, AuthTransport, err, values, nil)
	}

	stage = WebhookTransport
	resp, err := client.Send(ctx, http.MethodPost, target, body)
	if err != nil {
		return d.failed(ctx, OpSendPayload, WebhookTransport, err, values, nil)
	}
	if err := resp.Err(); err != nil {
		return d.failed(ctx, OpSendPayload, WebhookTransport, err, values, resp.Body)
	}

	d.logger.Info().
		Str("operation", OpSendPayload).
		Str("host", Host(target)).
		Str("submission_id", submission.ID).
		Int("status", resp.StatusCode).
		Msg("payload delivered")

	return DispatchResult{Success: true}
}

// buildBody renders the submission and returns the serialized envelope and values
func (d *Dispatcher) buildBody(ctx context.Context, submission Submission) ([]byte, []byte, error) {
	if d.builder == nil {
		return nil, nil, fmt.Errorf("no payload builder configured")
	}
	fields, err := d.builder.Values(ctx, submission)
	if err != nil {
		return nil, nil, fmt.Errorf("generating payload values: %w", err)
	}
	envelope, values, err := NewEnvelope(d.codec, fields)
	if err != nil {
		return nil, nil, err
	}
	body, err := envelope.Bytes(d.codec)
	if err != nil {
		return nil, values, err
	}
	return body, values, nil
}

// session fetches a fresh token and binds it to a client for one operation
func (d *Dispatcher) session(ctx context.Context) (*Client, error) {
	token, err := d.tokens.FetchToken(ctx, d.cfg)
	if err != nil {
		kind := KindOf(err)
		if kind == 0 {
			kind = AuthTransport
		}
		d.recorder.RecordAuthFailure(ctx, kind)
		return nil, err
	}
	return NewClient(d.http, token), nil
}

func (d *Dispatcher) failed(ctx context.Context, op string, fallback ErrorKind, err error, payload, response []byte) DispatchResult {
	detail := d.reportAt(ctx, op, fallback, err, payload, response, callerLocation(2))
	return DispatchResult{Error: &detail}
}

// fail reports err on behalf of its caller
func (d *Dispatcher) fail(ctx context.Context, op string, fallback ErrorKind, err error, payload, response []byte) ErrorDetail {
	return d.reportAt(ctx, op, fallback, err, payload, response, callerLocation(2))
}

// reportAt builds the error detail and hands it to the reporter. Classified
// errors keep the location recorded when they were created.
func (d *Dispatcher) reportAt(ctx context.Context, op string, fallback ErrorKind, err error, payload, response []byte, location string) ErrorDetail {
	kind := KindOf(err)
	if kind == 0 {
		kind = fallback
	}
	if loc := LocationOf(err); loc != "" {
		location = loc
	}

	detail := ErrorDetail{
		Integration: d.cfg.IntegrationName(),
		Operation:   op,
		Kind:        kind,
		Message:     err.Error(),
		Location:    location,
		Payload:     string(payload),
		Response:    string(response),
		CreatedAt:   d.clock.Now(),
	}
	if kind.IsAuth() {
		detail.AuthURL = d.cfg.AuthURL
	}

	d.deliver(ctx, detail)
	return detail
}

// deliver hands detail to the reporter. A panicking reporter is logged and
// swallowed so the failure is never reported twice.
func (d *Dispatcher) deliver(ctx context.Context, detail ErrorDetail) {
	if d.reporter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("operation", detail.Operation).
				Str("error_kind", detail.Kind.String()).
				Str("location", detail.Location).
				Interface("panic", r).
				Msg("error reporter panicked")
		}
	}()
	d.reporter.Report(ctx, detail)
}
