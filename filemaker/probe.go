package filemaker

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	probeStatusPath  = "messages.0.message"
	probePayloadPath = "response.data.0.fieldData.webhook_payload"
	probeStatusOK    = "OK"
)

// FetchConnection issues a GET against the webhook URL and reports whether
// the endpoint answered with status message "OK" and a non-null
// webhook_payload on its first record. Any failure is reported and yields false.
func (d *Dispatcher) FetchConnection(ctx context.Context) (ok bool) {
	start := d.clock.Now()
	stage := AuthTransport

	defer func() {
		if r := recover(); r != nil {
			d.fail(ctx, OpFetchConnection, stage, fmt.Errorf("recovered panic: %v", r), nil, nil)
			ok = false
		}
		d.recorder.RecordOperation(ctx, OpFetchConnection, ok, d.clock.Now().Sub(start))
	}()

	if err := d.cfg.ValidateWebhook(); err != nil {
		d.fail(ctx, OpFetchConnection, WebhookTransport, err, nil, nil)
		return false
	}

	client, err := d.session(ctx)
	if err != nil {
		d.fail(ctx, OpFetchConnection, AuthTransport, err, nil, nil)
		return false
	}

	stage = WebhookTransport
	resp, err := client.Send(ctx, http.MethodGet, d.cfg.WebhookURL, nil)
	if err != nil {
		d.fail(ctx, OpFetchConnection, WebhookTransport, err, nil, nil)
		return false
	}
	if err := resp.Err(); err != nil {
		d.fail(ctx, OpFetchConnection, WebhookTransport, err, nil, resp.Body)
		return false
	}

	stage = ResponseParse
	if !gjson.ValidBytes(resp.Body) {
		d.fail(ctx, OpFetchConnection, ResponseParse, errors.New("invalid JSON response from webhook endpoint"), nil, resp.Body)
		return false
	}

	status := gjson.GetBytes(resp.Body, probeStatusPath)
	payload := gjson.GetBytes(resp.Body, probePayloadPath)
	if status.String() != probeStatusOK || !payload.Exists() || payload.Type == gjson.Null {
		err := fmt.Errorf("connection check failed: status %q, webhook_payload present: %t",
			status.String(), payload.Exists() && payload.Type != gjson.Null)
		d.fail(ctx, OpFetchConnection, ConnectionCheckFailed, err, nil, resp.Body)
		return false
	}

	d.logger.Info().
		Str("operation", OpFetchConnection).
		Str("host", Host(d.cfg.WebhookURL)).
		Msg("connection check passed")

	return true
}

// GetAuthToken fetches a token with the configured credentials. Failures are
// reported and return ("", false).
func (d *Dispatcher) GetAuthToken(ctx context.Context) (token string, ok bool) {
	start := d.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			d.fail(ctx, OpFetchToken, AuthTransport, fmt.Errorf("recovered panic: %v", r), nil, nil)
			token, ok = "", false
		}
		d.recorder.RecordOperation(ctx, OpFetchToken, ok, d.clock.Now().Sub(start))
	}()

	client, err := d.session(ctx)
	if err != nil {
		d.fail(ctx, OpFetchToken, AuthTransport, err, nil, nil)
		return "", false
	}
	return client.Token().Value, true
}
