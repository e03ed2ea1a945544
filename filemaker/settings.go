package filemaker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// FetchFormSettings sends a fake submission of the given form to its webhook
// (the form override, else the global URL) and returns the decoded response
// for previewing. On failure it reports the payload and raw response and
// returns empty settings.
func (d *Dispatcher) FetchFormSettings(ctx context.Context, formID string) (settings FormSettings) {
	start := d.clock.Now()
	stage := PayloadSerialization
	var values, raw []byte

	defer func() {
		if r := recover(); r != nil {
			d.fail(ctx, OpFetchFormSettings, stage, fmt.Errorf("recovered panic: %v", r), values, raw)
			settings = FormSettings{}
		}
		d.recorder.RecordOperation(ctx, OpFetchFormSettings, !settings.IsEmpty(), d.clock.Now().Sub(start))
	}()

	if d.forms == nil {
		d.fail(ctx, OpFetchFormSettings, PayloadSerialization, errors.New("no form source configured"), nil, nil)
		return FormSettings{}
	}

	form, err := d.forms.Form(ctx, formID)
	if err != nil {
		d.fail(ctx, OpFetchFormSettings, PayloadSerialization, fmt.Errorf("resolving form %q: %w", formID, err), nil, nil)
		return FormSettings{}
	}

	submission, err := d.forms.FakeSubmission(ctx, form)
	if err != nil {
		d.fail(ctx, OpFetchFormSettings, PayloadSerialization, fmt.Errorf("generating fake submission: %w", err), nil, nil)
		return FormSettings{}
	}

	webhook := form.Webhook
	if webhook == "" {
		webhook = d.cfg.WebhookURL
	}
	target := RenderURL(webhook, submission)

	body, values, err := d.buildBody(ctx, submission)
	if err != nil {
		d.fail(ctx, OpFetchFormSettings, PayloadSerialization, err, values, nil)
		return FormSettings{}
	}
	if err := ValidateURL(target); err != nil {
		d.fail(ctx, OpFetchFormSettings, WebhookTransport, err, values, nil)
		return FormSettings{}
	}

	stage = AuthTransport
	client, err := d.session(ctx)
	if err != nil {
		d.fail(ctx, OpFetchFormSettings, AuthTransport, err, values, nil)
		return FormSettings{}
	}

	stage = WebhookTransport
	resp, err := client.Send(ctx, http.MethodPost, target, body)
	if err != nil {
		d.fail(ctx, OpFetchFormSettings, WebhookTransport, err, values, nil)
		return FormSettings{}
	}
	raw = resp.Body
	if err := resp.Err(); err != nil {
		d.fail(ctx, OpFetchFormSettings, WebhookTransport, err, values, raw)
		return FormSettings{}
	}

	stage = ResponseParse
	var decoded any
	if err := d.codec.Unmarshal(raw, &decoded); err != nil {
		d.fail(ctx, OpFetchFormSettings, ResponseParse, fmt.Errorf("decoding webhook response: %w", err), values, raw)
		return FormSettings{}
	}

	d.logger.Info().
		Str("operation", OpFetchFormSettings).
		Str("form_id", formID).
		Str("host", Host(target)).
		Int("status", resp.StatusCode).
		Msg("form settings fetched")

	return FormSettings{
		Response: resp.Snapshot(),
		JSON:     decoded,
	}
}
