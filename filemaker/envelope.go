package filemaker

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Envelope is the wire body the FileMaker endpoint expects
type Envelope struct {
	FieldData FieldData `json:"fieldData"`
}

// FieldData wraps the submission values serialized as a JSON string
type FieldData struct {
	WebhookPayload string `json:"webhook_payload"`
}

// NewEnvelope serializes values and wraps them. It returns the envelope
// together with the serialized values, which callers keep as the payload snapshot.
func NewEnvelope(codec JSONCodec, values map[string]any) (Envelope, []byte, error) {
	if values == nil {
		values = map[string]any{}
	}
	encoded, err := codec.Marshal(values)
	if err != nil {
		return Envelope{}, nil, fmt.Errorf("marshaling payload values: %w", err)
	}
	return Envelope{FieldData: FieldData{WebhookPayload: string(encoded)}}, encoded, nil
}

// Bytes returns the JSON encoding of the envelope
func (e Envelope) Bytes(codec JSONCodec) ([]byte, error) {
	body, err := codec.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshaling envelope: %w", err)
	}
	return body, nil
}

// ParseEnvelope decodes a request body produced by Envelope.Bytes
func ParseEnvelope(codec JSONCodec, data []byte) (Envelope, error) {
	var e Envelope
	if err := codec.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("unmarshaling envelope: %w", err)
	}
	return e, nil
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RenderURL replaces {handle} placeholders in a webhook URL with submission
// values. Placeholders in the path are path-escaped and those after "?" are
// query-escaped. {id}, {formId} and {formHandle} refer to the submission
// itself. Unknown placeholders are left untouched.
func RenderURL(rawURL string, submission Submission) string {
	if !strings.Contains(rawURL, "{") {
		return rawURL
	}
	path, query, hasQuery := strings.Cut(rawURL, "?")
	rendered := renderPlaceholders(path, submission, url.PathEscape)
	if hasQuery {
		rendered += "?" + renderPlaceholders(query, submission, url.QueryEscape)
	}
	return rendered
}

func renderPlaceholders(s string, submission Submission, escape func(string) string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		value, ok := submissionValue(submission, match[1:len(match)-1])
		if !ok {
			return match
		}
		return escape(value)
	})
}

func submissionValue(s Submission, key string) (string, bool) {
	switch key {
	case "id":
		return s.ID, true
	case "formId":
		return s.FormID, true
	case "formHandle":
		return s.FormHandle, true
	}
	v, ok := s.Values[key]
	if !ok || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}
