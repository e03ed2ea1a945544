package filemaker

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultIntegration is the handle used in reports when Config.Integration is empty
const DefaultIntegration = "filemaker"

/* Config holds the integration settings supplied by the host
 * Uses value semantics: one copy is taken per operation and never mutated
 */
type Config struct {
	WebhookURL string
	AuthURL    string
	Username   string
	Password   string
	// InsecureSkipVerify disables TLS certificate verification for the auth
	// endpoint only. Operators must opt in explicitly.
	InsecureSkipVerify bool
	Integration        string
}

// ValidateAuth checks that the token exchange can be attempted
func (c Config) ValidateAuth() error {
	if c.AuthURL == "" || c.Username == "" || c.Password == "" {
		return fmt.Errorf("missing authentication configuration: authUrl, username, or password")
	}
	return nil
}

// ValidateWebhook checks that the webhook URL is an absolute http(s) URL
func (c Config) ValidateWebhook() error {
	return ValidateURL(c.WebhookURL)
}

// IntegrationName returns the handle used to label reports
func (c Config) IntegrationName() string {
	if c.Integration == "" {
		return DefaultIntegration
	}
	return c.Integration
}

// ValidateURL reports whether raw is an absolute http or https URL
func ValidateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("webhook url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("webhook url must use http or https: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("webhook url must be absolute: %s", raw)
	}
	return nil
}

// AuthToken is a bearer token obtained for a single operation
type AuthToken struct {
	Value      string
	ObtainedAt time.Time
}

/* Submission is a completed form instance owned by the host
 * The core only reads it
 */
type Submission struct {
	ID         string
	FormID     string
	FormHandle string
	Title      string
	Values     map[string]any
	CreatedAt  time.Time
}

// Form describes the host form a settings preview is generated for
type Form struct {
	ID      string
	Handle  string
	Title   string
	Webhook string // form-level override, empty means use Config.WebhookURL
}

// DispatchResult is the terminal value of one dispatch attempt
type DispatchResult struct {
	Success bool
	Error   *ErrorDetail
}

// ErrorDetail is the structured failure record handed to the ErrorReporter
type ErrorDetail struct {
	ID          string
	Integration string
	Operation   string
	Kind        ErrorKind
	Message     string
	Location    string
	AuthURL     string
	Payload     string
	Response    string
	CreatedAt   time.Time
}

// ResponseSnapshot captures what the webhook endpoint answered
type ResponseSnapshot struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// FormSettings is the result of a settings preview. The zero value means the preview failed.
type FormSettings struct {
	Response *ResponseSnapshot
	JSON     any
}

// IsEmpty reports whether the preview produced no data
func (s FormSettings) IsEmpty() bool {
	return s.Response == nil && s.JSON == nil
}

// Operation names used in reports, logs and metrics
const (
	OpSendPayload       = "send_payload"
	OpFetchFormSettings = "fetch_form_settings"
	OpFetchConnection   = "fetch_connection"
	OpFetchToken        = "fetch_token"
)
