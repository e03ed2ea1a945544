package filemaker

import "fmt"

/* ErrorKind classifies every failure the integration can report
 * Each stage of the token exchange has its own kind so logs show exactly where it stopped
 */
type ErrorKind int

const (
	MissingAuthConfig ErrorKind = iota + 1
	AuthTransport
	AuthEmptyResponse
	AuthInvalidJSON
	AuthTokenMissing
	PayloadSerialization
	WebhookTransport
	ResponseParse
	ConnectionCheckFailed
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case MissingAuthConfig:
		return "missing_auth_config"
	case AuthTransport:
		return "auth_transport"
	case AuthEmptyResponse:
		return "auth_empty_response"
	case AuthInvalidJSON:
		return "auth_invalid_json"
	case AuthTokenMissing:
		return "auth_token_missing"
	case PayloadSerialization:
		return "payload_serialization"
	case WebhookTransport:
		return "webhook_transport"
	case ResponseParse:
		return "response_parse"
	case ConnectionCheckFailed:
		return "connection_check_failed"
	default:
		return "unknown"
	}
}

// NewErrorKind creates an ErrorKind from its string form. Unknown strings yield 0.
func NewErrorKind(s string) ErrorKind {
	for k := MissingAuthConfig; k <= ConnectionCheckFailed; k++ {
		if k.String() == s {
			return k
		}
	}
	return 0
}

// Validate checks if the kind is valid
func (k ErrorKind) Validate() error {
	if k < MissingAuthConfig || k > ConnectionCheckFailed {
		return fmt.Errorf("invalid error kind: %d", k)
	}
	return nil
}

// IsAuth returns true for failures raised by the token exchange
func (k ErrorKind) IsAuth() bool {
	return k >= MissingAuthConfig && k <= AuthTokenMissing
}
