package filemaker

import (
	"context"
	"encoding/json"
	"time"
)

/* Small, focused interfaces for everything the host supplies
 * Interfaces abstract behavior, not things
 */

// PayloadBuilder renders a submission's field values into a generic mapping
type PayloadBuilder interface {
	Values(ctx context.Context, submission Submission) (map[string]any, error)
}

// ErrorReporter records a failure on the host's administrator-facing surface
type ErrorReporter interface {
	Report(ctx context.Context, detail ErrorDetail)
}

// TokenSource exchanges static credentials for a bearer token
type TokenSource interface {
	FetchToken(ctx context.Context, cfg Config) (AuthToken, error)
}

// FormSource resolves forms and generates fake submissions for previews
type FormSource interface {
	Form(ctx context.Context, formID string) (Form, error)
	FakeSubmission(ctx context.Context, form Form) (Submission, error)
}

// Clock abstracts time for tests
type Clock interface {
	Now() time.Time
}

// JSONCodec serializes payloads and decodes responses
type JSONCodec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Recorder receives operation outcomes for metrics
type Recorder interface {
	RecordOperation(ctx context.Context, operation string, ok bool, duration time.Duration)
	RecordAuthFailure(ctx context.Context, kind ErrorKind)
}

// UseCase defines the operations the host can trigger
type UseCase interface {
	SendPayload(ctx context.Context, submission Submission) bool
	Dispatch(ctx context.Context, submission Submission) DispatchResult
	FetchFormSettings(ctx context.Context, formID string) FormSettings
	FetchConnection(ctx context.Context) bool
	GetAuthToken(ctx context.Context) (string, bool)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock { return systemClock{} }

type stdCodec struct{}

func (stdCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (stdCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// StdCodec returns a JSONCodec backed by encoding/json
func StdCodec() JSONCodec { return stdCodec{} }

type nopRecorder struct{}

func (nopRecorder) RecordOperation(context.Context, string, bool, time.Duration) {}
func (nopRecorder) RecordAuthFailure(context.Context, ErrorKind)                {}
