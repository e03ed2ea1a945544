package filemaker_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/rs/zerolog"
)

/* Test helpers following the pattern from the repository tests
 * Remote endpoints are httptest servers, collaborators are mockery mocks
 */

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// authServer serves the token endpoint and counts requests
type authServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newAuthServer(t *testing.T, status int, body string) *authServer {
	t.Helper()
	as := &authServer{}
	as.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		as.hits.Add(1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(as.Close)
	return as
}

func newTokenServer(t *testing.T, token string) *authServer {
	t.Helper()
	return newAuthServer(t, http.StatusOK, `{"response":{"token":"`+token+`"},"messages":[{"code":"0","message":"OK"}]}`)
}

// capturedRequest is what the webhook endpoint received
type capturedRequest struct {
	Method        string
	Path          string
	Host          string
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// webhookServer records requests and answers with a fixed response
type webhookServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []capturedRequest
}

func newWebhookServer(t *testing.T, status int, body string) *webhookServer {
	t.Helper()
	ws := &webhookServer{}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		ws.mu.Lock()
		ws.requests = append(ws.requests, capturedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Host:          r.Host,
			Header:        r.Header.Clone(),
			ContentLength: r.ContentLength,
			Body:          data,
		})
		ws.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ws.Close)
	return ws
}

func (ws *webhookServer) Requests() []capturedRequest {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]capturedRequest(nil), ws.requests...)
}

func testConfig(authURL, webhookURL string) filemaker.Config {
	return filemaker.Config{
		WebhookURL: webhookURL,
		AuthURL:    authURL,
		Username:   "admin",
		Password:   "s3cret",
	}
}

func testSubmission() filemaker.Submission {
	return filemaker.Submission{
		ID:         "42",
		FormID:     "contact",
		FormHandle: "contactForm",
		Title:      "2026-03-14 09:26:53",
		Values: map[string]any{
			"name":  "Ada Lovelace",
			"email": "ada@example.com",
		},
		CreatedAt: testNow,
	}
}

func newTestAuthenticator() *filemaker.Authenticator {
	a := filemaker.NewAuthenticator(5*time.Second, zerolog.Nop())
	a.SetClock(fixedClock{now: testNow})
	return a
}

// operationRecord is one RecordOperation call
type operationRecord struct {
	Operation string
	OK        bool
}

type fakeRecorder struct {
	mu           sync.Mutex
	operations   []operationRecord
	authFailures []filemaker.ErrorKind
}

func (r *fakeRecorder) RecordOperation(_ context.Context, operation string, ok bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, operationRecord{Operation: operation, OK: ok})
}

func (r *fakeRecorder) RecordAuthFailure(_ context.Context, kind filemaker.ErrorKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authFailures = append(r.authFailures, kind)
}

// panickingReporter counts Report calls and panics on each one
type panickingReporter struct {
	calls atomic.Int32
}

func (r *panickingReporter) Report(context.Context, filemaker.ErrorDetail) {
	r.calls.Add(1)
	panic("reporter store down")
}
