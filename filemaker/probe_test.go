package filemaker_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/marcelsud/formie-filemaker/filemaker/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const probeOK = `{
	"response": {"data": [{"fieldData": {"webhook_payload": "{\"name\":\"Ada\"}"}, "recordId": "1"}]},
	"messages": [{"code": "0", "message": "OK"}]
}`

func TestDispatcher_FetchConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("success - OK status and webhook payload present", func(t *testing.T) {
		auth := newTokenServer(t, "abc123")
		hook := newWebhookServer(t, http.StatusOK, probeOK)
		reporter := mocks.NewErrorReporter(t)
		recorder := &fakeRecorder{}

		d := newTestDispatcher(testConfig(auth.URL, hook.URL+"/layouts/Inbox/records"), nil, reporter, filemaker.WithRecorder(recorder))

		require.True(t, d.FetchConnection(ctx))

		requests := hook.Requests()
		require.Len(t, requests, 1)
		req := requests[0]
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		assert.Empty(t, req.Header.Get("Content-Type"))
		assert.Empty(t, req.Body)
		assert.Equal(t, []operationRecord{{Operation: filemaker.OpFetchConnection, OK: true}}, recorder.operations)
	})

	t.Run("failure - classified combinations", func(t *testing.T) {
		cases := []struct {
			name   string
			status int
			body   string
			kind   filemaker.ErrorKind
		}{
			{
				name:   "status not OK",
				status: http.StatusOK,
				body:   `{"response":{"data":[{"fieldData":{"webhook_payload":"x"}}]},"messages":[{"message":"Error"}]}`,
				kind:   filemaker.ConnectionCheckFailed,
			},
			{
				name:   "null webhook payload",
				status: http.StatusOK,
				body:   `{"response":{"data":[{"fieldData":{"webhook_payload":null}}]},"messages":[{"message":"OK"}]}`,
				kind:   filemaker.ConnectionCheckFailed,
			},
			{
				name:   "no records",
				status: http.StatusOK,
				body:   `{"response":{"data":[]},"messages":[{"message":"OK"}]}`,
				kind:   filemaker.ConnectionCheckFailed,
			},
			{
				name:   "no messages",
				status: http.StatusOK,
				body:   `{"response":{"data":[{"fieldData":{"webhook_payload":"x"}}]}}`,
				kind:   filemaker.ConnectionCheckFailed,
			},
			{
				name:   "invalid json",
				status: http.StatusOK,
				body:   `<html>maintenance</html>`,
				kind:   filemaker.ResponseParse,
			},
			{
				name:   "server error",
				status: http.StatusServiceUnavailable,
				body:   probeOK,
				kind:   filemaker.WebhookTransport,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				auth := newTokenServer(t, "abc123")
				hook := newWebhookServer(t, tc.status, tc.body)
				reporter := mocks.NewErrorReporter(t)
				reporter.On("Report", ctx, matchDetail(func(d filemaker.ErrorDetail) bool {
					return d.Kind == tc.kind && d.Operation == filemaker.OpFetchConnection && d.Response == tc.body
				})).Return().Once()

				d := newTestDispatcher(testConfig(auth.URL, hook.URL), nil, reporter)

				assert.False(t, d.FetchConnection(ctx))
			})
		}
	})

	t.Run("failure - network error", func(t *testing.T) {
		auth := newTokenServer(t, "abc123")
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()
		reporter := mocks.NewErrorReporter(t)
		reporter.On("Report", ctx, mock.Anything).Return().Once()

		d := newTestDispatcher(testConfig(auth.URL, url), nil, reporter)

		assert.False(t, d.FetchConnection(ctx))
	})

	t.Run("failure - panicking reporter never escapes", func(t *testing.T) {
		auth := newTokenServer(t, "abc123")
		hook := newWebhookServer(t, http.StatusOK, `{"messages":[{"message":"Error"}]}`)
		reporter := &panickingReporter{}

		d := newTestDispatcher(testConfig(auth.URL, hook.URL), nil, reporter)

		assert.NotPanics(t, func() {
			assert.False(t, d.FetchConnection(ctx))
		})
		assert.Equal(t, int32(1), reporter.calls.Load())
	})

	t.Run("failure - token error stops the probe", func(t *testing.T) {
		auth := newAuthServer(t, http.StatusOK, "")
		hook := newWebhookServer(t, http.StatusOK, probeOK)
		reporter := mocks.NewErrorReporter(t)
		reporter.On("Report", ctx, matchDetail(func(d filemaker.ErrorDetail) bool {
			return d.Kind == filemaker.AuthEmptyResponse
		})).Return().Once()

		d := newTestDispatcher(testConfig(auth.URL, hook.URL), nil, reporter)

		assert.False(t, d.FetchConnection(ctx))
		assert.Empty(t, hook.Requests())
	})
}
