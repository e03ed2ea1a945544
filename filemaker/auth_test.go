package filemaker_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_FetchToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success - returns token exactly", func(t *testing.T) {
		var (
			method, contentType, user, pass string
			basicOK                         bool
			body                            []byte
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			contentType = r.Header.Get("Content-Type")
			user, pass, basicOK = r.BasicAuth()
			body, _ = io.ReadAll(r.Body)
			_, _ = io.WriteString(w, `{"response":{"token":"abc123"}}`)
		}))
		defer srv.Close()

		token, err := newTestAuthenticator().FetchToken(ctx, testConfig(srv.URL, "https://example.com/hook"))

		require.NoError(t, err)
		assert.Equal(t, "abc123", token.Value)
		assert.Equal(t, testNow, token.ObtainedAt)
		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "application/json", contentType)
		assert.True(t, basicOK)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "s3cret", pass)
		assert.Empty(t, body)
	})

	t.Run("error - missing configuration makes no network call", func(t *testing.T) {
		srv := newTokenServer(t, "abc123")

		cases := map[string]filemaker.Config{
			"missing auth url": {Username: "admin", Password: "s3cret"},
			"missing username": {AuthURL: srv.URL, Password: "s3cret"},
			"missing password": {AuthURL: srv.URL, Username: "admin"},
			"all missing":      {},
		}

		for name, cfg := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := newTestAuthenticator().FetchToken(ctx, cfg)

				require.Error(t, err)
				assert.Equal(t, filemaker.MissingAuthConfig, filemaker.KindOf(err))
			})
		}
		assert.Zero(t, srv.hits.Load())
	})

	t.Run("error - distinct kinds for bad responses", func(t *testing.T) {
		cases := []struct {
			name string
			body string
			want filemaker.ErrorKind
		}{
			{"empty body", "", filemaker.AuthEmptyResponse},
			{"whitespace body", "  \n", filemaker.AuthEmptyResponse},
			{"not json", "<html>bad gateway</html>", filemaker.AuthInvalidJSON},
			{"truncated json", `{"response":{"token":`, filemaker.AuthInvalidJSON},
			{"no response object", `{"messages":[{"message":"OK"}]}`, filemaker.AuthTokenMissing},
			{"no token", `{"response":{}}`, filemaker.AuthTokenMissing},
			{"empty token", `{"response":{"token":""}}`, filemaker.AuthTokenMissing},
			{"null token", `{"response":{"token":null}}`, filemaker.AuthTokenMissing},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				srv := newAuthServer(t, http.StatusOK, tc.body)

				_, err := newTestAuthenticator().FetchToken(ctx, testConfig(srv.URL, ""))

				require.Error(t, err)
				assert.Equal(t, tc.want, filemaker.KindOf(err))
				assert.Contains(t, filemaker.LocationOf(err), "auth.go:")
			})
		}
	})

	t.Run("error - error status is a transport failure", func(t *testing.T) {
		srv := newAuthServer(t, http.StatusUnauthorized, `{"messages":[{"code":"212","message":"Invalid user account"}]}`)

		_, err := newTestAuthenticator().FetchToken(ctx, testConfig(srv.URL, ""))

		require.Error(t, err)
		assert.Equal(t, filemaker.AuthTransport, filemaker.KindOf(err))
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("error - connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := newTestAuthenticator().FetchToken(ctx, testConfig(url, ""))

		require.Error(t, err)
		assert.Equal(t, filemaker.AuthTransport, filemaker.KindOf(err))
	})

	t.Run("tls - verification is on by default", func(t *testing.T) {
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"response":{"token":"tls-token"}}`)
		}))
		defer srv.Close()

		_, err := newTestAuthenticator().FetchToken(ctx, testConfig(srv.URL, ""))

		require.Error(t, err)
		assert.Equal(t, filemaker.AuthTransport, filemaker.KindOf(err))
	})

	t.Run("tls - opt-in skip verify accepts self-signed certificate", func(t *testing.T) {
		srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"response":{"token":"tls-token"}}`)
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL, "")
		cfg.InsecureSkipVerify = true

		token, err := newTestAuthenticator().FetchToken(ctx, cfg)

		require.NoError(t, err)
		assert.Equal(t, "tls-token", token.Value)
	})
}
