package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	prev := configDir
	configDir = dir
	t.Cleanup(func() { configDir = prev })
}

func newCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(out)
	return cmd
}

func TestToken_UsesConfiguredTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(slow.Close)

	writeEnv(t, `
WEBHOOK_URL = "https://fm.example.com/hook"
AUTH_URL = "`+slow.URL+`"
AUTH_USERNAME = "admin"
AUTH_PASSWORD = "s3cret"
HTTP_TIMEOUT_SECONDS = 1
`)

	start := time.Now()
	err := token(newCommand(io.Discard), nil)

	assert.ErrorIs(t, err, errFailed)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestProbe_PrintsHost(t *testing.T) {
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":{"token":"abc123"}}`)
	}))
	t.Cleanup(auth.Close)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"messages":[{"message":"OK"}],"response":{"data":[{"fieldData":{"webhook_payload":"{}"}}]}}`)
	}))
	t.Cleanup(hook.Close)

	writeEnv(t, `
WEBHOOK_URL = "`+hook.URL+`"
AUTH_URL = "`+auth.URL+`"
AUTH_USERNAME = "admin"
AUTH_PASSWORD = "s3cret"
`)

	var out bytes.Buffer
	require.NoError(t, probe(newCommand(&out), nil))
	assert.Equal(t, "✓ Connection OK ("+strings.TrimPrefix(hook.URL, "http://")+")\n", out.String())
}
