package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("success - reads .env", func(t *testing.T) {
		dir := t.TempDir()
		content := `
WEBHOOK_URL = "https://fm.example.com/fmi/data/vLatest/databases/Web/layouts/Contact/records"
AUTH_URL = "https://fm.example.com/fmi/data/vLatest/databases/Web/sessions"
AUTH_USERNAME = "admin"
AUTH_PASSWORD = "s3cret"
AUTH_INSECURE_SKIP_VERIFY = true
HTTP_TIMEOUT_SECONDS = 10
REDIS_ADDR = "localhost:6379"
REPORT_LANGUAGE = "pt-BR"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

		cfg, err := Load(dir)
		require.NoError(t, err)

		wh := cfg.Webhook()
		assert.Equal(t, "https://fm.example.com/fmi/data/vLatest/databases/Web/layouts/Contact/records", wh.WebhookURL)
		assert.Equal(t, "admin", wh.Username)
		assert.Equal(t, "s3cret", wh.Password)
		assert.True(t, wh.InsecureSkipVerify)
		assert.Equal(t, "filemaker", wh.IntegrationName())
		assert.Equal(t, 10*time.Second, cfg.GetHTTPTimeout())
		assert.True(t, cfg.UseRedis())
		assert.Equal(t, "pt-BR", cfg.GetReportLanguage())
	})

	t.Run("success - environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(`PORT = "9000"`), 0o600))
		t.Setenv("PORT", "9100")
		t.Setenv("FORMS_FILE", "/etc/forms.yaml")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "9100", cfg.GetPort())
		assert.Equal(t, "/etc/forms.yaml", cfg.GetFormsFile())
	})

	t.Run("success - missing file uses environment only", func(t *testing.T) {
		t.Setenv("AUTH_USERNAME", "env-user")

		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "env-user", cfg.AuthUsername)
	})

	t.Run("error - invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(`PORT = = "x"`), 0o600))

		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, "8080", cfg.GetPort())
	assert.Equal(t, 30*time.Second, cfg.GetHTTPTimeout())
	assert.Equal(t, "forms.yaml", cfg.GetFormsFile())
	assert.Equal(t, 168*time.Hour, cfg.GetReportTTL())
	assert.Equal(t, 500, cfg.GetReportLimit())
	assert.Equal(t, "en", cfg.GetReportLanguage())
	assert.Equal(t, 5*time.Minute, cfg.GetSignatureTolerance())
	assert.False(t, cfg.UseRedis())
}
