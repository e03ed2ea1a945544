package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/spf13/viper"
)

/* Config reads .env (TOML) and the environment.
 * Getters fill in defaults for anything left unset.
 */

const (
	defaultPort               = "8080"
	defaultHTTPTimeoutSeconds = 30
	defaultReportTTLHours     = 168
	defaultReportLimit        = 500
	defaultFormsFile          = "forms.yaml"
	defaultLanguage           = "en"
	defaultSignatureTolerance = 300
)

type Config struct {
	Port string `mapstructure:"PORT"`

	WebhookURL             string `mapstructure:"WEBHOOK_URL"`
	AuthURL                string `mapstructure:"AUTH_URL"`
	AuthUsername           string `mapstructure:"AUTH_USERNAME"`
	AuthPassword           string `mapstructure:"AUTH_PASSWORD"`
	AuthInsecureSkipVerify bool   `mapstructure:"AUTH_INSECURE_SKIP_VERIFY"`
	Integration            string `mapstructure:"INTEGRATION_HANDLE"`
	HTTPTimeoutSeconds     int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	FormsFile string `mapstructure:"FORMS_FILE"`

	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`
	ReportTTLHours int    `mapstructure:"REPORT_TTL_HOURS"`
	ReportLimit    int    `mapstructure:"REPORT_LIMIT"`
	ReportLanguage string `mapstructure:"REPORT_LANGUAGE"`

	SigningSecret             string `mapstructure:"SIGNING_SECRET"`
	SignatureToleranceSeconds int    `mapstructure:"SIGNATURE_TOLERANCE_SECONDS"`
}

var keys = []string{
	"PORT",
	"WEBHOOK_URL", "AUTH_URL", "AUTH_USERNAME", "AUTH_PASSWORD", "AUTH_INSECURE_SKIP_VERIFY",
	"INTEGRATION_HANDLE", "HTTP_TIMEOUT_SECONDS",
	"FORMS_FILE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REPORT_TTL_HOURS", "REPORT_LIMIT", "REPORT_LANGUAGE",
	"SIGNING_SECRET", "SIGNATURE_TOLERANCE_SECONDS",
}

// GetConfig loads .env from the working directory. A missing file is fine:
// the environment alone can configure the service.
func GetConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from dir and overlays the environment
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// Webhook builds the integration settings
func (c *Config) Webhook() filemaker.Config {
	return filemaker.Config{
		WebhookURL:         c.WebhookURL,
		AuthURL:            c.AuthURL,
		Username:           c.AuthUsername,
		Password:           c.AuthPassword,
		InsecureSkipVerify: c.AuthInsecureSkipVerify,
		Integration:        c.Integration,
	}
}

// GetPort returns the HTTP port, defaulting to 8080
func (c *Config) GetPort() string {
	if c.Port == "" {
		return defaultPort
	}
	return c.Port
}

// GetHTTPTimeout returns the timeout for outbound requests
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return defaultHTTPTimeoutSeconds * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// GetFormsFile returns the form registry path
func (c *Config) GetFormsFile() string {
	if c.FormsFile == "" {
		return defaultFormsFile
	}
	return c.FormsFile
}

// GetReportTTL returns how long stored reports are kept
func (c *Config) GetReportTTL() time.Duration {
	if c.ReportTTLHours <= 0 {
		return defaultReportTTLHours * time.Hour
	}
	return time.Duration(c.ReportTTLHours) * time.Hour
}

// GetReportLimit returns how many reports are retained
func (c *Config) GetReportLimit() int {
	if c.ReportLimit <= 0 {
		return defaultReportLimit
	}
	return c.ReportLimit
}

// GetReportLanguage returns the language administrator messages are rendered in
func (c *Config) GetReportLanguage() string {
	if c.ReportLanguage == "" {
		return defaultLanguage
	}
	return c.ReportLanguage
}

// GetSignatureTolerance returns the accepted clock skew for signed submissions
func (c *Config) GetSignatureTolerance() time.Duration {
	if c.SignatureToleranceSeconds <= 0 {
		return defaultSignatureTolerance * time.Second
	}
	return time.Duration(c.SignatureToleranceSeconds) * time.Second
}

// UseRedis reports whether reports go to Redis instead of memory
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}
