package filemaker

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20
	tokenPath        = "response.token"
)

/* Authenticator exchanges username and password for a bearer token
 * Uses pointer semantics as it's an API, not data
 */
type Authenticator struct {
	client   *http.Client
	insecure *http.Client
	clock    Clock
	logger   zerolog.Logger
}

// NewAuthenticator creates an authenticator. A non-positive timeout defaults to 30s.
func NewAuthenticator(timeout time.Duration, logger zerolog.Logger) *Authenticator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // only used when Config.InsecureSkipVerify is set
	}

	return &Authenticator{
		client:   &http.Client{Timeout: timeout},
		insecure: &http.Client{Timeout: timeout, Transport: transport},
		clock:    SystemClock(),
		logger:   logger,
	}
}

// SetClock replaces the clock used to stamp tokens
func (a *Authenticator) SetClock(c Clock) { a.clock = c }

// FetchToken posts an empty body with Basic credentials to cfg.AuthURL and
// returns the token found at response.token. No network call is made when
// the auth configuration is incomplete.
func (a *Authenticator) FetchToken(ctx context.Context, cfg Config) (AuthToken, error) {
	if err := cfg.ValidateAuth(); err != nil {
		return AuthToken{}, newError(MissingAuthConfig, OpFetchToken, err)
	}

	client := a.client
	if cfg.InsecureSkipVerify {
		a.logger.Warn().
			Str("auth_url", cfg.AuthURL).
			Msg("TLS certificate verification is disabled for the auth endpoint")
		client = a.insecure
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.AuthURL, http.NoBody)
	if err != nil {
		return AuthToken{}, newError(AuthTransport, OpFetchToken, fmt.Errorf("creating auth request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(cfg.Username, cfg.Password)

	resp, err := client.Do(req)
	if err != nil {
		return AuthToken{}, newError(AuthTransport, OpFetchToken, fmt.Errorf("requesting token: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return AuthToken{}, newError(AuthTransport, OpFetchToken, fmt.Errorf("reading auth response: %w", err))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return AuthToken{}, newError(AuthTransport, OpFetchToken, fmt.Errorf("auth endpoint returned status %d", resp.StatusCode))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return AuthToken{}, newError(AuthEmptyResponse, OpFetchToken, errors.New("empty response from auth endpoint"))
	}
	if !gjson.ValidBytes(body) {
		return AuthToken{}, newError(AuthInvalidJSON, OpFetchToken, errors.New("invalid JSON response from auth endpoint"))
	}

	token := gjson.GetBytes(body, tokenPath)
	if !token.Exists() || token.Type == gjson.Null || token.String() == "" {
		return AuthToken{}, newError(AuthTokenMissing, OpFetchToken, errors.New("token not found in auth response or token is empty"))
	}

	return AuthToken{
		Value:      token.String(),
		ObtainedAt: a.clock.Now(),
	}, nil
}
