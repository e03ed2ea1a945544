package signature

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

/* Standard Webhooks verification for submissions the form host posts to the API
 * Signed content is {webhook-id}.{webhook-timestamp}.{body}, HMAC-SHA256, base64
 */

const (
	SecretPrefix = "whsec_"
	Version      = "v1"

	HeaderID        = "webhook-id"
	HeaderTimestamp = "webhook-timestamp"
	HeaderSignature = "webhook-signature"

	minSecretBytes   = 24
	maxSecretBytes   = 64
	maxBodyBytes     = 1 << 20
	DefaultTolerance = 5 * time.Minute
)

var (
	ErrMissingHeaders = errors.New("missing webhook signature headers")
	ErrTimestamp      = errors.New("webhook timestamp outside tolerance")
	ErrNoMatch        = errors.New("no matching webhook signature")
)

// Secret is a decoded whsec_ signing secret
type Secret []byte

// ParseSecret decodes a whsec_ prefixed base64 secret
func ParseSecret(encoded string) (Secret, error) {
	b64, ok := strings.CutPrefix(encoded, SecretPrefix)
	if !ok {
		return nil, fmt.Errorf("secret must start with %s prefix", SecretPrefix)
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 secret: %w", err)
	}
	if len(raw) < minSecretBytes || len(raw) > maxSecretBytes {
		return nil, fmt.Errorf("secret size must be between %d and %d bytes", minSecretBytes, maxSecretBytes)
	}
	return Secret(raw), nil
}

// String re-encodes the secret with its prefix
func (s Secret) String() string {
	return SecretPrefix + base64.StdEncoding.EncodeToString(s)
}

// Sign returns the header value "v1,<base64>" for a message
func Sign(secret Secret, msgID string, ts time.Time, body []byte) (string, error) {
	if msgID == "" || strings.Contains(msgID, ".") {
		return "", fmt.Errorf("invalid message id %q", msgID)
	}
	return Version + "," + base64.StdEncoding.EncodeToString(mac(secret, msgID, ts.Unix(), body)), nil
}

// ParseSignatureHeader splits the space-delimited header into the v1 digests it carries.
// Signatures of other versions are skipped.
func ParseSignatureHeader(header string) ([][]byte, error) {
	var digests [][]byte
	for _, part := range strings.Fields(header) {
		version, sig, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("invalid signature %q, expected version,signature", part)
		}
		if version != Version {
			continue
		}
		digest, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			return nil, fmt.Errorf("decoding signature: %w", err)
		}
		digests = append(digests, digest)
	}
	if len(digests) == 0 {
		return nil, fmt.Errorf("no %s signatures in header", Version)
	}
	return digests, nil
}

// Verify checks the message against every signature in the header
func Verify(secret Secret, msgID string, ts time.Time, body []byte, header string) error {
	digests, err := ParseSignatureHeader(header)
	if err != nil {
		return err
	}

	expected := mac(secret, msgID, ts.Unix(), body)
	for _, d := range digests {
		if hmac.Equal(d, expected) {
			return nil
		}
	}
	return ErrNoMatch
}

// Verifier authenticates inbound requests against one secret
type Verifier struct {
	secret    Secret
	tolerance time.Duration
	now       func() time.Time
}

// NewVerifier creates a verifier. A tolerance <= 0 uses DefaultTolerance.
func NewVerifier(secret Secret, tolerance time.Duration) *Verifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance, now: time.Now}
}

// SetNow replaces the time source used for the tolerance check
func (v *Verifier) SetNow(now func() time.Time) {
	v.now = now
}

// VerifyRequest checks the signature headers and restores the body for the next handler
func (v *Verifier) VerifyRequest(r *http.Request) ([]byte, error) {
	msgID := r.Header.Get(HeaderID)
	rawTS := r.Header.Get(HeaderTimestamp)
	header := r.Header.Get(HeaderSignature)
	if msgID == "" || rawTS == "" || header == "" {
		return nil, ErrMissingHeaders
	}

	unix, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing webhook timestamp: %w", err)
	}
	ts := time.Unix(unix, 0)
	if skew := v.now().Sub(ts); skew > v.tolerance || skew < -v.tolerance {
		return nil, ErrTimestamp
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if err := Verify(v.secret, msgID, ts, body, header); err != nil {
		return nil, err
	}
	return body, nil
}

func mac(secret Secret, msgID string, unix int64, body []byte) []byte {
	h := hmac.New(sha256.New, secret)
	fmt.Fprintf(h, "%s.%d.", msgID, unix)
	h.Write(body)
	return h.Sum(nil)
}
