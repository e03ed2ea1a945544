package filemaker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Host strips the http(s) scheme from a webhook URL.
// Host("https://example.com/api/hook") returns "example.com/api/hook".
func Host(rawURL string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return strings.TrimPrefix(rawURL, scheme)
		}
	}
	return rawURL
}

// hostHeader is the authority part of Host; net/http refuses Host values carrying a path
func hostHeader(rawURL string) string {
	h := Host(rawURL)
	if i := strings.IndexAny(h, "/?#"); i >= 0 {
		h = h[:i]
	}
	return h
}

// Response is what the webhook endpoint answered
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Err returns an error for 4xx and 5xx responses
func (r Response) Err() error {
	if r.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook endpoint returned status %d", r.StatusCode)
	}
	return nil
}

// Snapshot flattens the response for reports and previews
func (r Response) Snapshot() *ResponseSnapshot {
	headers := make(map[string]string, len(r.Header))
	for key, values := range r.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	return &ResponseSnapshot{
		StatusCode: r.StatusCode,
		Headers:    headers,
		Body:       string(r.Body),
	}
}

/* Client is the authenticated webhook client of a single operation
 * It is built from one freshly fetched token and reused for every request the operation makes
 */
type Client struct {
	http  *http.Client
	token AuthToken
}

// NewClient binds a token to an http.Client
func NewClient(httpClient *http.Client, token AuthToken) *Client {
	return &Client{
		http:  httpClient,
		token: token,
	}
}

// Token returns the bearer token the client sends
func (c *Client) Token() AuthToken {
	return c.token
}

// Send issues a single request. A nil body sends no Content-Type or Content-Length.
// Only transport failures are returned as errors; callers inspect the status.
func (c *Client) Send(ctx context.Context, method, rawURL string, body []byte) (Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}

	req.Host = hostHeader(rawURL)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token.Value)
	if body != nil {
		req.ContentLength = int64(len(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Content-Length", strconv.Itoa(len(body)))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
