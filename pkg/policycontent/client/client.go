// Package client implements the HTTP repository for the policy-content
// backend. Every method issues a single request (no retries), converts non-2xx
// responses into typed *APIError values, and passes successful entity
// responses through the policycontent normalizers before returning them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials carries the bearer token used on every request. The token is
// supplied explicitly at construction; the client never reads ambient
// storage. An empty token sends unauthenticated requests.
type Credentials struct {
	BearerToken string
}

// Client is the HTTP repository for content, workshops and collaborations.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   Credentials
	log     *slog.Logger
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// New creates a client for the API rooted at baseURL.
func New(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithLogger sets the structured logger used for request logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// do issues one request and returns the raw response body. A 204 response
// yields a nil body and no error. Non-2xx responses become *APIError carrying
// the server-supplied error or message field when the body parses, else a
// generic HTTP-status message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if c.creds.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.BearerToken)
	}
	// Multipart requests pass their own boundary-bearing content type; JSON
	// requests set application/json here. GETs send neither.
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: serverMessage(data, resp.StatusCode)}
		c.log.Error("request failed", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload for %s: %w", path, err)
	}
	return c.do(ctx, method, path, nil, bytes.NewReader(encoded), "application/json")
}

// notFound resolves a 404 to the entity's domain sentinel so callers can use
// errors.Is without inspecting status codes. The *APIError stays in the chain.
func notFound(err error, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

// serverMessage extracts the error or message field from a JSON error body.
func serverMessage(data []byte, statusCode int) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fmt.Sprintf("request failed with status %d (%s)", statusCode, http.StatusText(statusCode))
}

// decodeObject parses a response body into a raw record for normalization.
func decodeObject(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode response object: %w", err)
	}
	return raw, nil
}

// decodeList parses a response body into raw records. A body that is not a
// JSON array is coerced to an empty list rather than surfaced as an error.
func decodeList(data []byte) []map[string]any {
	var rawList []json.RawMessage
	if err := json.Unmarshal(data, &rawList); err != nil {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(rawList))
	for _, raw := range rawList {
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			continue
		}
		out = append(out, record)
	}
	return out
}

// decodeStringList parses a response body into a string list with the same
// coercion: anything that is not an array becomes empty.
func decodeStringList(data []byte) []string {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return []string{}
	}
	return list
}
