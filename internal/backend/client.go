// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/gapgrabber-web/internal/errors"
)

// Client talks JSON to the outreach backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *zap.Logger
}

// New builds a client for baseURL. A zero timeout leaves backend calls
// bounded only by the caller's context.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: logger,
	}
}

// Do sends one request and decodes a 2xx body into out (when non-nil).
// op names the operation in the resulting RequestError.
func (c *Client) Do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Warn("backend request failed",
			zap.String("op", op), zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &appErrors.RequestError{Op: op, Detail: err.Error()}
	}
	defer resp.Body.Close()

	c.Logger.Debug("backend request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appErrors.NewRequestError(op, resp.StatusCode, statusText(resp), readDetail(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// Get is Do for GET requests.
func (c *Client) Get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.Do(ctx, op, http.MethodGet, path, query, nil, out)
}

func statusText(resp *http.Response) string {
	// resp.Status is "404 Not Found"; keep the text part.
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// readDetail extracts the backend's {"detail": ...} message. Non-string
// details (validation error lists) are returned as raw JSON.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return string(payload.Detail)
}
