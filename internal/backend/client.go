package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/config"
)

// Client talks to the platform REST backend. Every call attaches the caller's
// bearer token when one is supplied and decodes the common response envelope.
// There is no retry or request de-duplication; a 401 surfaces as
// appErrors.ErrSessionExpired for the handler layer to turn into a login
// redirect.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a backend client from configuration.
func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// envelope is the {success, message, data} wrapper on every backend response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) getJSON(ctx context.Context, path, token string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request payload")
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, token, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build backend request")
	}
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return appErrors.Clone(appErrors.ErrSessionExpired, backendMessage(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := backendMessage(raw)
		if msg == "" {
			msg = appErrors.ErrUpstream.Message
		}
		return appErrors.New("BACKEND_ERROR", resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status,
			fmt.Sprintf("decode backend response for %s", path))
	}
	return nil
}

// backendMessage extracts the message field from an error body, tolerating
// non-JSON responses.
func backendMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Message
}
