package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client talks to the platform's REST API. All mutating calls carry the
// bearer token; a missing token short-circuits before any network I/O.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

type ClientOption func(*Client)

func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = httpc }
}

func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) { c.token = token }
func (c *Client) Token() string         { return c.token }

// jsonResponse is the API's uniform envelope.
type jsonResponse struct {
	Status  string          `json:"status"` // "success" or "error"
	Data    json.RawMessage `json:"data"`
	ErrCode string          `json:"code,omitempty"`
	ErrMsg  string          `json:"message,omitempty"`
}

// doJSON performs one request and unmarshals the envelope's data field.
// Server errors come back as coded errors with the server's message
// verbatim.
func doJSON[T any](c *Client, ctx context.Context, method, path string, body any, authed bool) (T, error) {
	var zero T
	raw, err := c.doRaw(ctx, method, path, body, authed)
	if err != nil {
		return zero, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return out, nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body any, authed bool) (json.RawMessage, error) {
	if authed && c.token == "" {
		return nil, ErrMissingToken()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, ErrRequestFailed().SetDebug(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrRequestFailed().SetDebug(err)
	}

	var envelope jsonResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected response from %s %s (http %d): %w",
			method, path, resp.StatusCode, err)
	}

	if envelope.Status != "success" {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrUnauthorized()
		}
		return nil, serverError(envelope.ErrCode, envelope.ErrMsg, resp.StatusCode)
	}
	return envelope.Data, nil
}
