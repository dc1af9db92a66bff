package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized marks an authorization-failure response from the
// remote API. It is the one error class with a global side effect: the
// caller's session gets torn down.
var ErrUnauthorized = errors.New("remote API rejected the token")

// APIError is a non-auth failure response from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote API returned status %d", e.Status)
	}
	return fmt.Sprintf("remote API returned status %d: %s", e.Status, e.Message)
}

// defaultTimeout bounds a single remote call end to end.
const defaultTimeout = 30 * time.Second

// client performs JSON round-trips against the remote API, attaching
// the bearer token and unwrapping the {data}/{error} envelopes.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, httpClient *http.Client) *client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// envelope is the remote response wrapper. Responses carry the payload
// under "data"; failures carry a human-readable "error".
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// do issues one request. A non-nil out receives the decoded "data"
// payload; when the response has no envelope the whole body is decoded
// into out instead.
func (c *client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rd = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
