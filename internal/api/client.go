package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tableside/internal/store"
)

// HTTPClient lets tests swap the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the single HTTP client every view talks through. It injects
// the bearer token from the session store and maps failures to the
// error taxonomy in errors.go. No retry policy: a failed call surfaces
// immediately and the user retriggers it.
type Client struct {
	baseURL  string
	http     HTTPClient
	sessions *store.SessionStore
}

func NewClient(baseURL string, httpClient HTTPClient, sessions *store.SessionStore) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		sessions: sessions,
	}
}

// do runs one backend call. body, when non-nil, is JSON-encoded; out,
// when non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, authRequired bool, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req, authRequired); err != nil {
		return err
	}

	return c.send(req, out)
}

// doForm posts application/x-www-form-urlencoded, which is how the
// backend's login endpoint wants its credentials.
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out)
}

func (c *Client) authorize(req *http.Request, authRequired bool) error {
	token := c.sessions.Token()
	if token == "" {
		if authRequired {
			return ErrUnauthorized
		}
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapFailure(req, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) mapFailure(req *http.Request, resp *http.Response) error {
	detail := readDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// Only a rejected token forces the logout path. A 401 on a
		// call that sent no token (bad login credentials) is an
		// ordinary failure rendered in place, detail intact.
		if req.Header.Get("Authorization") != "" {
			return ErrUnauthorized
		}
	case http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%s: %w", detail, ErrNotFound)
		}
		return ErrNotFound
	}
	if detail == "" {
		detail = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Detail: detail}
}

// readDetail pulls the backend's {"detail": "..."} message, falling
// back to the raw body for plain-text errors.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return strings.TrimSpace(string(raw))
}
