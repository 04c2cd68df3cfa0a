package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client is the HTTP wrapper every backend call goes through. It resolves the
// base URL once, carries a cookie jar so the server session cookie is sent
// automatically, attaches the persisted bearer token when one exists, and
// normalizes failures. It never redirects and never touches the session
// store; 401 handling here is limited to erasing the stale token.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	logger  Logger
}

// ClientOption customizes client construction
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. The replacement should
// carry its own cookie jar if cookie auth is still wanted.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientLogger sets the logger
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client from cfg. The token store is required; use
// NewMemoryTokenStore when no durable storage is wired.
func NewClient(cfg Config, tokens TokenStore, opts ...ClientOption) *Client {
	if tokens == nil {
		panic("Missing TokenStore in crm client...")
	}

	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimRight(cfg.GetBaseURL(), "/"),
		tokens:  tokens,
		logger:  defLogger{},
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Tokens exposes the token store so the session store shares the same slot
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// BaseURL returns the resolved backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do dispatches method+path against the backend. body is JSON encoded when
// non-nil; out, when non-nil, receives the decoded 2xx response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return NewTransportError(err, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return NewTransportError(err, "failed to build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// The bearer token supplements the session cookie, it does not replace
	// it. A read failure on the store degrades to cookie-only auth.
	if token, terr := c.tokens.Get(ctx); terr == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if terr != nil {
		c.logger.Warn("token store read failed, sending cookie-only request: %s", terr)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return NewTransportError(err, "request to backend failed")
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return NewTransportError(err, "failed to read response body")
	}

	if res.StatusCode == http.StatusUnauthorized {
		// Best-effort cleanup of a rejected token. A login racing this
		// clear may lose its fresh token and will simply re-persist it on
		// the next login; we never retry the clear.
		if cerr := c.tokens.Clear(ctx); cerr != nil {
			c.logger.Warn("failed to clear rejected token: %s", cerr)
		}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var remote apiError
		_ = json.Unmarshal(payload, &remote)
		return NewResponseError(res.StatusCode, remote.text(), remote.Code)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return NewResponseError(res.StatusCode, "malformed response body", "").
				WithTextCode(TextCodeBadResponse)
		}
	}

	return nil
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
