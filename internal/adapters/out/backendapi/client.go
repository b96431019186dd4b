package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"localshop/internal/pkg/errs"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. An empty token means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the HTTP client for the remote store's JSON API. It injects the
// bearer token and a request ID into every call and funnels 401 responses
// into a single unauthorized hook, so an invalidated token anywhere tears
// down the session everywhere.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUnauthorizedHook registers a callback fired whenever the store
// answers 401. The hook runs at most once per response, before the call
// returns its AuthError.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// NewClient creates a client for the store API at baseURL. The base URL
// carries the store's API prefix (e.g. http://localhost:5000/api); request
// paths are appended to it as-is.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if tokens == nil {
		return nil, errs.NewValueIsRequiredError("tokens")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// errNotFound marks a 404 so callers can attach the identifier they asked
// for.
var errNotFound = errors.New("not found")

// statusError carries a non-2xx response with the server's message.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("store answered %d: %s", e.Status, e.Message)
}

// envelope is the store's standard response wrapper. Login and register
// answer outside it and are decoded directly.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// apiMessage is the store's error response body.
type apiMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one JSON round trip. The response body is decoded into out
// when out is non-nil; enveloped endpoints pass unwrap to strip the data
// wrapper first.
func (c *Client) do(ctx context.Context, method, path string, body, out any, unwrap bool) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return errs.NewAuthErrorWithCause(
			method+" "+path, &statusError{Status: resp.StatusCode, Message: serverMessage(raw)})
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w: %s", method, path, errNotFound, serverMessage(raw))
	case resp.StatusCode >= http.StatusBadRequest:
		return &statusError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if unwrap {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return err
		}
		raw = env.Data
	}
	return json.Unmarshal(raw, out)
}

func serverMessage(raw []byte) string {
	var msg apiMessage
	if err := json.Unmarshal(raw, &msg); err == nil {
		if msg.Message != "" {
			return msg.Message
		}
		if msg.Error != "" {
			return msg.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
