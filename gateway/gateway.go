// Package gateway is the HTTP client for the clinic backend. It carries the
// two auth calls the session manager needs, plus the authorized-request
// wrapper every other domain call goes through.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	loginPath    = "/api/Auth/login"
	validatePath = "/api/Auth/validate"

	defaultTimeout = 15 * time.Second
)

// TokenSource supplies the current bearer token, or "" when no session is
// live. The session manager's snapshot accessor is the usual source.
type TokenSource func() string

// Client talks to the clinic backend.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	onUnauthorized func()
	log            zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     func() string { return "" },
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetTokenSource rewires where bearer tokens come from. The session manager
// is constructed after the client, so its snapshot accessor is attached
// here rather than at construction.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetOnUnauthorized registers the hook fired when any authorized call other
// than login comes back 401. The session manager registers its forced-logout
// entry point here; the hook runs at most once per response.
func (c *Client) SetOnUnauthorized(hook func()) {
	c.onUnauthorized = hook
}

// Login submits credentials. An explicit rejection by the backend is
// reported as ErrLoginRejected carrying the backend's message; anything
// that prevented an answer is ErrTransport.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, creds, &resp); err != nil {
		return nil, err
	}

	if !resp.Success || resp.Data == nil {
		message := resp.Message
		if message == "" {
			message = "login failed"
		}
		return nil, errors.Wrap(ErrLoginRejected, message)
	}

	return &LoginResult{
		Token:     resp.Data.Token,
		FullName:  resp.Data.FullName,
		Role:      resp.Data.Role,
		UserID:    resp.Data.UserID,
		ExpiresAt: resp.Data.ExpiresAt,
	}, nil
}

// ValidateToken asks the backend whether token is still good. An empty token
// is invalid without a round trip. The bool is only meaningful when err is
// nil: a transport failure is not a verdict on the token.
func (c *Client) ValidateToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+validatePath, strings.NewReader("{}"))
	if err != nil {
		return false, errors.Wrap(err, "[gateway.ValidateToken] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(ErrTransport, err.Error())
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusUnauthorized {
		return false, nil
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return false, errors.Wrapf(ErrRequestFailed, "status %d", httpResp.StatusCode)
	}

	var resp validateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return false, errors.Wrap(ErrTransport, err.Error())
	}
	return resp.Success, nil
}

// Do performs an authorized request and decodes the JSON response into out
// (out may be nil when the response body is irrelevant). A 401 triggers the
// OnUnauthorized hook and returns ErrUnauthorized.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[gateway.do] marshal body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[gateway.do] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(ErrTransport, err.Error())
	}
	defer httpResp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if httpResp.StatusCode == http.StatusUnauthorized {
		// 401 on the login call itself is a credential verdict, not a
		// session expiry.
		if path == loginPath {
			return errors.Wrap(ErrLoginRejected, "invalid credentials")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return errors.Wrapf(ErrRequestFailed, "%s %s: status %d", method, path, httpResp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return errors.Wrap(ErrTransport, err.Error())
	}
	return nil
}

// FetchPage retrieves one page of a paged collection resource, e.g.
// FetchPage[patients.Inpatient](ctx, c, "/api/Inpatients", 1, 10).
func FetchPage[T any](ctx context.Context, c *Client, resource string, pageNumber, pageSize int) (*Page[T], error) {
	query := url.Values{
		"pageNumber": {strconv.Itoa(pageNumber)},
		"pageSize":   {strconv.Itoa(pageSize)},
	}
	var page Page[T]
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("%s?%s", resource, query.Encode()), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
