package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/khaledsAlshibani/portal-auth/internal/api"
	"github.com/khaledsAlshibani/portal-auth/internal/identity"
)

// ErrSessionExpired means the refresh path is exhausted: the session cannot
// be recovered without new credentials.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the portal-auth endpoints and carries the session cookies
// in its jar. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	state   AuthState
	flight  singleflight.Group
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client. A cookie jar is
// installed on it if it has none; the session cookies live there. The
// client's timeout applies to refresh calls the same as to ordinary
// requests; a timed-out refresh is a failed refresh and is not retried
// automatically.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger. Only request outcomes are logged, never
// token material.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// State returns the client's session cache.
func (c *Client) State() *AuthState {
	return &c.state
}

// Login authenticates with the given credentials and caches the returned
// identity. Not subject to refresh interception.
func (c *Client) Login(ctx context.Context, username, password string) (identity.Identity, error) {
	var res api.SessionResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/login",
		api.LoginRequest{Username: username, Password: password}, &res)
	if err != nil {
		return identity.Identity{}, err
	}
	c.state.Set(res.Identity)
	c.log.Debug().Str("username", res.Identity.Username).Msg("logged in")
	return res.Identity, nil
}

// Register creates an account and caches the implicitly authenticated
// identity. Not subject to refresh interception.
func (c *Client) Register(ctx context.Context, username, password string) (identity.Identity, error) {
	var res api.SessionResponse
	err := c.call(ctx, http.MethodPost, "/api/auth/register",
		api.RegisterRequest{Username: username, Password: password}, &res)
	if err != nil {
		return identity.Identity{}, err
	}
	c.state.Set(res.Identity)
	return res.Identity, nil
}

// Logout ends the session on the server and clears the local cache. The
// cache is cleared even if the call fails; logout is idempotent.
func (c *Client) Logout(ctx context.Context) error {
	err := c.call(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.state.Clear()
	return err
}

// Refresh exchanges the refresh cookie for a new access cookie and updates
// the cached identity. Concurrent callers share a single HTTP call.
func (c *Client) Refresh(ctx context.Context) (identity.Identity, error) {
	if err := c.refreshShared(ctx); err != nil {
		return identity.Identity{}, err
	}
	ident, _ := c.state.Current()
	return ident, nil
}

// Session fetches the authenticated identity from the server, confirming a
// provisional cached session. Subject to refresh interception.
func (c *Client) Session(ctx context.Context) (identity.Identity, error) {
	var res api.SessionResponse
	if err := c.Get(ctx, "/api/auth/session", &res); err != nil {
		return identity.Identity{}, err
	}
	c.state.Set(res.Identity)
	return res.Identity, nil
}

// Get performs a GET against a portal endpoint with refresh interception.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST against a portal endpoint with refresh interception.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

// request is the intercepted request path: on AUTHENTICATION_REQUIRED it
// refreshes once and replays the request once, marked as retried so a second
// failure propagates instead of looping.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	err := c.call(ctx, method, path, body, out)
	if !c.shouldRefresh(path, err) {
		return err
	}

	if rerr := c.refreshShared(ctx); rerr != nil {
		return fmt.Errorf("%w: %v", ErrSessionExpired, rerr)
	}

	c.log.Debug().Str("path", path).Msg("replaying request after refresh")
	return c.call(ctx, method, path, body, out)
}

// shouldRefresh decides whether a failure triggers the refresh coordinator:
// only opaque authentication failures, only for non-auth endpoints, and only
// while the client believes it is authenticated.
func (c *Client) shouldRefresh(path string, err error) bool {
	if isAuthEndpoint(path) || !c.state.IsAuthenticated() {
		return false
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.Status == http.StatusUnauthorized &&
		apiErr.Code == api.CodeAuthenticationRequired
}

// refreshShared is the single-flight refresh: the first caller performs the
// HTTP call, every concurrent caller awaits the same outcome. State updates
// happen inside the shared call so they apply exactly once, and the flight
// is always cleared by singleflight regardless of how the call exits.
func (c *Client) refreshShared(ctx context.Context) error {
	_, err, shared := c.flight.Do("refresh", func() (any, error) {
		var res api.SessionResponse
		if err := c.call(ctx, http.MethodPost, "/api/auth/refresh", nil, &res); err != nil {
			c.state.Clear()
			c.log.Debug().Msg("refresh failed, session cleared")
			return nil, err
		}
		c.state.Set(res.Identity)
		return res.Identity, nil
	})
	if shared {
		c.log.Debug().Msg("joined in-flight refresh")
	}
	return err
}

// call performs one HTTP round trip with no interception.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}
	return apiErr
}

func isAuthEndpoint(path string) bool {
	switch path {
	case "/api/auth/login", "/api/auth/register", "/api/auth/refresh", "/api/auth/logout":
		return true
	}
	return false
}
