// Package remote implements the AuthService collaborator contract over
// HTTP+JSON. The session machine only sees the interface; transport
// details (endpoints, bearer token, envelope shape) stay here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mekdim/sessionkit"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.org".
	BaseURL string
	// Timeout bounds each request. Defaults to 10s.
	Timeout time.Duration
	// Logger defaults to a nop logger.
	Logger zerolog.Logger
	// HTTPClient overrides the underlying client; Timeout is ignored when
	// set.
	HTTPClient *http.Client
}

// Client is an HTTP implementation of [sessionkit.AuthService] and
// [sessionkit.PasswordChanger]. It holds the bearer token issued at login
// and attaches it to subsequent requests.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger

	mu    sync.Mutex
	token string
}

// NewClient validates the base URL and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.New("base url must be http or https")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		base: base,
		http: hc,
		log:  cfg.Logger,
	}, nil
}

/*
====================================
WIRE SHAPES
====================================
*/

type userPayload struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Language string `json:"language_preference"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		User  *userPayload `json:"user,omitempty"`
		Token string       `json:"token,omitempty"`
	} `json:"data,omitempty"`
	Err *struct {
		Code    string                  `json:"code"`
		Details sessionkit.ErrorDetails `json:"details,omitempty"`
	} `json:"error,omitempty"`
}

func toUser(p *userPayload) *sessionkit.User {
	if p == nil {
		return nil
	}
	return &sessionkit.User{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Role:     p.Role,
		Language: p.Language,
	}
}

/*
====================================
AUTHSERVICE OPERATIONS
====================================
*/

// Login exchanges credentials for a user record and bearer token.
func (c *Client) Login(ctx context.Context, creds sessionkit.Credentials) (*sessionkit.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	if err != nil {
		return nil, err
	}
	c.adoptToken(env)
	return c.userFrom(env, "login")
}

// Register creates an account; on success the new session token is adopted.
func (c *Client) Register(ctx context.Context, data sessionkit.Registration) (*sessionkit.User, error) {
	body := map[string]string{
		"full_name":           data.FullName,
		"email":               data.Email,
		"password":            data.Password,
		"language_preference": data.Language,
	}
	if data.Phone != "" {
		body["phone"] = data.Phone
	}
	env, err := c.do(ctx, http.MethodPost, "/api/auth/register", body)
	if err != nil {
		return nil, err
	}
	c.adoptToken(env)
	return c.userFrom(env, "register")
}

// Logout notifies the backend and drops the bearer token. The token is
// dropped even when the request fails; the machine treats logout as
// best-effort anyway.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return err
}

// CurrentUser fetches the session's user record for rehydration. A missing
// or expired token fails locally without a network round trip.
func (c *Client) CurrentUser(ctx context.Context) (*sessionkit.User, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token == "" {
		return nil, &sessionkit.RemoteError{Code: "SESSION_EXPIRED", Message: "no session token"}
	}
	if exp, ok := tokenExpiry(token); ok && time.Now().After(exp) {
		return nil, &sessionkit.RemoteError{Code: "SESSION_EXPIRED", Message: "session token expired"}
	}

	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return c.userFrom(env, "current user")
}

// ChangePassword implements [sessionkit.PasswordChanger].
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/change-password", map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	})
	return err
}

/*
====================================
TOKEN HANDLING
====================================
*/

// SetToken seeds the bearer token, e.g. one persisted alongside the session
// cache entry.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, empty when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// TokenExpiry reports the expiry claim of the current token, when present.
func (c *Client) TokenExpiry() (time.Time, bool) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	return tokenExpiry(token)
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client never trusts the claims for authorization; the check only avoids a
// doomed round trip with a token the server will reject on age alone.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (c *Client) adoptToken(env *envelope) {
	if env.Data == nil || env.Data.Token == "" {
		return
	}
	c.mu.Lock()
	c.token = env.Data.Token
	c.mu.Unlock()
}

/*
====================================
TRANSPORT
====================================
*/

func (c *Client) userFrom(env *envelope, op string) (*sessionkit.User, error) {
	if env.Data == nil || env.Data.User == nil {
		return nil, fmt.Errorf("%s: response carried no user", op)
	}
	return toUser(env.Data.User), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.Lock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("%s %s: http %d", method, path, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		return nil, c.remoteError(&env, resp.StatusCode)
	}
	return &env, nil
}

func (c *Client) remoteError(env *envelope, status int) error {
	re := &sessionkit.RemoteError{Message: env.Message}
	if env.Err != nil {
		re.Code = sessionkit.ErrorCode(env.Err.Code)
		re.Details = env.Err.Details
	}
	if re.Code == "" && re.Message == "" {
		re.Message = fmt.Sprintf("request failed with http %d", status)
	}
	c.log.Debug().Str("code", string(re.Code)).Int("status", status).Msg("remote error")
	return re
}
