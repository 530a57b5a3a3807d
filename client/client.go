// Package client is a typed HTTP client for the rythmons API. Reads are
// served from a short-lived in-process cache which every mutation purges,
// so a caller never observes its own write as stale.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rythmons/internal/dto/request"
	"rythmons/internal/dto/response"

	"github.com/jellydator/ttlcache/v3"
)

const (
	defaultCacheTTL   = 30 * time.Second
	defaultCookieName = "rythmons_session"
)

// Error is the API error surfaced to callers, carrying the stable code
// emitted by the server.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBearerToken sends the session token in the Authorization header
// instead of a cookie. Native clients use this.
func WithBearerToken() Option {
	return func(c *Client) { c.bearer = true }
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(c *Client) { c.cookieName = name }
}

// WithCacheTTL overrides how long cached reads stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

type Client struct {
	baseURL    string
	http       *http.Client
	token      string
	bearer     bool
	cookieName string
	cacheTTL   time.Duration
	cache      *ttlcache.Cache[string, []byte]
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: 15 * time.Second},
		cookieName: defaultCookieName,
		cacheTTL:   defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cache = ttlcache.New(
		ttlcache.WithTTL[string, []byte](c.cacheTTL),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go c.cache.Start()

	return c
}

// SetToken installs the session token used on subsequent requests and
// drops everything cached under the previous identity.
func (c *Client) SetToken(token string) {
	c.token = token
	c.cache.DeleteAll()
}

// Token returns the session token currently in use.
func (c *Client) Token() string {
	return c.token
}

// Close stops the cache janitor.
func (c *Client) Close() {
	c.cache.Stop()
}

// ==================== AUTH ====================

func (c *Client) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.AuthResponse, error) {
	var out response.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-up", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Session.Token
	return &out, nil
}

func (c *Client) SignIn(ctx context.Context, req *request.SignInRequest) (*response.AuthResponse, error) {
	var out response.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-in", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Session.Token
	return &out, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-out", nil, nil); err != nil {
		return err
	}
	c.token = ""
	c.cache.DeleteAll()
	return nil
}

// Session returns the current {user, session} pair, or nil when the token
// no longer resolves to an active session. Never cached.
func (c *Client) Session(ctx context.Context) (*response.AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/session", nil)
	if err != nil {
		return nil, err
	}

	env, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}

	var out response.AuthResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode session payload: %w", err)
	}
	return &out, nil
}

func (c *Client) PrivateData(ctx context.Context) (*response.PrivateDataResponse, error) {
	var out response.PrivateDataResponse
	if err := c.getCached(ctx, "/api/private-data", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgetPassword(ctx context.Context, req *request.ForgetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forget-password", req, nil)
}

func (c *Client) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", req, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	var out response.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/api/auth/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ==================== VENUES ====================

func (c *Client) MyVenues(ctx context.Context) ([]*response.VenueResponse, error) {
	var out []*response.VenueResponse
	if err := c.getCached(ctx, "/api/venues/mine", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyVenue(ctx context.Context, id string) (*response.VenueResponse, error) {
	var out response.VenueResponse
	if err := c.getCached(ctx, "/api/venues/mine/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Venue(ctx context.Context, id string) (*response.VenueResponse, error) {
	var out response.VenueResponse
	if err := c.getCached(ctx, "/api/venues/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getCached(ctx, "/api/venues/genres", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error) {
	var out response.VenueResponse
	if err := c.do(ctx, http.MethodPost, "/api/venues/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVenue(ctx context.Context, id string, req *request.VenueUpdateRequest) (*response.VenueResponse, error) {
	var out response.VenueResponse
	if err := c.do(ctx, http.MethodPatch, "/api/venues/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/venues/"+id, nil, nil)
}

// ==================== ARTISTS ====================

func (c *Client) MyArtists(ctx context.Context) ([]*response.ArtistResponse, error) {
	var out []*response.ArtistResponse
	if err := c.getCached(ctx, "/api/artists/mine", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateArtist(ctx context.Context, req *request.ArtistRequest) (*response.ArtistResponse, error) {
	var out response.ArtistResponse
	if err := c.do(ctx, http.MethodPost, "/api/artists/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArtist(ctx context.Context, id string, req *request.ArtistUpdateRequest) (*response.ArtistResponse, error) {
	var out response.ArtistResponse
	if err := c.do(ctx, http.MethodPatch, "/api/artists/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArtist(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/artists/"+id, nil, nil)
}

// ==================== HELPER METHODS ====================

// getCached serves a GET from the cache when fresh, hitting the network
// and filling the cache otherwise.
func (c *Client) getCached(ctx context.Context, path string, out any) error {
	if item := c.cache.Get(path); item != nil {
		return json.Unmarshal(item.Value(), out)
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	env, err := c.send(req)
	if err != nil {
		return err
	}

	c.cache.Set(path, env.Data, ttlcache.DefaultTTL)

	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// do performs a mutation (or uncached call), purging the whole cache on
// anything that is not a GET.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	env, err := c.send(req)
	if err != nil {
		return err
	}

	if method != http.MethodGet {
		c.cache.DeleteAll()
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		if c.bearer {
			req.Header.Set("Authorization", "Bearer "+c.token)
		} else {
			req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.token})
		}
	}

	return req, nil
}

func (c *Client) send(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}

	if !env.Status {
		code := env.Code
		if code == "" {
			code = "INTERNAL"
		}
		return nil, &Error{Code: code, Message: env.Message}
	}

	return &env, nil
}
