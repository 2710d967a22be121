// Package client is the typed API client for the platform backend. It
// mirrors the server's endpoint contracts: requests are serialized from
// typed values, success payloads are checked against the declared response
// schema, and canonical error bodies decode into *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chefos/platform/pkg/schema"
)

// Error is the decoded canonical error payload. Callers branch on it with
// errors.As; anything that is not an *Error is a transport failure.
type Error struct {
	StatusCode int            `json:"statusCode"`
	ErrorText  string         `json:"error"`
	Message    string         `json:"message"`
	Validation []schema.Issue `json:"validation,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %d %s: %s", e.StatusCode, e.ErrorText, e.Message)
}

// Client calls the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option adjusts the client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends the given bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession returns a copy of the client authenticated with token. The
// original client is unchanged, so one base client can serve many sessions.
func (c *Client) WithSession(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Product is a catalogue entry as the API exposes it.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	AccessToken string   `json:"accessToken"`
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

// Health is the liveness payload.
type Health struct {
	StatusCode int     `json:"statusCode"`
	Status     string  `json:"status"`
	Uptime     float64 `json:"uptime"`
}

// Version is the backend's build version.
type Version struct {
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Patch   int    `json:"patch"`
	Version string `json:"version"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.call(ctx, http.MethodPost, "/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, loginResponseSchema, &out)
	return out, err
}

// ListProducts fetches the catalogue.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	err := c.call(ctx, http.MethodGet, "/products", nil, productListSchema, &out)
	return out, err
}

// UpsertProduct creates the product when its ID is zero, otherwise replaces
// it.
func (c *Client) UpsertProduct(ctx context.Context, p Product) (Product, error) {
	payload := map[string]any{
		"name":  p.Name,
		"price": p.Price,
	}
	if p.ID != 0 {
		payload["id"] = p.ID
	}
	var out Product
	err := c.call(ctx, http.MethodPost, "/products", payload, productSchema, &out)
	return out, err
}

// DeleteProduct removes the product. Deleting a missing product succeeds.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, "/products", map[string]any{"id": id}, nil, nil)
}

// GetHealth fetches the liveness payload.
func (c *Client) GetHealth(ctx context.Context) (Health, error) {
	var out Health
	err := c.call(ctx, http.MethodGet, "/healthz", nil, healthResponseSchema, &out)
	return out, err
}

// GetVersion fetches the backend build version.
func (c *Client) GetVersion(ctx context.Context) (Version, error) {
	var out Version
	err := c.call(ctx, http.MethodGet, "/version", nil, versionResponseSchema, &out)
	return out, err
}

// call performs one round trip. On non-2xx it decodes the canonical error
// body; on 2xx it checks the payload against contract before unmarshalling
// into out.
func (c *Client) call(ctx context.Context, method, path string, payload any, contract schema.Schema, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if contract == nil || out == nil {
		return nil
	}

	decoded, err := schema.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if _, issues := contract.Parse(nil, decoded); len(issues) > 0 {
		return &Error{
			StatusCode: resp.StatusCode,
			ErrorText:  "Bad Response",
			Message:    "Response doesn't match the schema",
			Validation: issues,
		}
	}
	return json.Unmarshal(raw, out)
}

// decodeError turns a non-2xx body into *Error when it matches the
// canonical shape, otherwise a generic transport error.
func decodeError(status int, raw []byte) error {
	var decoded Error
	if err := json.Unmarshal(raw, &decoded); err == nil && decoded.StatusCode != 0 && decoded.Message != "" {
		return &decoded
	}
	return fmt.Errorf("backend returned status %d", status)
}
