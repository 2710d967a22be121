// Package identity talks to the external identity provider. Authentication
// uses the resource-owner password grant; the provider remains the source of
// truth for credentials and permissions.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chefos/platform/internal/errs"
	"github.com/chefos/platform/internal/logging"
)

// Session is the provider's view of an authenticated user.
type Session struct {
	AccessToken string
	Subject     string
	Email       string
	Permissions []string
}

// Client calls the identity provider over HTTPS.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	audience     string
	httpClient   *http.Client
	logger       *logging.Logger
}

// Option adjusts the client, used by tests to point at a fake provider.
type Option func(*Client)

// WithBaseURL overrides the provider URL derived from the domain.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given provider tenant.
func New(domain, clientID, clientSecret, audience string, logger *logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      "https://" + domain,
		clientID:     clientID,
		clientSecret: clientSecret,
		audience:     audience,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type userinfoResponse struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// LoginWithPassword exchanges credentials for an access token and resolves
// the user's profile. Rejected credentials map to a 403 fault; every other
// provider failure propagates as-is after being logged.
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) (Session, error) {
	token, err := c.passwordGrant(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	info, err := c.userinfo(ctx, token.AccessToken)
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken: token.AccessToken,
		Subject:     info.Sub,
		Email:       info.Email,
		Permissions: permissionsFromToken(token.AccessToken),
	}, nil
}

func (c *Client) passwordGrant(ctx context.Context, email, password string) (tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("audience", c.audience)
	form.Set("scope", "openid profile email")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Error("identity provider unreachable")
		return tokenResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return tokenResponse{}, errs.Forbidden("Invalid credentials.")
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("identity provider returned status %d", resp.StatusCode)
		c.logger.WithContext(ctx).WithError(err).Error("token exchange failed")
		return tokenResponse{}, err
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	return token, nil
}

func (c *Client) userinfo(ctx context.Context, accessToken string) (userinfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/userinfo", nil)
	if err != nil {
		return userinfoResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Error("identity provider unreachable")
		return userinfoResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("userinfo returned status %d", resp.StatusCode)
		c.logger.WithContext(ctx).WithError(err).Error("userinfo lookup failed")
		return userinfoResponse{}, err
	}

	var info userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return userinfoResponse{}, fmt.Errorf("decode userinfo response: %w", err)
	}
	return info, nil
}

// permissionsFromToken reads the permissions claim without verifying the
// signature. The token was just issued by the provider over TLS; the claim
// is informational, not an authorization decision.
func permissionsFromToken(accessToken string) []string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return []string{}
	}

	raw, ok := claims["permissions"].([]any)
	if !ok {
		return []string{}
	}
	perms := make([]string, 0, len(raw))
	for _, p := range raw {
		if s, ok := p.(string); ok {
			perms = append(perms, s)
		}
	}
	return perms
}
