package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultEndpoint = "https://securetoken.googleapis.com/v1/token"

	// expirySkew retires cached tokens slightly early so a token handed to
	// a caller does not expire mid-request.
	expirySkew = 30 * time.Second
)

// TokenClient exchanges a long-lived refresh token for short-lived ID tokens
// at a Google Identity Toolkit style token endpoint. Tokens are cached until
// close to expiry; force-refresh bypasses the cache.
type TokenClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client

	mu           sync.Mutex
	refreshToken string
	idToken      string
	expiresAt    time.Time

	now func() time.Time // test seam
}

// NewTokenClient creates a token client. The refresh token identifies the
// signed-in user; an empty one means nobody is signed in.
func NewTokenClient(apiKey, refreshToken string) *TokenClient {
	return &TokenClient{
		endpoint:     defaultEndpoint,
		apiKey:       apiKey,
		refreshToken: refreshToken,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
}

// SetEndpoint overrides the token endpoint (used by tests and self-hosted
// identity emulators).
func (c *TokenClient) SetEndpoint(endpoint string) {
	c.endpoint = strings.TrimSuffix(endpoint, "/")
}

// Authenticated reports whether a refresh token is present.
func (c *TokenClient) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken != ""
}

// Token returns a bearer ID token, refreshing it from the identity backend
// when the cached one is stale or forceRefresh is set.
func (c *TokenClient) Token(ctx context.Context, forceRefresh bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refreshToken == "" {
		return "", ErrNotAuthenticated
	}

	if !forceRefresh && c.idToken != "" && c.now().Add(expirySkew).Before(c.expiresAt) {
		return c.idToken, nil
	}

	return c.refresh(ctx)
}

// refresh calls the token endpoint. Caller holds c.mu.
func (c *TokenClient) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.refreshToken)

	reqURL := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var result struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"` // seconds, string-encoded
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.IDToken == "" {
		return "", fmt.Errorf("token endpoint returned no id token")
	}

	ttl := time.Hour
	if secs, err := strconv.Atoi(result.ExpiresIn); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}

	c.idToken = result.IDToken
	c.expiresAt = c.now().Add(ttl)
	if result.RefreshToken != "" {
		// The backend may rotate refresh tokens.
		c.refreshToken = result.RefreshToken
	}

	return c.idToken, nil
}
