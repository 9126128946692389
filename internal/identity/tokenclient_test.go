package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestServer returns a token endpoint that counts calls and issues
// sequential tokens.
func newTestServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q, want refresh_token", got)
		}
		if got := r.Form.Get("refresh_token"); got == "" {
			t.Error("missing refresh_token field")
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id_token":   "token-" + string(rune('a'+*calls-1)),
			"expires_in": "3600",
		})
	}))
}

func TestTokenClient_NotAuthenticated(t *testing.T) {
	c := NewTokenClient("test-key", "")

	if c.Authenticated() {
		t.Error("empty refresh token should not count as authenticated")
	}
	if _, err := c.Token(context.Background(), false); err != ErrNotAuthenticated {
		t.Errorf("Token error = %v, want ErrNotAuthenticated", err)
	}
}

func TestTokenClient_CachesUntilExpiry(t *testing.T) {
	calls := 0
	srv := newTestServer(t, &calls)
	defer srv.Close()

	c := NewTokenClient("test-key", "refresh-1")
	c.SetEndpoint(srv.URL)

	tok1, err := c.Token(context.Background(), false)
	if err != nil {
		t.Fatalf("first Token: %v", err)
	}
	tok2, err := c.Token(context.Background(), false)
	if err != nil {
		t.Fatalf("second Token: %v", err)
	}

	if tok1 != tok2 {
		t.Errorf("cached token mismatch: %q vs %q", tok1, tok2)
	}
	if calls != 1 {
		t.Errorf("endpoint called %d times, want 1", calls)
	}
}

func TestTokenClient_ForceRefreshBypassesCache(t *testing.T) {
	calls := 0
	srv := newTestServer(t, &calls)
	defer srv.Close()

	c := NewTokenClient("test-key", "refresh-1")
	c.SetEndpoint(srv.URL)

	tok1, err := c.Token(context.Background(), false)
	if err != nil {
		t.Fatalf("first Token: %v", err)
	}
	tok2, err := c.Token(context.Background(), true)
	if err != nil {
		t.Fatalf("forced Token: %v", err)
	}

	if tok1 == tok2 {
		t.Error("force refresh should fetch a new token")
	}
	if calls != 2 {
		t.Errorf("endpoint called %d times, want 2", calls)
	}
}

func TestTokenClient_RefreshesWhenStale(t *testing.T) {
	calls := 0
	srv := newTestServer(t, &calls)
	defer srv.Close()

	c := NewTokenClient("test-key", "refresh-1")
	c.SetEndpoint(srv.URL)

	clock := time.Now()
	c.now = func() time.Time { return clock }

	if _, err := c.Token(context.Background(), false); err != nil {
		t.Fatalf("first Token: %v", err)
	}

	// Advance past the 1h expiry.
	clock = clock.Add(2 * time.Hour)

	if _, err := c.Token(context.Background(), false); err != nil {
		t.Fatalf("second Token: %v", err)
	}
	if calls != 2 {
		t.Errorf("endpoint called %d times, want 2", calls)
	}
}

func TestTokenClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad refresh token", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewTokenClient("test-key", "refresh-1")
	c.SetEndpoint(srv.URL)

	if _, err := c.Token(context.Background(), false); err == nil {
		t.Error("expected error for non-200 token response")
	}
}

func TestStatic(t *testing.T) {
	empty := &Static{}
	if empty.Authenticated() {
		t.Error("empty static provider should not be authenticated")
	}

	p := &Static{Value: "fixed"}
	if !p.Authenticated() {
		t.Error("static provider with value should be authenticated")
	}
	tok, err := p.Token(context.Background(), true)
	if err != nil || tok != "fixed" {
		t.Errorf("Token = %q, %v, want fixed, nil", tok, err)
	}
}
