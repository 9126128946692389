// Package identity provides the authenticated-identity boundary: a check for
// a signed-in user and bearer tokens on demand.
package identity

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when an operation requires a signed-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// Provider supplies bearer credentials for API calls. Any identity backend
// satisfying this contract is substitutable.
type Provider interface {
	// Authenticated reports whether a user is currently signed in.
	Authenticated() bool
	// Token returns a bearer token. With forceRefresh a cached token is
	// never reused; a fresh one is obtained from the identity backend.
	Token(ctx context.Context, forceRefresh bool) (string, error)
}

// Static is a fixed-token provider for tests and offline use.
type Static struct {
	Value string
}

func (s *Static) Authenticated() bool {
	return s.Value != ""
}

func (s *Static) Token(_ context.Context, _ bool) (string, error) {
	if s.Value == "" {
		return "", ErrNotAuthenticated
	}
	return s.Value, nil
}

// Verify implementations at compile time.
var (
	_ Provider = (*Static)(nil)
	_ Provider = (*TokenClient)(nil)
)
