package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenSource adapts a Resolver to oauth2.TokenSource so the auth token can be
// attached to outgoing requests with oauth2.Transport. The token is resolved on
// every call; nothing is cached.
type TokenSource struct {
	resolver *Resolver
}

// Compile-time check to ensure TokenSource implements oauth2.TokenSource
var _ oauth2.TokenSource = (*TokenSource)(nil)

// NewTokenSource creates a TokenSource backed by r.
func NewTokenSource(r *Resolver) (*TokenSource, error) {
	if r == nil {
		return nil, fmt.Errorf("missing resolver")
	}
	return &TokenSource{resolver: r}, nil
}

// Token returns the resolved auth token as a non-expiring bearer token.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	// oauth2.TokenSource.Token() has no context parameter
	resolved, err := ts.resolver.ResolveToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("resolving auth token: %w", err)
	}

	return &oauth2.Token{
		AccessToken: resolved.Token,
		TokenType:   "Bearer",
	}, nil
}
