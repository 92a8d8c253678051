package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redletters/rlauth/tokenstore"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithValidator replaces DefaultValidator.
func WithValidator(v Validator) Option {
	return func(r *Resolver) {
		r.validator = v
	}
}

// Resolver finds the auth token in the keyring or the fallback file and keeps the
// keyring entry up to date. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	keyring   tokenstore.CredentialStore
	fallback  tokenstore.TokenReader
	validator Validator
}

// NewResolver creates a Resolver over the given keyring and fallback tiers.
func NewResolver(keyring tokenstore.CredentialStore, fallback tokenstore.TokenReader, opts ...Option) (*Resolver, error) {
	if keyring == nil {
		return nil, fmt.Errorf("missing credential store")
	}
	if fallback == nil {
		return nil, fmt.Errorf("missing fallback token reader")
	}

	r := &Resolver{
		keyring:   keyring,
		fallback:  fallback,
		validator: DefaultValidator,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ResolveToken returns the token from the keyring, or from the fallback file if the
// keyring yields nothing. A keyring token that fails validation is reported as
// ErrInvalidFormat without consulting the fallback file.
func (r *Resolver) ResolveToken(ctx context.Context) (StoredAuthToken, error) {
	token, err := r.keyring.Get(ctx)
	if err == nil {
		return r.accept(ctx, token, SourceKeychain)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return StoredAuthToken{}, ctxErr
	}

	token, err = r.fallback.Read(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return StoredAuthToken{}, ctxErr
		}
		if !errors.Is(err, ErrNotFound) {
			slog.WarnContext(ctx, "fallback token file unreadable", "error", err)
		}
		return StoredAuthToken{}, ErrNotFound
	}

	return r.accept(ctx, token, SourceFile)
}

func (r *Resolver) accept(ctx context.Context, token string, source Source) (StoredAuthToken, error) {
	if err := r.validator.Validate(token); err != nil {
		slog.WarnContext(ctx, "stored token has invalid format", "source", source)
		return StoredAuthToken{}, err
	}

	slog.DebugContext(ctx, "auth token resolved", "source", source, "token", MaskToken(token))
	return StoredAuthToken{Token: token, Source: source}, nil
}

// StoreToken validates candidate and writes it to the keyring.
// The fallback file is never written.
func (r *Resolver) StoreToken(ctx context.Context, candidate string) error {
	if err := r.validator.Validate(candidate); err != nil {
		return err
	}

	if err := r.keyring.Set(ctx, candidate); err != nil {
		return err
	}

	slog.InfoContext(ctx, "auth token stored in keychain", "token", MaskToken(candidate))
	return nil
}

// DeleteToken removes the keyring entry. The fallback file is left untouched.
func (r *Resolver) DeleteToken(ctx context.Context) error {
	if err := r.keyring.Delete(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "auth token deleted from keychain")
	return nil
}
