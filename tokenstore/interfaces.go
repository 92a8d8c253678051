package tokenstore

import "context"

// CredentialStore reads, writes and removes a single secret held at a fixed identity.
type CredentialStore interface {
	// Get returns the stored secret. Returns ErrNotFound for any lookup failure.
	Get(ctx context.Context) (string, error)

	// Set stores the secret, overwriting any existing value. No validation is done.
	Set(ctx context.Context, value string) error

	// Delete removes the secret. Removing an absent secret succeeds.
	Delete(ctx context.Context) error
}

// TokenReader reads a token from a read-only source.
type TokenReader interface {
	// Read returns the token. Returns ErrNotFound if the source holds none.
	Read(ctx context.Context) (string, error)
}
