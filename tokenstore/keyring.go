package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

// KeyringStore provides OS-native secure credential storage for the auth token.
// Uses macOS Keychain, Windows Credential Manager, or Linux Secret Service.
type KeyringStore struct {
	service string
	account string
}

// Compile-time check to ensure KeyringStore implements CredentialStore
var _ CredentialStore = (*KeyringStore)(nil)

// NewKeyringStore creates a KeyringStore addressing the secret stored under the given
// service and account identifiers.
func NewKeyringStore(service, account string) (*KeyringStore, error) {
	if service == "" {
		return nil, fmt.Errorf("service cannot be empty")
	}
	if account == "" {
		return nil, fmt.Errorf("account cannot be empty")
	}

	return &KeyringStore{
		service: service,
		account: account,
	}, nil
}

// Get returns the token from the system keyring.
// Absent entries, locked keyrings and backend errors all map to ErrNotFound.
// A stored value is returned as is, even when empty; judging it is up to the caller.
func (k *KeyringStore) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token, err := keyring.Get(k.service, k.account)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			slog.DebugContext(ctx, "keyring lookup failed", "service", k.service, "error", err)
		}
		return "", ErrNotFound
	}

	return token, nil
}

// Set persists the token to the system keyring, overwriting any existing value.
func (k *KeyringStore) Set(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := keyring.Set(k.service, k.account, value); err != nil {
		return keychainError("set", err)
	}
	return nil
}

// Delete removes the token from the system keyring. A missing entry is not an error.
func (k *KeyringStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := keyring.Delete(k.service, k.account)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.DebugContext(ctx, "keyring entry already absent", "service", k.service)
		return nil
	}
	if err != nil {
		return keychainError("delete", err)
	}
	return nil
}
