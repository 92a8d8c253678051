package tokenstore

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvStore provides read-only access to a token held in an environment variable.
// Used to hand a token to the CLI without exposing it in the process arguments.
type EnvStore struct {
	envKey string
}

// Compile-time check to ensure EnvStore implements TokenReader
var _ TokenReader = (*EnvStore)(nil)

// NewEnvStore creates an EnvStore for the given environment variable.
// Returns error if the variable name is empty or not set in the environment.
func NewEnvStore(envKey string) (*EnvStore, error) {
	if envKey == "" {
		return nil, fmt.Errorf("environment key cannot be empty")
	}

	if _, exists := os.LookupEnv(envKey); !exists {
		return nil, fmt.Errorf("environment variable %s not set", envKey)
	}

	return &EnvStore{
		envKey: envKey,
	}, nil
}

// Read returns the trimmed token from the environment variable.
// Returns ErrNotFound if the variable is empty.
func (e *EnvStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token := strings.TrimSpace(os.Getenv(e.envKey))
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}
