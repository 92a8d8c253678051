package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileStore reads the auth token from a plaintext fallback file.
// The file is created and permission-managed outside this package; FileStore never
// writes, chmods or removes it.
type FileStore struct {
	path func() (string, error)
}

// Compile-time check to ensure FileStore implements TokenReader
var _ TokenReader = (*FileStore)(nil)

// NewFileStore creates a FileStore reading the file at filePath.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	return &FileStore{
		path: func() (string, error) { return filePath, nil },
	}, nil
}

// NewHomeFileStore creates a FileStore reading <home>/<elem...>. The home directory
// is resolved on every Read, so a missing home surfaces as ErrNotFound rather than
// a construction error.
func NewHomeFileStore(elem ...string) (*FileStore, error) {
	if len(elem) == 0 {
		return nil, fmt.Errorf("relative path cannot be empty")
	}

	return &FileStore{
		path: func() (string, error) {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(append([]string{home}, elem...)...), nil
		},
	}, nil
}

// Read returns the stored token after trimming surrounding whitespace.
// Returns ErrNotFound if the path cannot be resolved or the file does not exist,
// and a *FileError for any other I/O failure. Permissions wider than 0600 only
// produce a warning.
func (f *FileStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := f.path()
	if err != nil {
		slog.DebugContext(ctx, "fallback token path unresolvable", "error", err)
		return "", ErrNotFound
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fileError(path, err)
	}

	warnInsecurePermissions(ctx, path, info)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Removed between stat and read
		return "", ErrNotFound
	}
	if err != nil {
		return "", fileError(path, err)
	}

	return strings.TrimSpace(string(data)), nil
}
