package auth

import (
	"context"
	"errors"

	"github.com/redletters/rlauth/tokenstore"
)

var (
	// ErrNotFound is returned when neither tier yields a token.
	ErrNotFound = tokenstore.ErrNotFound
	// ErrInvalidFormat is returned when a token fails prefix/length validation.
	ErrInvalidFormat = errors.New("invalid token format")
)

// Error codes are stable tags for the command boundary.
const (
	CodeNotFound      = "not_found"
	CodeInvalidFormat = "invalid_format"
	CodeKeychainError = "keychain_error"
	CodeFileError     = "file_error"
	CodeCanceled      = "canceled"
	CodeInternal      = "internal"
)

// Code maps an error to its stable tag.
func Code(err error) string {
	var (
		keychainErr *tokenstore.KeychainError
		fileErr     *tokenstore.FileError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidFormat):
		return CodeInvalidFormat
	case errors.As(err, &keychainErr):
		return CodeKeychainError
	case errors.As(err, &fileErr):
		return CodeFileError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	default:
		return CodeInternal
	}
}

// Message maps an error to a short human-readable string suitable for display.
// Token-shaped substrings are masked.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var keychainErr *tokenstore.KeychainError
	if errors.As(err, &keychainErr) {
		return ScrubSecrets(keychainErr.Error())
	}
	var fileErr *tokenstore.FileError
	if errors.As(err, &fileErr) {
		return ScrubSecrets(fileErr.Error())
	}
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound.Error()
	}
	return ScrubSecrets(err.Error())
}
