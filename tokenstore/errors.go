package tokenstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a tier holds no obtainable token.
var ErrNotFound = errors.New("token not found in keychain or file")

// KeychainError reports a failure of the OS credential store.
// Only the message of the underlying error is kept.
type KeychainError struct {
	Op  string
	Msg string
}

func (e *KeychainError) Error() string {
	return fmt.Sprintf("keychain error: %s: %s", e.Op, e.Msg)
}

// FileError reports an I/O failure other than absence on the fallback file.
type FileError struct {
	Path string
	Msg  string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s", e.Msg)
}

func keychainError(op string, err error) error {
	return &KeychainError{Op: op, Msg: err.Error()}
}

func fileError(path string, err error) error {
	return &FileError{Path: path, Msg: err.Error()}
}
