// Package tokenstore provides the storage tiers an auth token can be read from.
//
// Two backends with different security tradeoffs:
//   - Keyring: OS-native credential storage (macOS Keychain, Windows Credential Manager,
//     Secret Service on Linux). Readable and writable.
//   - File: a plaintext fallback file under the user's home directory. Read-only from
//     this package's perspective; it is provisioned and permission-managed elsewhere.
//
// A read-only Env source is also provided so callers can hand a token over without
// putting it on the command line.
//
// Lookup failures in any tier surface as ErrNotFound. Backend failures that must be
// reported keep their message but not their type (KeychainError, FileError).
package tokenstore
