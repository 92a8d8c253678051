package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultTokenPrefix is the literal every auth token starts with.
	DefaultTokenPrefix = "rl_"
	// DefaultMinTokenLength is the minimum total token length, prefix included.
	DefaultMinTokenLength = 24

	// generatedTokenBytes is the entropy of generated tokens (256 bits).
	generatedTokenBytes = 32
)

// Source records which tier produced a resolved token.
type Source string

const (
	SourceKeychain Source = "keychain"
	SourceFile     Source = "file"
)

// StoredAuthToken pairs a resolved token with its provenance.
type StoredAuthToken struct {
	Token  string `json:"token"`
	Source Source `json:"source"`
}

// Validator checks the syntactic shape of a token: prefix and minimum length.
// It is not a strength check.
type Validator struct {
	Prefix    string
	MinLength int
}

// DefaultValidator accepts tokens starting with "rl_" of at least 24 characters.
var DefaultValidator = Validator{
	Prefix:    DefaultTokenPrefix,
	MinLength: DefaultMinTokenLength,
}

// Validate returns an error wrapping ErrInvalidFormat unless candidate starts with
// the prefix and has at least MinLength bytes.
func (v Validator) Validate(candidate string) error {
	if strings.HasPrefix(candidate, v.Prefix) && len(candidate) >= v.MinLength {
		return nil
	}
	return fmt.Errorf("%w (must start with %s)", ErrInvalidFormat, v.Prefix)
}

// ValidateToken validates candidate with DefaultValidator.
func ValidateToken(candidate string) error {
	return DefaultValidator.Validate(candidate)
}

// GenerateToken returns a new random token: the default prefix followed by 256 bits
// of base64url-encoded randomness (43 characters).
func GenerateToken() (string, error) {
	b := make([]byte, generatedTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return DefaultTokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// MaskToken hides everything but the first seven characters, e.g. "rl_a3f8****".
func MaskToken(token string) string {
	if len(token) < 10 {
		return "****"
	}
	return token[:7] + "****"
}

var tokenPattern = regexp.MustCompile(`rl_[A-Za-z0-9_-]{20,}`)

// ScrubSecrets replaces anything shaped like an auth token in text with a mask.
func ScrubSecrets(text string) string {
	return tokenPattern.ReplaceAllString(text, "rl_****MASKED****")
}
