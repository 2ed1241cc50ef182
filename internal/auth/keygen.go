package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// API keys look like ck_live_7a9f3b_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b:
// a fixed "ck" tag, an environment, a short lookup prefix, and the secret.
const (
	keyTag       = "ck"
	KeyPrefixLen = 6  // hex chars (3 random bytes)
	KeySecretLen = 32 // hex chars (16 random bytes)
)

// Environment indicators embedded in the key.
const (
	EnvLive = "live"
	EnvTest = "test"
)

// ErrInvalidKeyFormat indicates the key does not match the expected shape.
var ErrInvalidKeyFormat = errors.New("invalid API key format")

// GeneratedKey carries the parts of a freshly minted API key. Plaintext is
// shown to the caller exactly once; only Hash and Prefix are stored.
type GeneratedKey struct {
	Plaintext string
	Hash      string
	Prefix    string
}

// GenerateAPIKey mints a new key for env. Unknown environments fall back to
// live.
func GenerateAPIKey(env string) (*GeneratedKey, error) {
	if env != EnvLive && env != EnvTest {
		env = EnvLive
	}

	prefix, err := randomHex(KeyPrefixLen / 2)
	if err != nil {
		return nil, fmt.Errorf("generate prefix: %w", err)
	}
	secret, err := randomHex(KeySecretLen / 2)
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}

	plaintext := strings.Join([]string{keyTag, env, prefix, secret}, "_")

	hash, err := HashAPIKey(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash key: %w", err)
	}

	return &GeneratedKey{Plaintext: plaintext, Hash: hash, Prefix: prefix}, nil
}

// ParsedKey holds the components of a plaintext API key.
type ParsedKey struct {
	Env    string
	Prefix string
	Secret string
}

// ParseAPIKey splits a plaintext key into its components, rejecting anything
// that is not exactly tag_env_prefix_secret with lowercase-hex prefix and
// secret of the fixed lengths.
func ParseAPIKey(key string) (*ParsedKey, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 4 || parts[0] != keyTag {
		return nil, ErrInvalidKeyFormat
	}
	if parts[1] != EnvLive && parts[1] != EnvTest {
		return nil, ErrInvalidKeyFormat
	}
	if !isLowerHex(parts[2], KeyPrefixLen) || !isLowerHex(parts[3], KeySecretLen) {
		return nil, ErrInvalidKeyFormat
	}

	return &ParsedKey{Env: parts[1], Prefix: parts[2], Secret: parts[3]}, nil
}

// ValidateKeyFormat reports whether key parses as an API key.
func ValidateKeyFormat(key string) bool {
	_, err := ParseAPIKey(key)
	return err == nil
}

func randomHex(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func isLowerHex(s string, wantLen int) bool {
	if len(s) != wantLen {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
