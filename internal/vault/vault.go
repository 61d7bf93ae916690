// Package vault provides the reversible transform used for privacy-protected
// fields. Callers treat it as opaque: Seal output is only meaningful to Open.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const sealedPrefix = "enc:v1:"

var (
	ErrNoKey     = errors.New("vault: no encryption key configured")
	ErrMalformed = errors.New("vault: malformed sealed value")
)

// Vault seals and opens individual string values.
type Vault interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
	Enabled() bool
}

// IsSealed reports whether s looks like Seal output.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, sealedPrefix)
}

type xchacha struct {
	key []byte
}

// New returns an XChaCha20-Poly1305 vault for a 32-byte key.
func New(key []byte) (Vault, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("vault: key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &xchacha{key: k}, nil
}

// FromHex builds a vault from a hex key. An empty key yields a disabled vault.
func FromHex(hexKey string) (Vault, error) {
	if hexKey == "" {
		return Disabled{}, nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("vault: decode key: %w", err)
	}
	return New(key)
}

func (v *xchacha) Enabled() bool { return true }

func (v *xchacha) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("vault: nonce: %w", err)
	}
	out := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

func (v *xchacha) Open(sealed string) (string, error) {
	if !IsSealed(sealed) {
		return "", ErrMalformed
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(sealed, sealedPrefix))
	if err != nil {
		return "", ErrMalformed
	}
	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrMalformed
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("vault: open: %w", err)
	}
	return string(plain), nil
}

// Disabled is the vault used when no key is configured.
type Disabled struct{}

func (Disabled) Enabled() bool               { return false }
func (Disabled) Seal(string) (string, error) { return "", ErrNoKey }
func (Disabled) Open(string) (string, error) { return "", ErrNoKey }
