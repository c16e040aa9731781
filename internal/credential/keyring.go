// Package credential stores secrets (the auth session) in the system
// keyring, falling back to an encrypted file backend.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "habitchain"

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = keyring.ErrKeyNotFound

// Store wraps a keyring backend.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store backed by the system keyring.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/habitchain/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("habitchain-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// NewWithRing returns a Store over a caller-provided keyring.
// Tests use this with an in-memory ring.
func NewWithRing(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Get retrieves a value by key. Returns ErrNotFound when the key is absent.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a value by key.
func (s *Store) Set(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a value by key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}
