// Package memory provides in-memory storage implementations.
package memory

import (
	"context"
	"sync"

	"solana-dca-watch/internal/storage"
)

// SignatureStore is an in-memory implementation of storage.SignatureStore.
type SignatureStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSignatureStore creates a new in-memory signature store.
func NewSignatureStore() *SignatureStore {
	return &SignatureStore{
		seen: make(map[string]struct{}),
	}
}

// Compile-time interface check.
var _ storage.SignatureStore = (*SignatureStore)(nil)

// Claim atomically marks a signature as processed.
func (s *SignatureStore) Claim(_ context.Context, signature string) (bool, error) {
	if signature == "" {
		return false, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[signature]; exists {
		return false, nil
	}
	s.seen[signature] = struct{}{}
	return true, nil
}

// Exists reports whether a signature has been claimed.
func (s *SignatureStore) Exists(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.seen[signature]
	return exists, nil
}
