// Package redis provides a Redis-backed signature store for fleet-shared
// deduplication without a relational database.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"solana-dca-watch/internal/storage"
)

// keyPrefix namespaces signature keys.
const keyPrefix = "dca:sig:"

// SignatureStore implements storage.SignatureStore using Redis SETNX.
// Keys carry no TTL; the set grows without bound, matching the other
// implementations.
type SignatureStore struct {
	client *redis.Client
}

// NewSignatureStore creates a store over an existing Redis client.
func NewSignatureStore(client *redis.Client) *SignatureStore {
	return &SignatureStore{client: client}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Compile-time interface check.
var _ storage.SignatureStore = (*SignatureStore)(nil)

// Claim atomically marks a signature as processed.
func (s *SignatureStore) Claim(ctx context.Context, signature string) (bool, error) {
	if signature == "" {
		return false, storage.ErrInvalidInput
	}

	claimed, err := s.client.SetNX(ctx, keyPrefix+signature, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("claim signature: %w", err)
	}
	return claimed, nil
}

// Exists reports whether a signature has been claimed.
func (s *SignatureStore) Exists(ctx context.Context, signature string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+signature).Result()
	if err != nil {
		return false, fmt.Errorf("check signature: %w", err)
	}
	return n > 0, nil
}
