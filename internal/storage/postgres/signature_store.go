package postgres

import (
	"context"
	"fmt"

	"solana-dca-watch/internal/storage"
)

// SignatureStore implements storage.SignatureStore using PostgreSQL.
// The claim relies on ON CONFLICT DO NOTHING, so it stays atomic across a
// fleet of workers sharing one database.
type SignatureStore struct {
	pool *Pool
}

// NewSignatureStore creates a new SignatureStore.
func NewSignatureStore(pool *Pool) *SignatureStore {
	return &SignatureStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SignatureStore = (*SignatureStore)(nil)

// Claim atomically marks a signature as processed.
func (s *SignatureStore) Claim(ctx context.Context, signature string) (bool, error) {
	if signature == "" {
		return false, storage.ErrInvalidInput
	}

	query := `
		INSERT INTO processed_signatures (signature)
		VALUES ($1)
		ON CONFLICT (signature) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query, signature)
	if err != nil {
		return false, fmt.Errorf("claim signature: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Exists reports whether a signature has been claimed.
func (s *SignatureStore) Exists(ctx context.Context, signature string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM processed_signatures WHERE signature = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, signature).Scan(&exists); err != nil {
		return false, fmt.Errorf("check signature: %w", err)
	}
	return exists, nil
}
