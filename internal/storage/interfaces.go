package storage

import (
	"context"

	"solana-dca-watch/internal/domain"
)

// SignatureStore tracks which transaction signatures have been claimed for
// processing. Entries never expire; the store grows without bound.
type SignatureStore interface {
	// Claim atomically marks a signature as processed (set-if-absent).
	// Returns true when this call claimed it, false when it was already
	// claimed. Once claimed, the same fleet never reprocesses it.
	Claim(ctx context.Context, signature string) (bool, error)

	// Exists reports whether a signature has been claimed.
	Exists(ctx context.Context, signature string) (bool, error)
}

// DcaEventStore archives processed DCA opens for later analysis.
type DcaEventStore interface {
	// Insert adds one event record.
	Insert(ctx context.Context, e *domain.DcaEvent) error
}
