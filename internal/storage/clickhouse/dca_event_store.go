package clickhouse

import (
	"context"
	"fmt"

	"solana-dca-watch/internal/domain"
	"solana-dca-watch/internal/storage"
)

// DcaEventStore implements storage.DcaEventStore using ClickHouse.
// MergeTree enforces no uniqueness; duplicate archives are tolerated and
// collapse at query time on tx_signature.
type DcaEventStore struct {
	conn *Conn
}

// NewDcaEventStore creates a new DcaEventStore.
func NewDcaEventStore(conn *Conn) *DcaEventStore {
	return &DcaEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DcaEventStore = (*DcaEventStore)(nil)

// Insert adds one event record.
func (s *DcaEventStore) Insert(ctx context.Context, e *domain.DcaEvent) error {
	if e == nil || e.TxSignature == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO dca_events (
			tx_signature, user, side,
			deposit_mint, deposit_symbol, target_mint, target_symbol,
			in_amount, in_amount_per_cycle, cycle_frequency,
			number_of_cycles, eta_seconds, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		e.TxSignature,
		e.User,
		e.Side,
		e.DepositMint,
		e.DepositSymbol,
		e.TargetMint,
		e.TargetSymbol,
		e.InAmount,
		e.InAmountPerCycle,
		e.CycleFrequency,
		e.NumberOfCycles,
		e.ETASeconds,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dca event: %w", err)
	}
	return nil
}
