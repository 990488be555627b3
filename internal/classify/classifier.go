// Package classify decides buy vs. sell for a balance pair using a fixed
// stablecoin membership set.
package classify

import (
	"context"

	"solana-dca-watch/internal/domain"
	"solana-dca-watch/internal/metadata"
	"solana-dca-watch/internal/solana"
)

// Classifier assigns deposit/target token roles to a straddling balance
// pair. Pairs where both or neither side is a stablecoin are unclassifiable.
type Classifier struct {
	stable map[string]struct{}
	meta   metadata.Source
}

// New creates a Classifier over the given stablecoin mint set.
func New(stableMints []string, meta metadata.Source) *Classifier {
	stable := make(map[string]struct{}, len(stableMints))
	for _, mint := range stableMints {
		stable[mint] = struct{}{}
	}
	return &Classifier{stable: stable, meta: meta}
}

// IsStable reports membership of a mint in the stablecoin set.
func (c *Classifier) IsStable(mint string) bool {
	_, ok := c.stable[mint]
	return ok
}

// Classify decides the trade direction for the pair (a, b) and resolves
// metadata for both sides. Returns ok=false when exactly-one-side-stable
// does not hold; such transactions are skipped without an alert.
//
// A positive residual stablecoin balance reads as an outgoing schedule still
// being funded (a buy of the non-stable asset); a drained stablecoin balance
// reads as the reverse.
func (c *Classifier) Classify(ctx context.Context, a, b solana.TokenBalance) (*domain.TradeClassification, bool) {
	stableA := c.IsStable(a.Mint)
	stableB := c.IsStable(b.Mint)
	if stableA == stableB {
		return nil, false
	}

	stableSide, otherSide := a, b
	if stableB {
		stableSide, otherSide = b, a
	}

	if stableSide.UIAmount.Sign() > 0 {
		return &domain.TradeClassification{
			Type:         domain.TradeBuy,
			DepositToken: c.lookup(ctx, stableSide),
			TargetToken:  c.lookup(ctx, otherSide),
		}, true
	}

	return &domain.TradeClassification{
		Type:         domain.TradeSell,
		DepositToken: c.lookup(ctx, otherSide),
		TargetToken:  c.lookup(ctx, stableSide),
	}, true
}

// lookup fetches metadata for one side, applying the documented placeholder
// on failure.
func (c *Classifier) lookup(ctx context.Context, entry solana.TokenBalance) domain.TokenMeta {
	meta, err := c.meta.Fetch(ctx, entry.Mint)
	if err != nil {
		return metadata.Placeholder(entry.Mint)
	}
	return meta
}
