// Package metadata provides token market metadata lookup.
package metadata

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"solana-dca-watch/internal/domain"
)

// DefaultDecimals is assumed when the lookup service cannot tell.
const DefaultDecimals = 6

// Source fetches token metadata by mint. Implementations perform no
// cross-transaction caching; every lookup is fresh.
type Source interface {
	Fetch(ctx context.Context, mint string) (domain.TokenMeta, error)
}

// Placeholder is the documented fallback applied when a lookup fails:
// the mint stands in for the symbol, price is zero, decimals default.
func Placeholder(mint string) domain.TokenMeta {
	return domain.TokenMeta{
		Symbol:          mint,
		Price:           decimal.Zero,
		ContractAddress: mint,
		Decimals:        DefaultDecimals,
	}
}

// FormatMillions renders a raw currency amount with the fixed
// divide-by-1e6, "M"-suffix convention used for market cap and volume.
// This is deliberately independent from the report's dollar formatter.
func FormatMillions(v decimal.Decimal) string {
	return fmt.Sprintf("$%sM", v.Div(decimal.NewFromInt(1_000_000)).StringFixed(2))
}
