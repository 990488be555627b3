// Package schedule computes the projected completion schedule of a DCA
// position and renders its display values.
package schedule

import (
	"errors"
	"math/big"
	"time"

	"solana-dca-watch/internal/domain"
)

// ErrZeroCycleAmount is returned when the per-cycle amount is zero; cycle
// count would divide by zero.
var ErrZeroCycleAmount = errors.New("schedule: per-cycle amount is zero")

// Calculator computes schedules against an injectable clock.
type Calculator struct {
	now func() time.Time
}

// NewCalculator creates a Calculator using the wall clock.
func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// NewCalculatorWithClock creates a Calculator with a fixed clock, for
// deterministic output.
func NewCalculatorWithClock(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// Compute derives cycle count, ETA and the report period window from a
// decoded open and the deposit token's metadata. The cycle count is integer
// division on raw (un-decimaled) amounts.
func (c *Calculator) Compute(open *domain.DcaOpen, deposit domain.TokenMeta) (*domain.Schedule, error) {
	if open.InAmountPerCycle.IsZero() {
		return nil, ErrZeroCycleAmount
	}

	cycles := new(big.Int).Quo(open.InAmount.BigInt(), open.InAmountPerCycle.BigInt())

	shift := int32(-deposit.Decimals)
	totalTokens := open.InAmount.Shift(shift)
	cycleTokens := open.InAmountPerCycle.Shift(shift)

	n := cycles.Int64()
	eta := n * open.CycleFrequency
	start := c.now()

	return &domain.Schedule{
		NumberOfCycles: n,
		ETASeconds:     eta,
		PeriodStart:    start,
		PeriodEnd:      start.Add(time.Duration(eta) * time.Second),
		TotalValue:     totalTokens.Mul(deposit.Price),
		CycleValue:     cycleTokens.Mul(deposit.Price),
	}, nil
}
