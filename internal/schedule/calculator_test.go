package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"solana-dca-watch/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCalculator_Compute(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	calc := NewCalculatorWithClock(fixedClock(start))

	// 250 USDC total, 25 USDC per cycle, hourly: 10 cycles over 10 hours.
	open := &domain.DcaOpen{
		InAmount:         decimal.NewFromInt(250_000_000),
		InAmountPerCycle: decimal.NewFromInt(25_000_000),
		CycleFrequency:   3600,
	}
	deposit := domain.TokenMeta{
		Symbol:   "USDC",
		Price:    decimal.NewFromInt(1),
		Decimals: 6,
	}

	sched, err := calc.Compute(open, deposit)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if sched.NumberOfCycles != 10 {
		t.Errorf("expected 10 cycles, got %d", sched.NumberOfCycles)
	}
	if sched.ETASeconds != 36000 {
		t.Errorf("expected ETA 36000s, got %d", sched.ETASeconds)
	}
	if !sched.PeriodStart.Equal(start) {
		t.Errorf("expected period start %v, got %v", start, sched.PeriodStart)
	}
	if want := start.Add(10 * time.Hour); !sched.PeriodEnd.Equal(want) {
		t.Errorf("expected period end %v, got %v", want, sched.PeriodEnd)
	}
	if got := sched.TotalValue.StringFixed(2); got != "250.00" {
		t.Errorf("expected total value 250.00, got %s", got)
	}
	if got := sched.CycleValue.StringFixed(2); got != "25.00" {
		t.Errorf("expected cycle value 25.00, got %s", got)
	}
}

func TestCalculator_Compute_TruncatesPartialCycle(t *testing.T) {
	calc := NewCalculatorWithClock(fixedClock(time.Unix(0, 0)))

	open := &domain.DcaOpen{
		InAmount:         decimal.NewFromInt(250_000_001),
		InAmountPerCycle: decimal.NewFromInt(25_000_000),
		CycleFrequency:   60,
	}

	sched, err := calc.Compute(open, domain.TokenMeta{Price: decimal.NewFromInt(1), Decimals: 6})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if sched.NumberOfCycles != 10 {
		t.Errorf("expected truncated 10 cycles, got %d", sched.NumberOfCycles)
	}
}

func TestCalculator_Compute_ZeroCycleAmount(t *testing.T) {
	calc := NewCalculator()

	open := &domain.DcaOpen{
		InAmount:         decimal.NewFromInt(100),
		InAmountPerCycle: decimal.Zero,
		CycleFrequency:   60,
	}

	_, err := calc.Compute(open, domain.TokenMeta{Decimals: 6})
	if !errors.Is(err, ErrZeroCycleAmount) {
		t.Errorf("expected ErrZeroCycleAmount, got %v", err)
	}
}
