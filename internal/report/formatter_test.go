package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"solana-dca-watch/internal/domain"
)

func testInput() Input {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return Input{
		Open: &domain.DcaOpen{
			InAmount:         decimal.NewFromInt(250_000_000),
			InAmountPerCycle: decimal.NewFromInt(25_000_000),
			CycleFrequency:   3600,
		},
		Classification: &domain.TradeClassification{
			Type: domain.TradeBuy,
			DepositToken: domain.TokenMeta{
				Symbol:          "USDC",
				Price:           decimal.NewFromInt(1),
				ContractAddress: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			},
			TargetToken: domain.TokenMeta{
				Symbol:          "ABC",
				Price:           decimal.NewFromFloat(0.5),
				MarketCap:       "$12.34M",
				Volume24h:       "$1.20M",
				ContractAddress: "AbcMint1111111111111111111111111111111111111",
			},
		},
		Schedule: &domain.Schedule{
			NumberOfCycles: 10,
			ETASeconds:     36000,
			PeriodStart:    start,
			PeriodEnd:      start.Add(10 * time.Hour),
			TotalValue:     decimal.NewFromInt(250),
			CycleValue:     decimal.NewFromInt(25),
		},
		UserAccount: "UserAcc1111111111111111111111111111111111111",
		TxSignature: "5sig",
	}
}

func TestBuild_Buy(t *testing.T) {
	got := Build(testInput())

	want := strings.Join([]string{
		"$250.00 buying ABC 🟩",
		"",
		"Frequency: $25.00 every 1h (10 cycles)",
		"ETA: 10h",
		"",
		"MC: $12.34M",
		"V24h: $1.20M",
		"Price: 0.5000",
		"CA: AbcMint1111111111111111111111111111111111111",
		"",
		"User: UserAcc1111111111111111111111111111111111111",
		"TX: 5sig",
		"",
		"Period: 01 Jun 2024 12:00 - 01 Jun 2024 22:00",
	}, "\n")

	if got != want {
		t.Errorf("unexpected report:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestBuild_Sell(t *testing.T) {
	in := testInput()
	in.Classification = &domain.TradeClassification{
		Type: domain.TradeSell,
		DepositToken: domain.TokenMeta{
			Symbol:          "ABC",
			Price:           decimal.NewFromFloat(0.5),
			MarketCap:       "$12.34M",
			Volume24h:       "$1.20M",
			ContractAddress: "AbcMint1111111111111111111111111111111111111",
		},
		TargetToken: domain.TokenMeta{
			Symbol:          "USDC",
			Price:           decimal.NewFromInt(1),
			ContractAddress: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		},
	}

	got := Build(in)

	if !strings.HasPrefix(got, "$250.00 selling ABC 🟥\n") {
		t.Errorf("expected sell header, got first line %q", strings.SplitN(got, "\n", 2)[0])
	}
	// Metadata block comes from the deposit (non-stable) side on sells.
	if !strings.Contains(got, "CA: AbcMint1111111111111111111111111111111111111") {
		t.Error("expected deposit token contract address in metadata block")
	}
	if !strings.Contains(got, "MC: $12.34M") {
		t.Error("expected deposit token market cap in metadata block")
	}
}

func TestBuild_OmitsEmptyVolume(t *testing.T) {
	in := testInput()
	in.Classification.TargetToken.Volume24h = ""

	got := Build(in)

	if strings.Contains(got, "V24h:") {
		t.Error("expected volume line to be omitted when absent")
	}
	if !strings.Contains(got, "MC: $12.34M\nPrice: 0.5000") {
		t.Error("expected market cap line directly followed by price line")
	}
}

func TestBuild_NoTrailingNewline(t *testing.T) {
	got := Build(testInput())
	if strings.HasSuffix(got, "\n") {
		t.Error("report must not end with a newline")
	}
}

func TestBuild_PeriodRendersUTC(t *testing.T) {
	in := testInput()
	loc := time.FixedZone("UTC+3", 3*3600)
	in.Schedule.PeriodStart = time.Date(2024, 6, 1, 15, 0, 0, 0, loc)
	in.Schedule.PeriodEnd = in.Schedule.PeriodStart.Add(10 * time.Hour)

	got := Build(in)

	if !strings.Contains(got, "Period: 01 Jun 2024 12:00 - 01 Jun 2024 22:00") {
		t.Errorf("expected UTC-normalized period, got:\n%s", got)
	}
}
