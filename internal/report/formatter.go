// Package report renders the final alert text for a classified DCA open.
package report

import (
	"fmt"
	"strings"

	"solana-dca-watch/internal/domain"
	"solana-dca-watch/internal/schedule"
)

// Trade direction icons.
const (
	iconBuy  = "🟩"
	iconSell = "🟥"
)

// periodLayout renders the period window timestamps.
const periodLayout = "02 Jan 2006 15:04"

// Input carries everything the formatter needs for one alert.
type Input struct {
	Open           *domain.DcaOpen
	Classification *domain.TradeClassification
	Schedule       *domain.Schedule
	UserAccount    string
	TxSignature    string
}

// Build renders the alert. The layout is fixed; the metadata block is drawn
// from the non-stable, price-bearing side (target token on buy, deposit
// token on sell), and the volume line is omitted when absent.
func Build(in Input) string {
	cls := in.Classification
	sched := in.Schedule

	verb := "buying"
	icon := iconBuy
	symbol := cls.TargetToken.Symbol
	metaSide := cls.TargetToken
	if cls.Type == domain.TradeSell {
		verb = "selling"
		icon = iconSell
		symbol = cls.DepositToken.Symbol
		metaSide = cls.DepositToken
	}

	var b strings.Builder

	fmt.Fprintf(&b, "$%s %s %s %s\n", schedule.FormatDollar(sched.TotalValue), verb, symbol, icon)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Frequency: $%s every %s (%d cycles)\n",
		schedule.FormatDollar(sched.CycleValue),
		schedule.FormatETA(in.Open.CycleFrequency),
		sched.NumberOfCycles)
	fmt.Fprintf(&b, "ETA: %s\n", schedule.FormatETA(sched.ETASeconds))
	b.WriteString("\n")

	fmt.Fprintf(&b, "MC: %s\n", metaSide.MarketCap)
	if metaSide.Volume24h != "" {
		fmt.Fprintf(&b, "V24h: %s\n", metaSide.Volume24h)
	}
	fmt.Fprintf(&b, "Price: %s\n", metaSide.Price.StringFixed(4))
	fmt.Fprintf(&b, "CA: %s\n", metaSide.ContractAddress)
	b.WriteString("\n")

	fmt.Fprintf(&b, "User: %s\n", in.UserAccount)
	fmt.Fprintf(&b, "TX: %s\n", in.TxSignature)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Period: %s - %s",
		sched.PeriodStart.UTC().Format(periodLayout),
		sched.PeriodEnd.UTC().Format(periodLayout))

	return b.String()
}
