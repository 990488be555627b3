package domain

import "github.com/shopspring/decimal"

// DcaOpen holds the decoded fields of a position-opening DCA instruction.
// Amounts are raw (un-decimaled) integer values carried as exact decimals
// so that u64/u128 payloads never lose precision.
type DcaOpen struct {
	InAmount         decimal.Decimal // total deposit, raw units
	InAmountPerCycle decimal.Decimal // amount swapped per cycle, raw units
	CycleFrequency   int64           // seconds between cycles
}
