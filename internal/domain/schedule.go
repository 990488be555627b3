package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule is the projected completion schedule of a DCA position.
// TotalValue and CycleValue are priced in the deposit token's quote currency
// and exist for the formatting boundary only.
type Schedule struct {
	NumberOfCycles int64
	ETASeconds     int64
	PeriodStart    time.Time
	PeriodEnd      time.Time

	TotalValue decimal.Decimal
	CycleValue decimal.Decimal
}
