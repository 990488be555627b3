package domain

import "github.com/shopspring/decimal"

// TokenMeta is token market metadata from the external lookup service.
// MarketCap and Volume24h arrive pre-formatted; Volume24h may be empty.
type TokenMeta struct {
	Symbol          string
	Price           decimal.Decimal
	MarketCap       string
	Volume24h       string
	ContractAddress string
	Decimals        int
}
