package domain

// TradeType classifies a DCA position relative to a stablecoin.
type TradeType string

// Trade type constants
const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// TradeClassification assigns deposit/target roles to the two sides of a
// DCA position. Exactly one side is a stablecoin.
type TradeClassification struct {
	Type         TradeType
	DepositToken TokenMeta
	TargetToken  TokenMeta
}
