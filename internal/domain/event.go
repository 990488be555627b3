package domain

// DcaEvent is the archive record for one processed DCA open.
// Corresponds to dca_events table in ClickHouse. Raw amounts are stored as
// decimal strings to avoid precision loss.
type DcaEvent struct {
	TxSignature      string
	User             string
	Side             string // "buy" | "sell"
	DepositMint      string
	DepositSymbol    string
	TargetMint       string
	TargetSymbol     string
	InAmount         string // raw units, decimal string
	InAmountPerCycle string // raw units, decimal string
	CycleFrequency   int64  // seconds
	NumberOfCycles   int64
	ETASeconds       int64
	CreatedAt        int64 // record creation timestamp (ms)
}
