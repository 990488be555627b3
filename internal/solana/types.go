package solana

import "github.com/shopspring/decimal"

// SignatureInfo from getSignaturesForAddress.
type SignatureInfo struct {
	Signature string
	Slot      int64
	BlockTime *int64
	Err       interface{}
}

// SignaturesOpts defines optional pagination parameters for getSignaturesForAddress.
type SignaturesOpts struct {
	Before string // Start searching backwards from this signature
	Until  string // Search until this signature
	Limit  int    // Maximum number of signatures to return
}

// Transaction represents a Solana transaction.
type Transaction struct {
	Slot      int64
	Signature string
	BlockTime int64 // Unix timestamp (seconds)
	Meta      *TransactionMeta
	Message   *TransactionMessage
}

// TransactionMeta contains transaction metadata.
type TransactionMeta struct {
	Err               interface{}
	LogMessages       []string
	PostTokenBalances []TokenBalance
}

// TokenBalance is one entry of a transaction's post-balance list.
type TokenBalance struct {
	AccountIndex int
	Mint         string
	Owner        string
	Decimals     int
	UIAmount     decimal.Decimal // decimal-adjusted balance
}

// TransactionMessage contains the parsed transaction message.
type TransactionMessage struct {
	AccountKeys  []string // index 0 = primary signer
	Instructions []CompiledInstruction
}

// CompiledInstruction is a top-level instruction with its raw payload.
type CompiledInstruction struct {
	ProgramIDIndex int
	Accounts       []int
	Data           string // base58 encoded
}

// ProgramID resolves the instruction's program id against account keys.
// Returns "" when the index is out of range.
func (m *TransactionMessage) ProgramID(ins CompiledInstruction) string {
	if ins.ProgramIDIndex < 0 || ins.ProgramIDIndex >= len(m.AccountKeys) {
		return ""
	}
	return m.AccountKeys[ins.ProgramIDIndex]
}

// AccountInfo represents Solana account information.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Data       string // base64 encoded
	Executable bool
	RentEpoch  uint64
}
