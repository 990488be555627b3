// Package decode turns opaque instruction payloads into typed DCA-open
// records using the program's published schema.
package decode

import (
	"strings"

	"github.com/mr-tron/base58"

	"solana-dca-watch/internal/domain"
	"solana-dca-watch/internal/schema"
	"solana-dca-watch/internal/solana"
)

// OpenInstruction is the IDL name of the position-opening instruction.
const OpenInstruction = "openDcaV2"

// logMarker is the substring the runtime logs when the target instruction
// executes. Scanning log lines for it is much cheaper than a binary decode,
// so it runs first and short-circuits everything else.
const logMarker = "OpenDcaV2"

// Kind tags a decode result.
type Kind int

// Decode result kinds.
const (
	KindUnrecognized Kind = iota
	KindOpen
)

// Result is the tagged outcome of decoding one transaction. Open is set
// only when Kind == KindOpen.
type Result struct {
	Kind Kind
	Open *domain.DcaOpen
}

// Decoder extracts DCA-open records from transactions targeting one program.
type Decoder struct {
	programID string
	schema    *schema.Schema
}

// New creates a Decoder for the given program and schema.
func New(programID string, s *schema.Schema) *Decoder {
	return &Decoder{programID: programID, schema: s}
}

// Decode inspects a transaction and returns the decoded DCA open, or an
// unrecognized result when the transaction does not carry one. Only the
// first qualifying instruction is considered.
func (d *Decoder) Decode(tx *solana.Transaction) Result {
	if tx == nil || tx.Meta == nil || tx.Message == nil {
		return Result{Kind: KindUnrecognized}
	}

	if !hasMarker(tx.Meta.LogMessages) {
		return Result{Kind: KindUnrecognized}
	}

	ins, ok := firstProgramInstruction(tx.Message, d.programID)
	if !ok {
		return Result{Kind: KindUnrecognized}
	}

	payload, err := base58.Decode(ins.Data)
	if err != nil || len(payload) < schema.DiscriminatorLen {
		return Result{Kind: KindUnrecognized}
	}

	def := d.schema.Lookup(payload)
	if def == nil || def.Name != OpenInstruction {
		return Result{Kind: KindUnrecognized}
	}

	values, err := decodeArgs(def, payload[schema.DiscriminatorLen:])
	if err != nil {
		return Result{Kind: KindUnrecognized}
	}

	open, ok := buildOpen(values)
	if !ok {
		return Result{Kind: KindUnrecognized}
	}

	return Result{Kind: KindOpen, Open: open}
}

// hasMarker scans log lines for the target instruction marker.
func hasMarker(logs []string) bool {
	for _, line := range logs {
		if strings.Contains(line, logMarker) {
			return true
		}
	}
	return false
}

// firstProgramInstruction returns the first top-level instruction targeting
// the program. Transactions carrying more than one are reduced to the first;
// multi-instruction support is out of scope.
func firstProgramInstruction(msg *solana.TransactionMessage, programID string) (solana.CompiledInstruction, bool) {
	for _, ins := range msg.Instructions {
		if msg.ProgramID(ins) == programID {
			return ins, true
		}
	}
	return solana.CompiledInstruction{}, false
}

// buildOpen maps decoded argument values to a DcaOpen record.
func buildOpen(values map[string]Value) (*domain.DcaOpen, bool) {
	inAmount, ok := values["inAmount"]
	if !ok || !inAmount.Present {
		return nil, false
	}
	perCycle, ok := values["inAmountPerCycle"]
	if !ok || !perCycle.Present {
		return nil, false
	}
	freq, ok := values["cycleFrequency"]
	if !ok || !freq.Present {
		return nil, false
	}

	return &domain.DcaOpen{
		InAmount:         inAmount.Num,
		InAmountPerCycle: perCycle.Num,
		CycleFrequency:   freq.Num.IntPart(),
	}, true
}
