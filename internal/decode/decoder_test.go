package decode

import (
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"

	"solana-dca-watch/internal/schema"
	"solana-dca-watch/internal/solana"
)

const testProgram = "DCA265Vj8a9CEuX1eb1LWRnDT7uK6q1xMipnNyatn23M"

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	u64 := schema.FieldType{Primitive: "u64"}
	idl := &schema.IDL{
		Instructions: []schema.IDLInstruction{
			{
				Name: OpenInstruction,
				Args: []schema.IDLField{
					{Name: "applicationIdx", Type: u64},
					{Name: "inAmount", Type: u64},
					{Name: "inAmountPerCycle", Type: u64},
					{Name: "cycleFrequency", Type: schema.FieldType{Primitive: "i64"}},
					{Name: "minOutAmount", Type: schema.FieldType{Option: &schema.FieldType{Primitive: "u64"}}},
				},
			},
			{Name: "closeDca"},
		},
	}
	return schema.New(testProgram, idl)
}

// openPayload builds disc + borsh-encoded args for the open instruction.
func openPayload(t *testing.T, inAmount, perCycle uint64, freq int64) []byte {
	t.Helper()
	disc := schema.Discriminator(OpenInstruction)
	payload := append([]byte{}, disc[:]...)

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, 42) // applicationIdx
	payload = append(payload, buf...)
	binary.LittleEndian.PutUint64(buf, inAmount)
	payload = append(payload, buf...)
	binary.LittleEndian.PutUint64(buf, perCycle)
	payload = append(payload, buf...)
	binary.LittleEndian.PutUint64(buf, uint64(freq))
	payload = append(payload, buf...)
	payload = append(payload, 0) // minOutAmount: None
	return payload
}

func openTx(payload []byte) *solana.Transaction {
	return &solana.Transaction{
		Meta: &solana.TransactionMeta{
			LogMessages: []string{
				"Program " + testProgram + " invoke [1]",
				"Program log: Instruction: OpenDcaV2",
				"Program " + testProgram + " success",
			},
		},
		Message: &solana.TransactionMessage{
			AccountKeys: []string{"user", testProgram},
			Instructions: []solana.CompiledInstruction{
				{ProgramIDIndex: 1, Data: base58.Encode(payload)},
			},
		},
	}
}

func TestDecoder_Decode_Open(t *testing.T) {
	d := New(testProgram, testSchema(t))

	tx := openTx(openPayload(t, 250_000_000, 25_000_000, 3600))
	result := d.Decode(tx)

	if result.Kind != KindOpen {
		t.Fatalf("expected KindOpen, got %v", result.Kind)
	}
	if got := result.Open.InAmount.String(); got != "250000000" {
		t.Errorf("expected inAmount 250000000, got %s", got)
	}
	if got := result.Open.InAmountPerCycle.String(); got != "25000000" {
		t.Errorf("expected inAmountPerCycle 25000000, got %s", got)
	}
	if result.Open.CycleFrequency != 3600 {
		t.Errorf("expected cycleFrequency 3600, got %d", result.Open.CycleFrequency)
	}
}

func TestDecoder_Decode_NilTransaction(t *testing.T) {
	d := New(testProgram, testSchema(t))

	if result := d.Decode(nil); result.Kind != KindUnrecognized {
		t.Errorf("expected KindUnrecognized for nil tx, got %v", result.Kind)
	}
}

func TestDecoder_Decode_NoMarkerInLogs(t *testing.T) {
	d := New(testProgram, testSchema(t))

	tx := openTx(openPayload(t, 100, 10, 60))
	tx.Meta.LogMessages = []string{"Program log: Instruction: Deposit"}

	if result := d.Decode(tx); result.Kind != KindUnrecognized {
		t.Errorf("expected KindUnrecognized without log marker, got %v", result.Kind)
	}
}

func TestDecoder_Decode_WrongDiscriminator(t *testing.T) {
	d := New(testProgram, testSchema(t))

	payload := openPayload(t, 100, 10, 60)
	disc := schema.Discriminator("closeDca")
	copy(payload[:8], disc[:])

	tx := openTx(payload)
	if result := d.Decode(tx); result.Kind != KindUnrecognized {
		t.Errorf("expected KindUnrecognized for non-open discriminator, got %v", result.Kind)
	}
}

func TestDecoder_Decode_UnknownDiscriminator(t *testing.T) {
	d := New(testProgram, testSchema(t))

	payload := openPayload(t, 100, 10, 60)
	payload[0] ^= 0xFF

	tx := openTx(payload)
	if result := d.Decode(tx); result.Kind != KindUnrecognized {
		t.Errorf("expected KindUnrecognized for unknown discriminator, got %v", result.Kind)
	}
}

func TestDecoder_Decode_TruncatedPayload(t *testing.T) {
	d := New(testProgram, testSchema(t))

	payload := openPayload(t, 100, 10, 60)
	tx := openTx(payload[:16])

	if result := d.Decode(tx); result.Kind != KindUnrecognized {
		t.Errorf("expected KindUnrecognized for truncated payload, got %v", result.Kind)
	}
}

func TestDecoder_Decode_OtherProgramInstruction(t *testing.T) {
	d := New(testProgram, testSchema(t))

	tx := openTx(openPayload(t, 100, 10, 60))
	tx.Message.Instructions[0].ProgramIDIndex = 0 // points at "user"

	if result := d.Decode(tx); result.Kind != KindUnrecognized {
		t.Errorf("expected KindUnrecognized when no instruction targets the program, got %v", result.Kind)
	}
}
