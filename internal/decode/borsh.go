package decode

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"

	"solana-dca-watch/internal/schema"
)

// Value is one decoded instruction argument. Integer and bool fields land in
// Num (exact, arbitrary precision); publicKey and string fields land in Str.
// Option fields that are absent have Present=false.
type Value struct {
	Num     decimal.Decimal
	Str     string
	Present bool
}

// borshReader walks a borsh-encoded payload field by field.
type borshReader struct {
	data []byte
	pos  int
}

func newBorshReader(data []byte) *borshReader {
	return &borshReader{data: data}
}

func (r *borshReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("payload truncated at offset %d (need %d bytes)", r.pos, n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readField decodes one field according to its schema type.
func (r *borshReader) readField(t schema.FieldType) (Value, error) {
	if t.Option != nil {
		tag, err := r.take(1)
		if err != nil {
			return Value{}, err
		}
		if tag[0] == 0 {
			return Value{Present: false}, nil
		}
		return r.readField(*t.Option)
	}

	switch t.Primitive {
	case "u8", "i8":
		b, err := r.take(1)
		if err != nil {
			return Value{}, err
		}
		n := int64(b[0])
		if t.Primitive == "i8" {
			n = int64(int8(b[0]))
		}
		return Value{Num: decimal.NewFromInt(n), Present: true}, nil

	case "u16", "i16":
		b, err := r.take(2)
		if err != nil {
			return Value{}, err
		}
		v := binary.LittleEndian.Uint16(b)
		n := int64(v)
		if t.Primitive == "i16" {
			n = int64(int16(v))
		}
		return Value{Num: decimal.NewFromInt(n), Present: true}, nil

	case "u32", "i32":
		b, err := r.take(4)
		if err != nil {
			return Value{}, err
		}
		v := binary.LittleEndian.Uint32(b)
		n := int64(v)
		if t.Primitive == "i32" {
			n = int64(int32(v))
		}
		return Value{Num: decimal.NewFromInt(n), Present: true}, nil

	case "u64":
		b, err := r.take(8)
		if err != nil {
			return Value{}, err
		}
		v := new(big.Int).SetUint64(binary.LittleEndian.Uint64(b))
		return Value{Num: decimal.NewFromBigInt(v, 0), Present: true}, nil

	case "i64":
		b, err := r.take(8)
		if err != nil {
			return Value{}, err
		}
		n := int64(binary.LittleEndian.Uint64(b))
		return Value{Num: decimal.NewFromInt(n), Present: true}, nil

	case "u128", "i128":
		b, err := r.take(16)
		if err != nil {
			return Value{}, err
		}
		// little-endian to big-endian for big.Int
		be := make([]byte, 16)
		for i := 0; i < 16; i++ {
			be[i] = b[15-i]
		}
		v := new(big.Int).SetBytes(be)
		if t.Primitive == "i128" && b[15]&0x80 != 0 {
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
		}
		return Value{Num: decimal.NewFromBigInt(v, 0), Present: true}, nil

	case "bool":
		b, err := r.take(1)
		if err != nil {
			return Value{}, err
		}
		var n int64
		if b[0] != 0 {
			n = 1
		}
		return Value{Num: decimal.NewFromInt(n), Present: true}, nil

	case "publicKey", "pubkey":
		b, err := r.take(32)
		if err != nil {
			return Value{}, err
		}
		return Value{Str: base58.Encode(b), Present: true}, nil

	case "string":
		lb, err := r.take(4)
		if err != nil {
			return Value{}, err
		}
		n := int(binary.LittleEndian.Uint32(lb))
		b, err := r.take(n)
		if err != nil {
			return Value{}, err
		}
		return Value{Str: string(b), Present: true}, nil

	default:
		return Value{}, fmt.Errorf("unsupported field type %s", t)
	}
}

// decodeArgs decodes the full argument list of an instruction definition.
func decodeArgs(ins *schema.IDLInstruction, payload []byte) (map[string]Value, error) {
	r := newBorshReader(payload)
	values := make(map[string]Value, len(ins.Args))
	for _, arg := range ins.Args {
		v, err := r.readField(arg.Type)
		if err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", ins.Name, arg.Name, err)
		}
		values[arg.Name] = v
	}
	return values, nil
}
