package schema

import (
	"crypto/sha256"
	"strings"
	"unicode"
)

// DiscriminatorLen is the length of an Anchor instruction discriminator.
const DiscriminatorLen = 8

// Schema maps instruction discriminators to their definitions for one program.
type Schema struct {
	ProgramID    string
	instructions map[[DiscriminatorLen]byte]*IDLInstruction
}

// New builds a Schema from a parsed IDL, computing the discriminator of
// every instruction.
func New(programID string, idl *IDL) *Schema {
	s := &Schema{
		ProgramID:    programID,
		instructions: make(map[[DiscriminatorLen]byte]*IDLInstruction, len(idl.Instructions)),
	}
	for i := range idl.Instructions {
		ins := &idl.Instructions[i]
		s.instructions[Discriminator(ins.Name)] = ins
	}
	return s
}

// Len reports the number of instructions in the schema.
func (s *Schema) Len() int {
	return len(s.instructions)
}

// Lookup returns the instruction whose discriminator leads the payload,
// or nil when no variant matches.
func (s *Schema) Lookup(payload []byte) *IDLInstruction {
	if len(payload) < DiscriminatorLen {
		return nil
	}
	var disc [DiscriminatorLen]byte
	copy(disc[:], payload)
	return s.instructions[disc]
}

// Discriminator computes the Anchor global-namespace sighash for an
// instruction name: sha256("global:<snake_case_name>")[:8].
func Discriminator(name string) [DiscriminatorLen]byte {
	hash := sha256.Sum256([]byte("global:" + toSnake(name)))
	var disc [DiscriminatorLen]byte
	copy(disc[:], hash[:DiscriminatorLen])
	return disc
}

// toSnake converts a camelCase instruction name to snake_case, the form
// Anchor hashes. Digits stay attached to the preceding word ("openDcaV2"
// becomes "open_dca_v2").
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
