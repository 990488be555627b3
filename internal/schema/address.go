package schema

import (
	"crypto/sha256"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// FindProgramAddress derives a Program Derived Address for the given seeds.
// It searches bump seeds from 255 downward until the resulting point is off
// the ed25519 curve.
func FindProgramAddress(seeds [][]byte, programID string) ([]byte, error) {
	program, err := base58.Decode(programID)
	if err != nil {
		return nil, fmt.Errorf("decode program id: %w", err)
	}

	for bump := byte(255); bump > 0; bump-- {
		data := make([]byte, 0)
		for _, seed := range seeds {
			data = append(data, seed...)
		}
		data = append(data, bump)
		data = append(data, program...)
		data = append(data, []byte("ProgramDerivedAddress")...)

		hash := sha256.Sum256(data)

		if !isOnCurve(hash[:]) {
			return hash[:], nil
		}
	}

	return nil, fmt.Errorf("no off-curve address found for program %s", programID)
}

// CreateWithSeed derives the deterministic address
// sha256(base || seed || programID).
func CreateWithSeed(base []byte, seed string, programID string) ([]byte, error) {
	program, err := base58.Decode(programID)
	if err != nil {
		return nil, fmt.Errorf("decode program id: %w", err)
	}

	data := make([]byte, 0, len(base)+len(seed)+len(program))
	data = append(data, base...)
	data = append(data, []byte(seed)...)
	data = append(data, program...)

	hash := sha256.Sum256(data)
	return hash[:], nil
}

// IDLAddress derives the canonical on-chain address of a program's IDL
// account: the empty-seed PDA extended with the "anchor:idl" seed.
func IDLAddress(programID string) (string, error) {
	base, err := FindProgramAddress(nil, programID)
	if err != nil {
		return "", err
	}

	addr, err := CreateWithSeed(base, "anchor:idl", programID)
	if err != nil {
		return "", err
	}

	return base58.Encode(addr), nil
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
