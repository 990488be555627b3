package schema

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"solana-dca-watch/internal/solana"
)

// IDL account layout: 8-byte account discriminator, 32-byte authority,
// u32 length, zlib-compressed JSON.
const idlHeaderLen = 8 + 32 + 4

// AccountFetcher is the RPC surface needed to load an on-chain IDL.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context, pubkey string) (*solana.AccountInfo, error)
}

// Fetch loads and parses the program's IDL from its canonical on-chain
// account and builds the instruction schema. Any failure here is fatal for
// the caller: without the schema no instruction can be decoded.
func Fetch(ctx context.Context, rpc AccountFetcher, programID string) (*Schema, error) {
	addr, err := IDLAddress(programID)
	if err != nil {
		return nil, fmt.Errorf("derive idl address: %w", err)
	}

	info, err := rpc.GetAccountInfo(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fetch idl account %s: %w", addr, err)
	}
	if info == nil {
		return nil, fmt.Errorf("idl account %s not found", addr)
	}

	raw, err := base64.StdEncoding.DecodeString(info.Data)
	if err != nil {
		return nil, fmt.Errorf("decode idl account data: %w", err)
	}

	idl, err := parseIDLAccount(raw)
	if err != nil {
		return nil, err
	}

	return New(programID, idl), nil
}

// parseIDLAccount unpacks the IDL account payload into a parsed IDL.
func parseIDLAccount(raw []byte) (*IDL, error) {
	if len(raw) < idlHeaderLen {
		return nil, fmt.Errorf("idl account too short: %d bytes", len(raw))
	}

	dataLen := binary.LittleEndian.Uint32(raw[40:44])
	body := raw[idlHeaderLen:]
	if uint32(len(body)) < dataLen {
		return nil, fmt.Errorf("idl account truncated: have %d, want %d", len(body), dataLen)
	}

	zr, err := zlib.NewReader(bytes.NewReader(body[:dataLen]))
	if err != nil {
		return nil, fmt.Errorf("open idl payload: %w", err)
	}
	defer zr.Close()

	decoded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate idl payload: %w", err)
	}

	var idl IDL
	if err := json.Unmarshal(decoded, &idl); err != nil {
		return nil, fmt.Errorf("parse idl json: %w", err)
	}

	return &idl, nil
}
