package balances

import (
	"testing"

	"solana-dca-watch/internal/solana"
)

func entry(owner, mint string) solana.TokenBalance {
	return solana.TokenBalance{Owner: owner, Mint: mint}
}

func TestFirstOwnerPair_SingleEntry(t *testing.T) {
	_, _, ok := FirstOwnerPair([]solana.TokenBalance{entry("alice", "mintA")})
	if ok {
		t.Error("expected no pair for a single entry")
	}
}

func TestFirstOwnerPair_Empty(t *testing.T) {
	_, _, ok := FirstOwnerPair(nil)
	if ok {
		t.Error("expected no pair for empty input")
	}
}

func TestFirstOwnerPair_NoOwnerWithTwo(t *testing.T) {
	entries := []solana.TokenBalance{
		entry("alice", "mintA"),
		entry("bob", "mintB"),
		entry("carol", "mintC"),
	}
	_, _, ok := FirstOwnerPair(entries)
	if ok {
		t.Error("expected no pair when every owner holds one entry")
	}
}

func TestFirstOwnerPair_PicksFirstQualifyingOwner(t *testing.T) {
	entries := []solana.TokenBalance{
		entry("vault", "mintX"),
		entry("alice", "mintA"),
		entry("alice", "mintB"),
		entry("bob", "mintC"),
		entry("bob", "mintD"),
	}

	a, b, ok := FirstOwnerPair(entries)
	if !ok {
		t.Fatal("expected a pair")
	}
	if a.Owner != "alice" || b.Owner != "alice" {
		t.Errorf("expected alice's pair, got owners %s/%s", a.Owner, b.Owner)
	}
	if a.Mint != "mintA" || b.Mint != "mintB" {
		t.Errorf("expected mintA/mintB in entry order, got %s/%s", a.Mint, b.Mint)
	}
}

func TestFirstOwnerPair_ExtraAccountsKeepFirstTwo(t *testing.T) {
	entries := []solana.TokenBalance{
		entry("alice", "mintA"),
		entry("alice", "mintB"),
		entry("alice", "mintC"),
	}

	a, b, ok := FirstOwnerPair(entries)
	if !ok {
		t.Fatal("expected a pair")
	}
	if a.Mint != "mintA" || b.Mint != "mintB" {
		t.Errorf("expected first two entries, got %s/%s", a.Mint, b.Mint)
	}
}
