// Package balances selects the acting user's token balance pair from a
// transaction's post-balance list.
package balances

import "solana-dca-watch/internal/solana"

// FirstOwnerPair groups post-balance entries by owner, preserving first
// appearance order, and returns the first two entries of the first owner
// holding at least two. Returns ok=false when no owner reaches two entries.
//
// The selected entries are not verified against the mints of the decoded
// instruction, so owners with extra token accounts (fee or referral
// accounts) can yield the wrong pair. Known limitation.
func FirstOwnerPair(entries []solana.TokenBalance) (a, b solana.TokenBalance, ok bool) {
	if len(entries) < 2 {
		return solana.TokenBalance{}, solana.TokenBalance{}, false
	}

	groups := make(map[string][]solana.TokenBalance)
	var owners []string

	for _, e := range entries {
		if _, seen := groups[e.Owner]; !seen {
			owners = append(owners, e.Owner)
		}
		groups[e.Owner] = append(groups[e.Owner], e)
	}

	for _, owner := range owners {
		g := groups[owner]
		if len(g) >= 2 {
			return g[0], g[1], true
		}
	}

	return solana.TokenBalance{}, solana.TokenBalance{}, false
}
