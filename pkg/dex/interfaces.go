// Package dex is the top-level instruction surface of the settlement
// kernel: one function per operation named in the instruction set, each
// validating its own parameters and caller-supplied limits before
// delegating to the pkg/pool, pkg/position, pkg/liquidity, pkg/swap and
// pkg/transferfee orchestration underneath. Nothing in this package talks
// to a host ledger directly — token movement and event transport are taken
// as collaborator interfaces so the kernel stays host-agnostic.
package dex

import "github.com/gagliardetto/solana-go"

// TokenTransferer is the host-provided primitive that actually moves
// tokens between accounts. The collect instructions (CollectFees,
// CollectReward, CollectProtocolFees) take one explicitly; Swap and the
// liquidity instructions return the amounts to settle instead. This package
// never assumes a specific token-program client.
type TokenTransferer interface {
	Transfer(from, to, mint solana.PublicKey, amount uint64) error
}

// EventSink receives the structured event record a mutation emits, in
// place of a formatted debug string. What the host does with an event
// (write it to a log, forward it to an indexer, post it as a CPI) is
// entirely its own concern.
type EventSink interface {
	Emit(event any)
}
