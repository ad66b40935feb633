package transferfee

import "github.com/gagliardetto/solana-go"

// TokenAdapter is the capability set the settlement kernel needs from
// whichever SPL token program a mint belongs to: a checked transfer, its
// transfer-fee configuration (if any), its transfer-hook program (if any),
// and whether a memo is required alongside a transfer. The kernel dispatches
// against this interface rather than branching on token standard at every
// call site; LegacyAdapter and Token2022Adapter are the two concrete
// variants a mint resolves to.
type TokenAdapter interface {
	TransferChecked(from, to solana.PublicKey, amount uint64, decimals uint8) error
	TransferFeeConfig() *Config
	TransferHookProgramID() (solana.PublicKey, bool)
	IsMemoRequired() bool
}

// TransferFunc is the host-provided primitive that actually moves tokens;
// both adapter variants are built around one so the kernel never depends on
// a specific token-program client.
type TransferFunc func(from, to solana.PublicKey, amount uint64, decimals uint8) error

// LegacyAdapter implements TokenAdapter for the original SPL Token program,
// which carries none of the Token-2022 extensions.
type LegacyAdapter struct {
	Transfer TransferFunc
}

func (a LegacyAdapter) TransferChecked(from, to solana.PublicKey, amount uint64, decimals uint8) error {
	return a.Transfer(from, to, amount, decimals)
}

func (a LegacyAdapter) TransferFeeConfig() *Config { return nil }

func (a LegacyAdapter) TransferHookProgramID() (solana.PublicKey, bool) {
	return solana.PublicKey{}, false
}

func (a LegacyAdapter) IsMemoRequired() bool { return false }

// Token2022Adapter implements TokenAdapter for SPL Token-2022 mints, which
// may carry the transfer-fee, transfer-hook, and/or required-memo
// extensions independently of one another.
type Token2022Adapter struct {
	Transfer     TransferFunc
	FeeConfig    *Config
	HookProgram  *solana.PublicKey
	MemoRequired bool
}

func (a Token2022Adapter) TransferChecked(from, to solana.PublicKey, amount uint64, decimals uint8) error {
	return a.Transfer(from, to, amount, decimals)
}

func (a Token2022Adapter) TransferFeeConfig() *Config { return a.FeeConfig }

func (a Token2022Adapter) TransferHookProgramID() (solana.PublicKey, bool) {
	if a.HookProgram == nil {
		return solana.PublicKey{}, false
	}
	return *a.HookProgram, true
}

func (a Token2022Adapter) IsMemoRequired() bool { return a.MemoRequired }
