package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// Config is the small, long-lived admin record a deployment of the
// settlement kernel is rooted at: who may register fee tiers, who collects
// the protocol's share of trading fees, and the whitelist of registered
// fee tiers pools may be opened against.
type Config struct {
	FeeAuthority           solana.PublicKey
	CollectProtocolFeesAuthority solana.PublicKey
	RewardEmissionsSuperAuthority solana.PublicKey
	DefaultProtocolFeeRate uint16
	FeeTiers               []FeeTier
}

// Validate checks the admin record's invariants: the fee authority must be
// set, and the default protocol fee rate must not exceed the documented
// ceiling. The other two authorities are not checked.
func (c *Config) Validate(maxProtocolFeeRate uint16) error {
	if c.FeeAuthority.IsZero() {
		return kerrors.ErrInvalidDelegate
	}
	if c.DefaultProtocolFeeRate > maxProtocolFeeRate {
		return kerrors.ErrProtocolFeeRateExceeded
	}
	return nil
}

// RegisterFeeTier adds a fee tier to the config's whitelist, rejecting a
// tick spacing that is already registered.
func (c *Config) RegisterFeeTier(tier FeeTier) error {
	if _, err := Lookup(c.FeeTiers, tier.TickSpacing); err == nil {
		return kerrors.ErrUnsupportedTickSpacing
	}
	c.FeeTiers = append(c.FeeTiers, tier)
	return nil
}

// TokenWrapper records a non-native mint's capability set (transfer-fee
// config, transfer-hook presence, permanent-delegate, and so on) so the
// settlement kernel can dispatch to the correct transfer-fee handling
// without re-deriving it on every instruction.
type TokenWrapper struct {
	Mint                     solana.PublicKey
	HasTransferFee           bool
	HasTransferHook          bool
	HasPermanentDelegate     bool
	HasConfidentialTransfer  bool
	HasNonTransferable       bool
	HasDefaultState          bool
	HasCloseAuthority        bool
	HasMetadataPointer       bool
	deleted                  bool
}

// AllowedExtensions is the whitelist of mint extensions this kernel knows
// how to settle against. Confidential-transfer and non-transferable mints
// are rejected outright: the former hides the amounts the engine's
// conservation invariants must account for, the latter can never satisfy a
// swap or a liquidity withdrawal. Every other tracked extension, permanent
// delegate included, is accepted.
func (w *TokenWrapper) AllowedExtensions() bool {
	if w.HasConfidentialTransfer || w.HasNonTransferable {
		return false
	}
	return true
}

// Delete marks a token wrapper as reclaimed. A deleted wrapper can no
// longer back a newly-initialized pool.
func (w *TokenWrapper) Delete() error {
	if w.deleted {
		return kerrors.ErrUnsupportedTokenMint
	}
	w.deleted = true
	return nil
}

// Deleted reports whether this wrapper has been reclaimed.
func (w *TokenWrapper) Deleted() bool { return w.deleted }
