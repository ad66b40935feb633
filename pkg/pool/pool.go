// Package pool holds the settlement kernel's central account: the Pool
// state machine that swap and liquidity orchestration read and mutate, plus
// the small long-lived admin records (Config, FeeTier, TokenWrapper) a
// deployment is rooted at.
package pool

import (
	"lukechampine.com/uint128"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// RewardInfo is one of a pool's fixedpoint.NumRewards concurrent emission
// slots: a mint, the vault it is paid out of, the authority that may adjust
// its emissions rate, the emissions rate itself, and the running per-unit-
// of-liquidity growth accumulator.
type RewardInfo struct {
	Mint                solana.PublicKey
	Vault               solana.PublicKey
	Authority           solana.PublicKey
	EmissionsPerSecondX64 uint128.Uint128
	GrowthGlobalX64     uint128.Uint128
}

// Initialized reports whether this reward slot has a mint assigned.
func (r *RewardInfo) Initialized() bool {
	return !r.Mint.IsZero()
}

// Pool is the settlement kernel's central state machine: the immutable
// pair identity and tick spacing it was opened with, plus the mutable
// price, liquidity and growth accumulators every swap and liquidity change
// reads and advances.
type Pool struct {
	// Immutable identity, set at initialize_pool time.
	ConfigKey   solana.PublicKey
	MintA       solana.PublicKey
	MintB       solana.PublicKey
	VaultA      solana.PublicKey
	VaultB      solana.PublicKey
	TickSpacing int32
	FeeRate     uint64 // over fixedpoint.FeeRateDenominator
	ProtocolFeeRate uint16 // over fixedpoint.ProtocolFeeRateDenominator, fraction of FeeRate

	// Mutable state.
	SqrtPrice         uint128.Uint128
	TickCurrentIndex  int32
	Liquidity         uint128.Uint128
	FeeGrowthGlobalA  uint128.Uint128
	FeeGrowthGlobalB  uint128.Uint128
	ProtocolFeeOwedA  uint64
	ProtocolFeeOwedB  uint64
	RewardInfos       [fixedpoint.NumRewards]RewardInfo
	RewardLastUpdatedTimestamp int64
}

// New constructs a pool at the given starting sqrt price, validating the
// token ordering and fee-tier membership the way initialize_pool requires.
func New(config *Config, mintA, mintB, vaultA, vaultB solana.PublicKey, tier FeeTier, startSqrtPrice uint128.Uint128) (*Pool, error) {
	if compareMints(mintA, mintB) >= 0 {
		return nil, kerrors.ErrInvalidTokenMintOrder
	}
	if _, err := Lookup(config.FeeTiers, tier.TickSpacing); err != nil {
		return nil, err
	}
	if startSqrtPrice.Cmp(fixedpoint.MinSqrtPriceX64) < 0 || startSqrtPrice.Cmp(fixedpoint.MaxSqrtPriceX64) > 0 {
		return nil, kerrors.ErrSqrtPriceOutOfBounds
	}
	tickCurrent, err := fixedpoint.GetTickAtSqrtPrice(startSqrtPrice)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		ConfigKey:        config.FeeAuthority,
		MintA:            mintA,
		MintB:            mintB,
		VaultA:           vaultA,
		VaultB:           vaultB,
		TickSpacing:      tier.TickSpacing,
		FeeRate:          tier.DefaultFeeRate,
		ProtocolFeeRate:  config.DefaultProtocolFeeRate,
		SqrtPrice:        startSqrtPrice,
		TickCurrentIndex: tickCurrent,
	}
	return p, nil
}

func compareMints(a, b solana.PublicKey) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SetFeeRate updates the pool's trading fee rate, enforcing the documented
// ceiling.
func (p *Pool) SetFeeRate(feeRate uint64) error {
	if feeRate > uint64(fixedpoint.MaxFeeRate) {
		return kerrors.ErrFeeRateExceeded
	}
	p.FeeRate = feeRate
	return nil
}

// SetProtocolFeeRate updates the pool's protocol fee rate, enforcing the
// documented ceiling.
func (p *Pool) SetProtocolFeeRate(rate uint16) error {
	if rate > fixedpoint.MaxProtocolFeeRate {
		return kerrors.ErrProtocolFeeRateExceeded
	}
	p.ProtocolFeeRate = rate
	return nil
}

// InitializeReward assigns a mint and vault to the next unused reward slot.
// Reward slots must be initialized in order, matching the original
// program's sequential reward-index requirement.
func (p *Pool) InitializeReward(index int, mint, vault, authority solana.PublicKey) error {
	if index < 0 || index >= fixedpoint.NumRewards {
		return kerrors.ErrInvalidRewardIndex
	}
	for i := 0; i < index; i++ {
		if !p.RewardInfos[i].Initialized() {
			return kerrors.ErrInvalidRewardIndex
		}
	}
	if p.RewardInfos[index].Initialized() {
		return kerrors.ErrInvalidRewardIndex
	}
	p.RewardInfos[index] = RewardInfo{Mint: mint, Vault: vault, Authority: authority}
	return nil
}
