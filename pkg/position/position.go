// Package position holds the per-liquidity-provider account: a tick range,
// the liquidity deposited against it, and the fee/reward checkpoints that
// let the liquidity and swap pipelines compute how much is newly owed
// without rescanning history.
package position

import (
	"lukechampine.com/uint128"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// RewardCheckpoint is a position's last-seen reward growth and the amount
// of that reward now owed but not yet collected.
type RewardCheckpoint struct {
	GrowthInsideCheckpointX64 uint128.Uint128
	AmountOwed                uint64
}

// Position is the account a single receipt token (minted 1:1 at
// open_position time) gives its holder authority over.
type Position struct {
	Pool       solana.PublicKey
	PositionMint solana.PublicKey
	TickLower  int32
	TickUpper  int32
	Liquidity  uint128.Uint128

	FeeGrowthCheckpointA uint128.Uint128
	FeeGrowthCheckpointB uint128.Uint128
	FeeOwedA             uint64
	FeeOwedB             uint64

	Rewards [fixedpoint.NumRewards]RewardCheckpoint

	// TradeBatch, when non-zero, names the PositionTradeBatch this position
	// was opened under instead of its own standalone receipt mint.
	TradeBatch solana.PublicKey
}

// Open validates a requested tick range and constructs a new, empty
// position. Liquidity and checkpoints start at zero; they are populated by
// the first increase_liquidity call.
func Open(poolKey, positionMint solana.PublicKey, tickLower, tickUpper, tickSpacing int32) (*Position, error) {
	if err := ValidateTickRange(tickLower, tickUpper, tickSpacing); err != nil {
		return nil, err
	}
	return &Position{Pool: poolKey, PositionMint: positionMint, TickLower: tickLower, TickUpper: tickUpper}, nil
}

// ValidateTickRange enforces spacing alignment, global bounds, and
// lower-strictly-less-than-upper, mirroring validateTickRangeIsValid.
func ValidateTickRange(tickLower, tickUpper, tickSpacing int32) error {
	if tickLower%tickSpacing != 0 || tickUpper%tickSpacing != 0 {
		return kerrors.ErrInvalidTickIndex
	}
	if tickLower < fixedpoint.MinTick || tickLower >= fixedpoint.MaxTick {
		return kerrors.ErrInvalidTickIndex
	}
	if tickUpper > fixedpoint.MaxTick || tickUpper <= fixedpoint.MinTick {
		return kerrors.ErrInvalidTickIndex
	}
	if tickLower >= tickUpper {
		return kerrors.ErrInvalidTickIndex
	}
	return nil
}

// IsEmpty reports whether a position can be closed: zero liquidity and
// nothing owed in fees or any reward.
func (p *Position) IsEmpty() bool {
	if !p.Liquidity.IsZero() {
		return false
	}
	if p.FeeOwedA != 0 || p.FeeOwedB != 0 {
		return false
	}
	for _, r := range p.Rewards {
		if r.AmountOwed != 0 {
			return false
		}
	}
	return true
}

// Close validates a position is empty and clears its identity so the
// receipt token can be burned by the caller.
func (p *Position) Close() error {
	if !p.IsEmpty() {
		return kerrors.ErrNonEmptyPositionClose
	}
	*p = Position{}
	return nil
}

// UpdateFeesOwed credits newly-accrued fees into FeeOwedA/B from the
// updated inside-range growth, and advances the position's checkpoint to
// match. feeGrowthInsideA/B are the pool's current per-unit-of-liquidity
// fee growth inside this position's range (computed by the caller from
// pool and tick state).
func (p *Position) UpdateFeesOwed(feeGrowthInsideA, feeGrowthInsideB uint128.Uint128) error {
	deltaA := feeGrowthInsideA.Sub(p.FeeGrowthCheckpointA)
	deltaB := feeGrowthInsideB.Sub(p.FeeGrowthCheckpointB)

	earnedA, err := fixedpoint.MulShiftRight(deltaA, p.Liquidity, fixedpoint.Q64Resolution)
	if err != nil {
		return err
	}
	earnedB, err := fixedpoint.MulShiftRight(deltaB, p.Liquidity, fixedpoint.Q64Resolution)
	if err != nil {
		return err
	}

	newOwedA := earnedA.Add64(p.FeeOwedA)
	newOwedB := earnedB.Add64(p.FeeOwedB)
	if newOwedA.Hi != 0 || newOwedB.Hi != 0 {
		return kerrors.ErrAmountCalculationOverflow
	}
	p.FeeOwedA = newOwedA.Lo
	p.FeeOwedB = newOwedB.Lo
	p.FeeGrowthCheckpointA = feeGrowthInsideA
	p.FeeGrowthCheckpointB = feeGrowthInsideB
	return nil
}

// UpdateRewardOwed credits newly-accrued reward amounts for a single
// reward index the same way UpdateFeesOwed does for trading fees.
func (p *Position) UpdateRewardOwed(index int, growthInside uint128.Uint128) error {
	if index < 0 || index >= fixedpoint.NumRewards {
		return kerrors.ErrInvalidRewardIndex
	}
	r := &p.Rewards[index]
	delta := growthInside.Sub(r.GrowthInsideCheckpointX64)
	earned, err := fixedpoint.MulShiftRight(delta, p.Liquidity, fixedpoint.Q64Resolution)
	if err != nil {
		return err
	}
	newOwed := earned.Add64(r.AmountOwed)
	if newOwed.Hi != 0 {
		return kerrors.ErrAmountCalculationOverflow
	}
	r.AmountOwed = newOwed.Lo
	r.GrowthInsideCheckpointX64 = growthInside
	return nil
}

// CollectFees zeroes and returns the fees currently owed.
func (p *Position) CollectFees() (amountA, amountB uint64) {
	amountA, amountB = p.FeeOwedA, p.FeeOwedB
	p.FeeOwedA, p.FeeOwedB = 0, 0
	return amountA, amountB
}

// CollectReward zeroes and returns the amount owed for a single reward
// index.
func (p *Position) CollectReward(index int) (uint64, error) {
	if index < 0 || index >= fixedpoint.NumRewards {
		return 0, kerrors.ErrInvalidRewardIndex
	}
	amount := p.Rewards[index].AmountOwed
	p.Rewards[index].AmountOwed = 0
	return amount, nil
}
