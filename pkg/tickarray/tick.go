// Package tickarray holds the tick and tick-array bookkeeping that the
// swap and liquidity pipelines walk across: per-tick liquidity and growth
// checkpoints, grouped into fixed-size arrays addressed by a start index.
package tickarray

import (
	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// Tick is the per-index bookkeeping record a swap or liquidity change reads
// and mutates as price crosses it.
type Tick struct {
	Initialized    bool
	LiquidityNet   int64 // signed: positive when crossed left-to-right (tick_lower), negative for tick_upper
	LiquidityGross uint64

	FeeGrowthOutsideA uint128.Uint128
	FeeGrowthOutsideB uint128.Uint128

	// RewardGrowthsOutside tracks the reward-growth-outside checkpoint for
	// each of fixedpoint.NumRewards concurrent emissions.
	RewardGrowthsOutside [fixedpoint.NumRewards]uint128.Uint128
}

// UpdateTick applies a liquidity delta to this tick's gross and net
// bookkeeping. upper indicates whether this tick is the upper bound of the
// position being modified; liquidityNet accumulates with the sign
// convention that crossing a lower tick left-to-right adds liquidity and
// crossing an upper tick subtracts it, matching the initOrUpdateTick
// pattern: add for lower, subtract for upper. tickIndex and tickCurrent
// determine how a newly-initialized tick's outside-growth checkpoints are
// seeded: at or below the current tick, outside starts equal to global, as
// if all growth so far happened below; above the current tick, price
// hasn't reached it yet, so outside starts at zero.
func (t *Tick) UpdateTick(liquidityDelta int64, upper bool, tickIndex, tickCurrent int32, feeGrowthGlobalA, feeGrowthGlobalB uint128.Uint128, rewardGrowthsGlobal [fixedpoint.NumRewards]uint128.Uint128) error {
	grossBefore := t.LiquidityGross
	grossAfter, err := addLiquidityGross(grossBefore, liquidityDelta)
	if err != nil {
		return err
	}

	if !t.Initialized {
		if tickIndex <= tickCurrent {
			t.FeeGrowthOutsideA = feeGrowthGlobalA
			t.FeeGrowthOutsideB = feeGrowthGlobalB
			t.RewardGrowthsOutside = rewardGrowthsGlobal
		} else {
			t.FeeGrowthOutsideA = uint128.Zero
			t.FeeGrowthOutsideB = uint128.Zero
			t.RewardGrowthsOutside = [fixedpoint.NumRewards]uint128.Uint128{}
		}
	}

	if upper {
		t.LiquidityNet -= liquidityDelta
	} else {
		t.LiquidityNet += liquidityDelta
	}
	t.LiquidityGross = grossAfter
	t.Initialized = grossAfter != 0

	if absInt64(t.LiquidityNet) > int64(t.LiquidityGross) {
		return kerrors.ErrTickLiquidityNet
	}
	return nil
}

// Cross flips this tick's outside-growth checkpoints to "the other side" as
// price crosses it, and returns the signed liquidity delta the caller
// should apply to the pool's active liquidity.
func (t *Tick) Cross(feeGrowthGlobalA, feeGrowthGlobalB uint128.Uint128, rewardGrowthsGlobal [fixedpoint.NumRewards]uint128.Uint128) int64 {
	t.FeeGrowthOutsideA = subU128Wrapping(feeGrowthGlobalA, t.FeeGrowthOutsideA)
	t.FeeGrowthOutsideB = subU128Wrapping(feeGrowthGlobalB, t.FeeGrowthOutsideB)
	for i := range t.RewardGrowthsOutside {
		t.RewardGrowthsOutside[i] = subU128Wrapping(rewardGrowthsGlobal[i], t.RewardGrowthsOutside[i])
	}
	return t.LiquidityNet
}

func addLiquidityGross(gross uint64, delta int64) (uint64, error) {
	if delta >= 0 {
		sum := gross + uint64(delta)
		if sum < gross {
			return 0, kerrors.ErrLiquidityOverflow
		}
		return sum, nil
	}
	sub := uint64(-delta)
	if sub > gross {
		return 0, kerrors.ErrLiquidityUnderflow
	}
	return gross - sub, nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// subU128Wrapping computes global-outside, wrapping modulo 2^128 the way an
// on-chain u128 subtraction does, since fee/reward growth accumulators are
// monotonically increasing counters meant to wrap.
func subU128Wrapping(global, outside uint128.Uint128) uint128.Uint128 {
	return global.SubWrap(outside)
}
