// Package liquidity implements the modify_liquidity pipeline shared by
// increase_liquidity and decrease_liquidity: roll forward a pool's reward
// accumulators, credit a position with whatever it has newly earned, apply
// the requested liquidity delta to both tick boundaries and the position,
// update the pool's active liquidity if the range straddles the current
// price, and compute the token amounts the delta requires or returns.
package liquidity

import (
	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

// Result is the token-amount outcome of a modify_liquidity call: positive
// amounts are owed from the caller (increase), negative amounts are owed
// to the caller (decrease). The orchestrator always returns magnitudes and
// lets the caller apply the sign based on which instruction it served.
type Result struct {
	AmountA uint128.Uint128
	AmountB uint128.Uint128
}

// Modify applies liquidityDelta (positive to add, negative to remove) to
// pos within seq/p, and returns the token amounts it requires (delta > 0)
// or returns (delta < 0).
func Modify(p *pool.Pool, seq *tickarray.Sequence, pos *position.Position, liquidityDelta int64, now int64) (Result, error) {
	if liquidityDelta == 0 {
		return Result{}, kerrors.ErrZeroLiquidity
	}

	// 1. Roll forward the pool's reward and fee growth accumulators before
	// reading any checkpoint derived from them.
	if err := p.RollRewardsAndFeeGrowth(now); err != nil {
		return Result{}, err
	}

	lowerTick, err := seq.GetTick(pos.TickLower)
	if err != nil {
		return Result{}, err
	}
	upperTick, err := seq.GetTick(pos.TickUpper)
	if err != nil {
		return Result{}, err
	}

	// 2. Compute this position's up-to-date in-range growth and 3. credit
	// it before its own liquidity or checkpoints change, so the credit
	// reflects growth earned under the old liquidity amount.
	insideA := tickarray.FeeGrowthInsideA(p.TickCurrentIndex, pos.TickLower, pos.TickUpper, lowerTick, upperTick, p.FeeGrowthGlobalA)
	insideB := tickarray.FeeGrowthInsideB(p.TickCurrentIndex, pos.TickLower, pos.TickUpper, lowerTick, upperTick, p.FeeGrowthGlobalB)
	if err := pos.UpdateFeesOwed(insideA, insideB); err != nil {
		return Result{}, err
	}
	for i := range p.RewardInfos {
		if !p.RewardInfos[i].Initialized() {
			continue
		}
		insideReward := tickarray.RewardGrowthInside(p.TickCurrentIndex, pos.TickLower, pos.TickUpper, lowerTick, upperTick, i, p.RewardInfos[i].GrowthGlobalX64)
		if err := pos.UpdateRewardOwed(i, insideReward); err != nil {
			return Result{}, err
		}
	}

	// 4. Apply the liquidity delta to both tick boundaries.
	if err := lowerTick.UpdateTick(liquidityDelta, false, pos.TickLower, p.TickCurrentIndex, p.FeeGrowthGlobalA, p.FeeGrowthGlobalB, rewardGrowths(p)); err != nil {
		return Result{}, err
	}
	if err := upperTick.UpdateTick(liquidityDelta, true, pos.TickUpper, p.TickCurrentIndex, p.FeeGrowthGlobalA, p.FeeGrowthGlobalB, rewardGrowths(p)); err != nil {
		return Result{}, err
	}

	// 5. Apply the delta to the position itself.
	newLiquidity, err := applySignedDelta(pos.Liquidity, liquidityDelta)
	if err != nil {
		return Result{}, err
	}
	pos.Liquidity = newLiquidity

	// 6. Update the pool's active liquidity only if the position's range
	// straddles the current tick.
	if p.TickCurrentIndex >= pos.TickLower && p.TickCurrentIndex < pos.TickUpper {
		newPoolLiquidity, err := applySignedDelta(p.Liquidity, liquidityDelta)
		if err != nil {
			return Result{}, err
		}
		if newPoolLiquidity.Cmp(fixedpoint.MaxLiquidityPerTick) > 0 {
			return Result{}, kerrors.ErrExcessiveLiquidity
		}
		p.Liquidity = newPoolLiquidity
	}

	// 7. Compute the token amounts this delta requires (or returns).
	sqrtLower, err := fixedpoint.GetSqrtPriceAtTick(pos.TickLower)
	if err != nil {
		return Result{}, err
	}
	sqrtUpper, err := fixedpoint.GetSqrtPriceAtTick(pos.TickUpper)
	if err != nil {
		return Result{}, err
	}

	magnitude := uint128.From64(absU64(liquidityDelta))
	roundUp := liquidityDelta > 0
	amountA, amountB, err := fixedpoint.AmountsFromLiquidity(magnitude, p.SqrtPrice, sqrtLower, sqrtUpper, roundUp)
	if err != nil {
		return Result{}, err
	}
	return Result{AmountA: amountA, AmountB: amountB}, nil
}

func rewardGrowths(p *pool.Pool) [fixedpoint.NumRewards]uint128.Uint128 {
	var out [fixedpoint.NumRewards]uint128.Uint128
	for i := range p.RewardInfos {
		out[i] = p.RewardInfos[i].GrowthGlobalX64
	}
	return out
}

func applySignedDelta(current uint128.Uint128, delta int64) (uint128.Uint128, error) {
	if delta >= 0 {
		return fixedpoint.CheckedAddU128(current, uint128.From64(uint64(delta)))
	}
	return fixedpoint.CheckedSubU128(current, uint128.From64(uint64(-delta)))
}

func absU64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
