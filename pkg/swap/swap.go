package swap

import (
	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

// maxSwapSteps bounds the tick-crossing loop so a pathological sequence of
// tiny initialized-tick gaps cannot spin the instruction indefinitely; it
// is generous relative to fixedpoint.TicksPerArray*3, the largest span a
// single swap's supplied arrays can cover.
const maxSwapSteps = 512

// Params is the caller-supplied configuration of a single-pool swap.
type Params struct {
	AmountSpecified      uint64
	AmountSpecifiedIsInput bool
	AToB                 bool
	SqrtPriceLimit       uint128.Uint128
	Now                  int64
}

// Result is the settled outcome of a swap: the total amounts moved and the
// protocol fee accrued on each side. The pool's new price, tick and
// liquidity are not part of it; Run writes them onto the pool it was
// passed.
type Result struct {
	AmountA       uint64
	AmountB       uint64
	ProtocolFeeA  uint64
	ProtocolFeeB  uint64
}

// Run executes a swap against p using seq to find and cross initialized
// ticks, mutating p's price, tick, liquidity and fee-growth fields in
// place and returning the total token amounts moved.
func Run(p *pool.Pool, seq *tickarray.Sequence, params Params) (Result, error) {
	if params.AmountSpecified == 0 {
		return Result{}, kerrors.ErrNoTradableAmount
	}
	if err := validateSqrtPriceLimit(p, params); err != nil {
		return Result{}, err
	}
	if err := p.RollRewardsAndFeeGrowth(params.Now); err != nil {
		return Result{}, err
	}

	state := swapState{
		amountRemaining: uint128.From64(params.AmountSpecified),
		amountCalculated: uint128.Zero,
		sqrtPrice:       p.SqrtPrice,
		tickCurrent:     p.TickCurrentIndex,
		liquidity:       p.Liquidity,
	}

	var protocolFeeA, protocolFeeB uint128.Uint128

	for steps := 0; steps < maxSwapSteps && !state.amountRemaining.IsZero() && state.sqrtPrice.Cmp(params.SqrtPriceLimit) != 0; steps++ {
		nextTick, found, err := seq.NextInitializedTick(state.tickCurrent, p.TickSpacing, params.AToB)
		if err != nil {
			return Result{}, err
		}

		nextSqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(nextTick)
		if err != nil {
			return Result{}, err
		}
		target := clampToLimit(nextSqrtPrice, params.SqrtPriceLimit, params.AToB)

		step, err := ComputeStep(state.sqrtPrice, target, state.liquidity, state.amountRemaining, p.FeeRate, params.AToB, params.AmountSpecifiedIsInput)
		if err != nil {
			return Result{}, err
		}

		if err := state.apply(step, params.AmountSpecifiedIsInput); err != nil {
			return Result{}, err
		}

		protoFee, lpFee, err := SplitProtocolFee(step.FeeAmount, p.ProtocolFeeRate)
		if err != nil {
			return Result{}, err
		}
		if err := state.creditFee(p, lpFee, params.AToB); err != nil {
			return Result{}, err
		}
		if params.AToB {
			protocolFeeA = protocolFeeA.Add(protoFee)
		} else {
			protocolFeeB = protocolFeeB.Add(protoFee)
		}

		if step.SqrtPriceNext.Cmp(nextSqrtPrice) == 0 && found {
			tick, err := seq.GetTick(nextTick)
			if err != nil {
				return Result{}, err
			}
			liquidityNet := tick.Cross(p.FeeGrowthGlobalA, p.FeeGrowthGlobalB, rewardGrowthsOf(p))
			if params.AToB {
				liquidityNet = -liquidityNet
			}
			newLiquidity, err := applySigned(state.liquidity, liquidityNet)
			if err != nil {
				return Result{}, err
			}
			state.liquidity = newLiquidity
			if params.AToB {
				state.tickCurrent = nextTick - 1
			} else {
				state.tickCurrent = nextTick
			}
		} else {
			if !found && step.SqrtPriceNext.Cmp(target) == 0 && !state.amountRemaining.IsZero() {
				return Result{}, kerrors.ErrInvalidTickArraySequence
			}
			tick, err := fixedpoint.GetTickAtSqrtPrice(step.SqrtPriceNext)
			if err != nil {
				return Result{}, err
			}
			state.tickCurrent = tick
		}
		state.sqrtPrice = step.SqrtPriceNext
	}

	p.SqrtPrice = state.sqrtPrice
	p.TickCurrentIndex = state.tickCurrent
	p.Liquidity = state.liquidity
	newProtocolFeeA := protocolFeeA.Add64(p.ProtocolFeeOwedA)
	newProtocolFeeB := protocolFeeB.Add64(p.ProtocolFeeOwedB)
	if newProtocolFeeA.Hi != 0 || newProtocolFeeB.Hi != 0 {
		return Result{}, kerrors.ErrAmountCalculationOverflow
	}
	p.ProtocolFeeOwedA = newProtocolFeeA.Lo
	p.ProtocolFeeOwedB = newProtocolFeeB.Lo

	amountIn, amountOut, err := state.totals(params.AmountSpecified, params.AmountSpecifiedIsInput)
	if err != nil {
		return Result{}, err
	}
	result := Result{ProtocolFeeA: protocolFeeA.Lo, ProtocolFeeB: protocolFeeB.Lo}
	if params.AToB {
		result.AmountA, result.AmountB = amountIn, amountOut
	} else {
		result.AmountB, result.AmountA = amountIn, amountOut
	}
	return result, nil
}

type swapState struct {
	amountRemaining  uint128.Uint128
	amountCalculated uint128.Uint128
	sqrtPrice        uint128.Uint128
	tickCurrent      int32
	liquidity        uint128.Uint128
}

func (s *swapState) apply(step StepResult, specifiedIsInput bool) error {
	if specifiedIsInput {
		consumed, err := fixedpoint.CheckedAddU128(step.AmountIn, step.FeeAmount)
		if err != nil {
			return err
		}
		remaining, err := fixedpoint.CheckedSubU128(s.amountRemaining, consumed)
		if err != nil {
			return err
		}
		s.amountRemaining = remaining
		s.amountCalculated = s.amountCalculated.Add(step.AmountOut)
	} else {
		remaining, err := fixedpoint.CheckedSubU128(s.amountRemaining, step.AmountOut)
		if err != nil {
			return err
		}
		s.amountRemaining = remaining
		sum, err := fixedpoint.CheckedAddU128(step.AmountIn, step.FeeAmount)
		if err != nil {
			return err
		}
		s.amountCalculated = s.amountCalculated.Add(sum)
	}
	return nil
}

func (s *swapState) creditFee(p *pool.Pool, lpFee uint128.Uint128, aToB bool) error {
	if s.liquidity.IsZero() {
		return nil
	}
	growthDelta, err := fixedpoint.MulU128(lpFee, fixedpoint.Q64One())
	if err != nil {
		return err
	}
	growthDelta, err = fixedpoint.DivFloor(growthDelta, s.liquidity)
	if err != nil {
		return err
	}
	if aToB {
		p.FeeGrowthGlobalA = p.FeeGrowthGlobalA.Add(growthDelta)
	} else {
		p.FeeGrowthGlobalB = p.FeeGrowthGlobalB.Add(growthDelta)
	}
	return nil
}

// totals returns (amountIn, amountOut) for the swap as a whole: for an
// exact-input swap the input side is amountSpecified minus whatever never
// got consumed, and the output side is the running amountCalculated total;
// for exact-output it is the other way around.
func (s *swapState) totals(amountSpecified uint64, specifiedIsInput bool) (amountIn, amountOut uint64, err error) {
	consumed, err := fixedpoint.CheckedSubU128(uint128.From64(amountSpecified), s.amountRemaining)
	if err != nil {
		return 0, 0, err
	}
	if consumed.Hi != 0 || s.amountCalculated.Hi != 0 {
		return 0, 0, kerrors.ErrAmountCalculationOverflow
	}
	if specifiedIsInput {
		return consumed.Lo, s.amountCalculated.Lo, nil
	}
	return s.amountCalculated.Lo, consumed.Lo, nil
}

func rewardGrowthsOf(p *pool.Pool) [fixedpoint.NumRewards]uint128.Uint128 {
	var out [fixedpoint.NumRewards]uint128.Uint128
	for i := range p.RewardInfos {
		out[i] = p.RewardInfos[i].GrowthGlobalX64
	}
	return out
}

func applySigned(current uint128.Uint128, delta int64) (uint128.Uint128, error) {
	if delta >= 0 {
		return fixedpoint.CheckedAddU128(current, uint128.From64(uint64(delta)))
	}
	return fixedpoint.CheckedSubU128(current, uint128.From64(uint64(-delta)))
}

func validateSqrtPriceLimit(p *pool.Pool, params Params) error {
	if params.AToB {
		if params.SqrtPriceLimit.Cmp(p.SqrtPrice) > 0 || params.SqrtPriceLimit.Cmp(fixedpoint.MinSqrtPriceX64) < 0 {
			return kerrors.ErrInvalidSqrtPriceLimitDirection
		}
	} else {
		if params.SqrtPriceLimit.Cmp(p.SqrtPrice) < 0 || params.SqrtPriceLimit.Cmp(fixedpoint.MaxSqrtPriceX64) > 0 {
			return kerrors.ErrInvalidSqrtPriceLimitDirection
		}
	}
	return nil
}

func clampToLimit(nextSqrtPrice, limit uint128.Uint128, aToB bool) uint128.Uint128 {
	if aToB {
		if nextSqrtPrice.Cmp(limit) < 0 {
			return limit
		}
		return nextSqrtPrice
	}
	if nextSqrtPrice.Cmp(limit) > 0 {
		return limit
	}
	return nextSqrtPrice
}
