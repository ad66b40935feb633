// Package swap implements the swap and two_hop_swap instruction pipelines:
// a per-tick-crossing stepping loop that consumes an exact input or exact
// output amount against a pool's active liquidity, splitting out the
// trading fee and its protocol-fee share at each step, and a two-pool
// composition that chains two such swaps through a shared intermediary
// mint.
package swap

import (
	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// StepResult is the outcome of moving price across a single tick-crossing
// boundary (or stopping short of one because the specified amount or the
// price limit was reached first).
type StepResult struct {
	SqrtPriceNext uint128.Uint128
	AmountIn      uint128.Uint128
	AmountOut     uint128.Uint128
	FeeAmount     uint128.Uint128
}

// ComputeStep advances price from sqrtPriceCurrent toward sqrtPriceTarget
// by as much as amountRemaining (interpreted as exact input when
// specifiedIsInput is true, exact output otherwise) allows, charging
// feeRate (over fixedpoint.FeeRateDenominator) on the input leg. This
// mirrors the whirlpoolSwapStepComputePrecise shape: compute the fee-
// adjusted remaining amount, find the max amount the move to the target
// price would consume, and either land exactly on the target price or
// solve for the exact price the remaining amount reaches.
func ComputeStep(sqrtPriceCurrent, sqrtPriceTarget, liquidity, amountRemaining uint128.Uint128, feeRate uint64, aToB, specifiedIsInput bool) (StepResult, error) {
	// With no liquidity in range, price still advances to the target (the
	// next initialized tick or the price limit) so the caller's stepping
	// loop can keep walking toward liquidity that may start further along;
	// no tokens change hands along the way.
	if liquidity.IsZero() {
		return StepResult{SqrtPriceNext: sqrtPriceTarget}, nil
	}

	amountFixedDelta, err := getAmountFixedDelta(sqrtPriceCurrent, sqrtPriceTarget, liquidity, aToB, specifiedIsInput)
	if err != nil {
		return StepResult{}, err
	}

	var amountCalc uint128.Uint128
	if specifiedIsInput {
		amountCalc, err = feeAdjustedAmount(amountRemaining, feeRate, false)
		if err != nil {
			return StepResult{}, err
		}
	} else {
		amountCalc = amountRemaining
	}

	reachesTarget := amountCalc.Cmp(amountFixedDelta) >= 0

	var sqrtPriceNext uint128.Uint128
	if reachesTarget {
		sqrtPriceNext = sqrtPriceTarget
	} else {
		sqrtPriceNext, err = getNextSqrtPriceFromAmount(sqrtPriceCurrent, liquidity, amountCalc, aToB, specifiedIsInput)
		if err != nil {
			return StepResult{}, err
		}
	}

	isMax := sqrtPriceNext.Cmp(sqrtPriceTarget) == 0

	var amountIn, amountOut uint128.Uint128
	if isMax && specifiedIsInput {
		amountIn = amountFixedDelta
	} else {
		amountIn, err = getAmountUnfixedDeltaInput(sqrtPriceCurrent, sqrtPriceNext, liquidity, aToB)
		if err != nil {
			return StepResult{}, err
		}
	}
	if isMax && !specifiedIsInput {
		amountOut = amountFixedDelta
	} else {
		amountOut, err = getAmountUnfixedDeltaOutput(sqrtPriceCurrent, sqrtPriceNext, liquidity, aToB)
		if err != nil {
			return StepResult{}, err
		}
	}

	if !specifiedIsInput && amountOut.Cmp(amountRemaining) > 0 {
		amountOut = amountRemaining
	}

	var feeAmount uint128.Uint128
	if specifiedIsInput && !isMax {
		feeAmount, err = fixedpoint.CheckedSubU128(amountRemaining, amountIn)
		if err != nil {
			return StepResult{}, err
		}
	} else {
		feeAmount, err = computeFee(amountIn, feeRate)
		if err != nil {
			return StepResult{}, err
		}
	}

	return StepResult{
		SqrtPriceNext: sqrtPriceNext,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		FeeAmount:     feeAmount,
	}, nil
}

// getAmountFixedDelta is the maximum amount (of the token the swap is
// specified in) a move all the way to sqrtPriceTarget would consume or
// produce.
func getAmountFixedDelta(sqrtPriceCurrent, sqrtPriceTarget, liquidity uint128.Uint128, aToB, specifiedIsInput bool) (uint128.Uint128, error) {
	if aToB == specifiedIsInput {
		return fixedpoint.GetAmountAFromLiquidity(liquidity, sqrtPriceTarget, sqrtPriceCurrent, specifiedIsInput)
	}
	return fixedpoint.GetAmountBFromLiquidity(liquidity, sqrtPriceTarget, sqrtPriceCurrent, specifiedIsInput)
}

func getAmountUnfixedDeltaInput(sqrtPriceCurrent, sqrtPriceNext, liquidity uint128.Uint128, aToB bool) (uint128.Uint128, error) {
	if aToB {
		return fixedpoint.GetAmountAFromLiquidity(liquidity, sqrtPriceNext, sqrtPriceCurrent, true)
	}
	return fixedpoint.GetAmountBFromLiquidity(liquidity, sqrtPriceCurrent, sqrtPriceNext, true)
}

func getAmountUnfixedDeltaOutput(sqrtPriceCurrent, sqrtPriceNext, liquidity uint128.Uint128, aToB bool) (uint128.Uint128, error) {
	if aToB {
		return fixedpoint.GetAmountBFromLiquidity(liquidity, sqrtPriceNext, sqrtPriceCurrent, false)
	}
	return fixedpoint.GetAmountAFromLiquidity(liquidity, sqrtPriceCurrent, sqrtPriceNext, false)
}

func getNextSqrtPriceFromAmount(sqrtPrice, liquidity, amount uint128.Uint128, aToB, specifiedIsInput bool) (uint128.Uint128, error) {
	if specifiedIsInput {
		return fixedpoint.GetNextSqrtPriceFromInput(sqrtPrice, liquidity, amount, aToB)
	}
	return fixedpoint.GetNextSqrtPriceFromOutput(sqrtPrice, liquidity, amount, aToB)
}

// feeAdjustedAmount strips (or, if inverse is true, restores) the trading
// fee from a gross input amount. feeRate is over fixedpoint.FeeRateDenominator.
func feeAdjustedAmount(amount uint128.Uint128, feeRate uint64, inverse bool) (uint128.Uint128, error) {
	denom := fixedpoint.FeeRateDenominator
	kept := denom - feeRate
	if inverse {
		return fixedpoint.MulDivCeil(amount, uint128.From64(denom), uint128.From64(kept))
	}
	return fixedpoint.MulDivFloor(amount, uint128.From64(kept), uint128.From64(denom))
}

// computeFee derives the fee portion from an already fee-excluded input
// amount: fee = ceil(amountIn * feeRate / (denominator - feeRate)).
func computeFee(amountIn uint128.Uint128, feeRate uint64) (uint128.Uint128, error) {
	if feeRate == 0 {
		return uint128.Zero, nil
	}
	denom := fixedpoint.FeeRateDenominator
	if feeRate >= denom {
		return uint128.Zero, kerrors.ErrFeeRateExceeded
	}
	return fixedpoint.MulDivCeil(amountIn, uint128.From64(feeRate), uint128.From64(denom-feeRate))
}

// SplitProtocolFee carves the protocol's share out of a total fee amount.
// protocolFeeRate is over fixedpoint.ProtocolFeeRateDenominator.
func SplitProtocolFee(feeAmount uint128.Uint128, protocolFeeRate uint16) (protocolFee, lpFee uint128.Uint128, err error) {
	if protocolFeeRate == 0 {
		return uint128.Zero, feeAmount, nil
	}
	protocolFee, err = fixedpoint.MulDivFloor(feeAmount, uint128.From64(uint64(protocolFeeRate)), uint128.From64(fixedpoint.ProtocolFeeRateDenominator))
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	lpFee, err = fixedpoint.CheckedSubU128(feeAmount, protocolFee)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	return protocolFee, lpFee, nil
}
