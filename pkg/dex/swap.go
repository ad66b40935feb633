package dex

import (
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/swap"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
	"github.com/johnayoung/go-clmm-kernel/pkg/transferfee"
)

// SwapParams is the caller-supplied configuration of the swap instruction:
// the underlying engine parameters, the slippage bound other_amount_threshold
// checks against, and the transfer-fee configuration (if any) of whichever
// mint sits on the input and output side of this trade.
type SwapParams struct {
	swap.Params
	OtherAmountThreshold uint64
	InputTransferFee     *transferfee.Config
	OutputTransferFee    *transferfee.Config
}

// SwapSettlement reports both the engine's internal (vault-side) amounts and
// the external amounts the transfer-fee adapter says the user actually pays
// or receives.
type SwapSettlement struct {
	Internal         swap.Result
	ExternalAmountIn uint64
	ExternalAmountOut uint64
}

// Swap runs a single-pool swap, translating the caller's external amount
// through the relevant mint's transfer-fee adapter before and after the
// engine runs, and enforcing other_amount_threshold against the externally
// realized amount.
func Swap(p *pool.Pool, seq *tickarray.Sequence, params SwapParams, sink EventSink) (SwapSettlement, error) {
	engineParams := params.Params

	if params.AmountSpecifiedIsInput {
		internalIn, _, err := transferfee.FeeExcluded(params.InputTransferFee, params.AmountSpecified)
		if err != nil {
			return SwapSettlement{}, err
		}
		engineParams.AmountSpecified = internalIn
	} else {
		internalOut, _, err := transferfee.FeeIncluded(params.OutputTransferFee, params.AmountSpecified)
		if err != nil {
			return SwapSettlement{}, err
		}
		engineParams.AmountSpecified = internalOut
	}

	result, err := swap.Run(p, seq, engineParams)
	if err != nil {
		return SwapSettlement{}, err
	}

	internalIn, internalOut := swapSides(result, params.AToB)

	externalIn, _, err := transferfee.FeeIncluded(params.InputTransferFee, internalIn)
	if err != nil {
		return SwapSettlement{}, err
	}
	externalOut, _, err := transferfee.FeeExcluded(params.OutputTransferFee, internalOut)
	if err != nil {
		return SwapSettlement{}, err
	}

	if params.AmountSpecifiedIsInput {
		if externalOut < params.OtherAmountThreshold {
			return SwapSettlement{}, kerrors.ErrAmountOutBelowMinimum
		}
	} else {
		if externalIn > params.OtherAmountThreshold {
			return SwapSettlement{}, kerrors.ErrAmountInAboveMaximum
		}
	}

	emit(sink, Swapped{
		AmountSpecifiedIsInput: params.AmountSpecifiedIsInput,
		AToB:                   params.AToB,
		AmountA:                result.AmountA,
		AmountB:                result.AmountB,
		ProtocolFeeA:           result.ProtocolFeeA,
		ProtocolFeeB:           result.ProtocolFeeB,
	})

	return SwapSettlement{Internal: result, ExternalAmountIn: externalIn, ExternalAmountOut: externalOut}, nil
}

// TwoHopSwap runs a two-pool swap and enforces other_amount_threshold
// against the externally realized amount on the unspecified side, the same
// way Swap does for a single pool. The intermediary mint's transfer fee is
// already accounted for inside swap.TwoHopSwap; this wrapper only adapts
// the outer two mints' transfer fees and the slippage check.
func TwoHopSwap(poolOne, poolTwo *pool.Pool, seqOne, seqTwo *tickarray.Sequence, params swap.TwoHopParams, otherAmountThreshold uint64, inputFee, outputFee *transferfee.Config, sink EventSink) (swap.TwoHopResult, error) {
	engineParams := params

	if params.AmountSpecifiedIsInput {
		internalIn, _, err := transferfee.FeeExcluded(inputFee, params.AmountSpecified)
		if err != nil {
			return swap.TwoHopResult{}, err
		}
		engineParams.AmountSpecified = internalIn
	} else {
		internalOut, _, err := transferfee.FeeIncluded(outputFee, params.AmountSpecified)
		if err != nil {
			return swap.TwoHopResult{}, err
		}
		engineParams.AmountSpecified = internalOut
	}

	result, err := swap.TwoHopSwap(poolOne, poolTwo, seqOne, seqTwo, engineParams)
	if err != nil {
		return swap.TwoHopResult{}, err
	}

	internalIn, internalOut := swapSides(result.HopOne, params.AToBOne)
	_ = internalIn
	_, internalOutTwo := swapSides(result.HopTwo, params.AToBTwo)
	internalOut = internalOutTwo

	externalIn, _, err := transferfee.FeeIncluded(inputFee, internalIn)
	if err != nil {
		return swap.TwoHopResult{}, err
	}
	externalOut, _, err := transferfee.FeeExcluded(outputFee, internalOut)
	if err != nil {
		return swap.TwoHopResult{}, err
	}

	if params.AmountSpecifiedIsInput {
		if externalOut < otherAmountThreshold {
			return swap.TwoHopResult{}, kerrors.ErrAmountOutBelowMinimum
		}
	} else {
		if externalIn > otherAmountThreshold {
			return swap.TwoHopResult{}, kerrors.ErrAmountInAboveMaximum
		}
	}

	emit(sink, TwoHopSwapped{
		IntermediaryAmount:   result.IntermediaryAmount,
		IntermediaryFeeTaken: result.IntermediaryFeeTaken,
	})

	return result, nil
}

// swapSides extracts (amountIn, amountOut) from a single-pool swap result
// based on its trade direction.
func swapSides(r swap.Result, aToB bool) (amountIn, amountOut uint64) {
	if aToB {
		return r.AmountA, r.AmountB
	}
	return r.AmountB, r.AmountA
}
