package swap

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
	"github.com/johnayoung/go-clmm-kernel/pkg/transferfee"
)

// TwoHopParams is the caller-supplied configuration of a two-hop swap: a
// single specified amount and direction flag shared across both hops, each
// hop's own a_to_b and price-limit, and the transfer-fee configuration of
// the intermediary mint the two hops share (nil if that mint carries no
// transfer-fee extension).
type TwoHopParams struct {
	AmountSpecified        uint64
	AmountSpecifiedIsInput bool
	AToBOne                bool
	AToBTwo                bool
	SqrtPriceLimitOne      uint128.Uint128
	SqrtPriceLimitTwo      uint128.Uint128
	IntermediaryFee        *transferfee.Config
	Now                    int64
}

// TwoHopResult is the settled outcome of both hops.
type TwoHopResult struct {
	HopOne              Result
	HopTwo              Result
	IntermediaryAmount  uint64
	IntermediaryFeeTaken uint64
}

// TwoHopSwap composes two single-pool swaps sharing an intermediary mint.
// For an exact-input swap the hops run forward: hop one's output, net of the
// intermediary mint's transfer fee, becomes hop two's exact input. For an
// exact-output swap the hops are computed in reverse (hop two first, from
// the desired final output; hop one second, from hop two's required input
// grossed up for the transfer fee) but settled in the order returned, hop
// one then hop two, matching the original program's account ordering.
func TwoHopSwap(poolOne, poolTwo *pool.Pool, seqOne, seqTwo *tickarray.Sequence, params TwoHopParams) (TwoHopResult, error) {
	if samePool(poolOne, poolTwo) {
		return TwoHopResult{}, kerrors.ErrDuplicateTwoHopPool
	}
	if outputMint(poolOne, params.AToBOne) != inputMint(poolTwo, params.AToBTwo) {
		return TwoHopResult{}, kerrors.ErrInvalidIntermediaryMint
	}

	if params.AmountSpecifiedIsInput {
		return twoHopExactIn(poolOne, poolTwo, seqOne, seqTwo, params)
	}
	return twoHopExactOut(poolOne, poolTwo, seqOne, seqTwo, params)
}

func twoHopExactIn(poolOne, poolTwo *pool.Pool, seqOne, seqTwo *tickarray.Sequence, params TwoHopParams) (TwoHopResult, error) {
	hopOne, err := Run(poolOne, seqOne, Params{
		AmountSpecified:        params.AmountSpecified,
		AmountSpecifiedIsInput: true,
		AToB:                   params.AToBOne,
		SqrtPriceLimit:         params.SqrtPriceLimitOne,
		Now:                    params.Now,
	})
	if err != nil {
		return TwoHopResult{}, err
	}

	rawIntermediate := outputOf(hopOne, params.AToBOne)
	intermediateIn, feeTaken, err := transferfee.FeeExcluded(params.IntermediaryFee, rawIntermediate)
	if err != nil {
		return TwoHopResult{}, err
	}
	if intermediateIn == 0 {
		return TwoHopResult{}, kerrors.ErrNoTradableAmount
	}

	hopTwo, err := Run(poolTwo, seqTwo, Params{
		AmountSpecified:        intermediateIn,
		AmountSpecifiedIsInput: true,
		AToB:                   params.AToBTwo,
		SqrtPriceLimit:         params.SqrtPriceLimitTwo,
		Now:                    params.Now,
	})
	if err != nil {
		return TwoHopResult{}, err
	}

	if inputOf(hopTwo, params.AToBTwo) != intermediateIn {
		return TwoHopResult{}, kerrors.ErrAmountMismatch
	}

	return TwoHopResult{HopOne: hopOne, HopTwo: hopTwo, IntermediaryAmount: intermediateIn, IntermediaryFeeTaken: feeTaken}, nil
}

func twoHopExactOut(poolOne, poolTwo *pool.Pool, seqOne, seqTwo *tickarray.Sequence, params TwoHopParams) (TwoHopResult, error) {
	hopTwo, err := Run(poolTwo, seqTwo, Params{
		AmountSpecified:        params.AmountSpecified,
		AmountSpecifiedIsInput: false,
		AToB:                   params.AToBTwo,
		SqrtPriceLimit:         params.SqrtPriceLimitTwo,
		Now:                    params.Now,
	})
	if err != nil {
		return TwoHopResult{}, err
	}

	rawRequiredInput := inputOf(hopTwo, params.AToBTwo)
	intermediateOut, feeTaken, err := transferfee.FeeIncluded(params.IntermediaryFee, rawRequiredInput)
	if err != nil {
		return TwoHopResult{}, err
	}

	hopOne, err := Run(poolOne, seqOne, Params{
		AmountSpecified:        intermediateOut,
		AmountSpecifiedIsInput: false,
		AToB:                   params.AToBOne,
		SqrtPriceLimit:         params.SqrtPriceLimitOne,
		Now:                    params.Now,
	})
	if err != nil {
		return TwoHopResult{}, err
	}

	if outputOf(hopOne, params.AToBOne) != intermediateOut {
		return TwoHopResult{}, kerrors.ErrAmountMismatch
	}

	return TwoHopResult{HopOne: hopOne, HopTwo: hopTwo, IntermediaryAmount: rawRequiredInput, IntermediaryFeeTaken: feeTaken}, nil
}

func samePool(a, b *pool.Pool) bool {
	return a.MintA == b.MintA && a.MintB == b.MintB && a.VaultA == b.VaultA && a.VaultB == b.VaultB
}

func outputMint(p *pool.Pool, aToB bool) solana.PublicKey {
	if aToB {
		return p.MintB
	}
	return p.MintA
}

func inputMint(p *pool.Pool, aToB bool) solana.PublicKey {
	if aToB {
		return p.MintA
	}
	return p.MintB
}

func outputOf(r Result, aToB bool) uint64 {
	if aToB {
		return r.AmountB
	}
	return r.AmountA
}

func inputOf(r Result, aToB bool) uint64 {
	if aToB {
		return r.AmountA
	}
	return r.AmountB
}
