package fixedpoint

import (
	"math/big"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// mulDivFloorBig and mulDivCeilBig operate on already-multiplied big.Int
// numerators, used by the formulas below where the numerator is itself a
// product of more than two uint128 operands.
func mulDivFloorBig(num, den *big.Int) (uint128.Uint128, error) {
	if den.Sign() == 0 {
		return uint128.Zero, kerrors.ErrDivisionByZero
	}
	quo := new(big.Int).Div(num, den)
	return fromBig(quo)
}

func mulDivCeilBig(num, den *big.Int) (uint128.Uint128, error) {
	if den.Sign() == 0 {
		return uint128.Zero, kerrors.ErrDivisionByZero
	}
	quo, rem := new(big.Int), new(big.Int)
	quo.DivMod(num, den, rem)
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return fromBig(quo)
}

// GetAmountAFromLiquidity computes the token A delta for a liquidity change
// across [sqrtPriceLower, sqrtPriceUpper], Delta_a = L*(sqrtPu - sqrtPl) /
// (sqrtPl * sqrtPu), the same formula shape as the corpus's
// whirlpoolGetTokenAmountAFromLiquidity.
func GetAmountAFromLiquidity(liquidity, sqrtPriceLower, sqrtPriceUpper uint128.Uint128, roundUp bool) (uint128.Uint128, error) {
	if sqrtPriceLower.Cmp(sqrtPriceUpper) > 0 {
		sqrtPriceLower, sqrtPriceUpper = sqrtPriceUpper, sqrtPriceLower
	}
	numerator1 := toBig(liquidity)
	numerator1.Lsh(numerator1, Q64Resolution)
	numerator2, err := CheckedSubU128(sqrtPriceUpper, sqrtPriceLower)
	if err != nil {
		return uint128.Zero, err
	}

	num := numerator1.Mul(numerator1, toBig(numerator2))
	den := toBig(sqrtPriceLower)
	den.Mul(den, toBig(sqrtPriceUpper))
	if roundUp {
		return mulDivCeilBig(num, den)
	}
	return mulDivFloorBig(num, den)
}

// GetAmountBFromLiquidity computes the token B delta, Delta_b = L*(sqrtPu -
// sqrtPl), matching whirlpoolGetTokenAmountBFromLiquidity.
func GetAmountBFromLiquidity(liquidity, sqrtPriceLower, sqrtPriceUpper uint128.Uint128, roundUp bool) (uint128.Uint128, error) {
	if sqrtPriceLower.Cmp(sqrtPriceUpper) > 0 {
		sqrtPriceLower, sqrtPriceUpper = sqrtPriceUpper, sqrtPriceLower
	}
	diff, err := CheckedSubU128(sqrtPriceUpper, sqrtPriceLower)
	if err != nil {
		return uint128.Zero, err
	}
	if roundUp {
		return MulShiftRightRoundingUp(liquidity, diff, Q64Resolution)
	}
	return MulShiftRight(liquidity, diff, Q64Resolution)
}

// AmountsFromLiquidity splits a liquidity delta into the (amountA, amountB)
// pair required to back it given the pool's current sqrt price and a
// position's tick range, covering the below-range / in-range / above-range
// cases from the liquidity-modification pipeline.
func AmountsFromLiquidity(liquidity, sqrtPriceCurrent, sqrtPriceLower, sqrtPriceUpper uint128.Uint128, roundUp bool) (amountA, amountB uint128.Uint128, err error) {
	switch {
	case sqrtPriceCurrent.Cmp(sqrtPriceLower) <= 0:
		amountA, err = GetAmountAFromLiquidity(liquidity, sqrtPriceLower, sqrtPriceUpper, roundUp)
		return amountA, uint128.Zero, err
	case sqrtPriceCurrent.Cmp(sqrtPriceUpper) >= 0:
		amountB, err = GetAmountBFromLiquidity(liquidity, sqrtPriceLower, sqrtPriceUpper, roundUp)
		return uint128.Zero, amountB, err
	default:
		amountA, err = GetAmountAFromLiquidity(liquidity, sqrtPriceCurrent, sqrtPriceUpper, roundUp)
		if err != nil {
			return uint128.Zero, uint128.Zero, err
		}
		amountB, err = GetAmountBFromLiquidity(liquidity, sqrtPriceLower, sqrtPriceCurrent, roundUp)
		if err != nil {
			return uint128.Zero, uint128.Zero, err
		}
		return amountA, amountB, nil
	}
}
