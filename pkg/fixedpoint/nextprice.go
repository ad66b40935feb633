package fixedpoint

import (
	"math/big"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// GetNextSqrtPriceFromInput computes the sqrt price reached after applying
// an exact input amount, dispatching on trade direction the way
// whirlpoolGetNextSqrtPriceX64FromInput does: A-for-B moves price down
// (aToB true), B-for-A moves it up.
func GetNextSqrtPriceFromInput(sqrtPrice, liquidity, amountIn uint128.Uint128, aToB bool) (uint128.Uint128, error) {
	if aToB {
		return getNextSqrtPriceFromARoundingUp(sqrtPrice, liquidity, amountIn, true)
	}
	return getNextSqrtPriceFromBRoundingDown(sqrtPrice, liquidity, amountIn, true)
}

// GetNextSqrtPriceFromOutput computes the sqrt price reached after applying
// an exact output amount in the opposite token of the trade direction.
func GetNextSqrtPriceFromOutput(sqrtPrice, liquidity, amountOut uint128.Uint128, aToB bool) (uint128.Uint128, error) {
	if aToB {
		return getNextSqrtPriceFromBRoundingDown(sqrtPrice, liquidity, amountOut, false)
	}
	return getNextSqrtPriceFromARoundingUp(sqrtPrice, liquidity, amountOut, false)
}

// getNextSqrtPriceFromARoundingUp implements
//
//	new_sqrt_price = L * sqrt_price * 2^64 / (L*2^64 +- amount*sqrt_price)
//
// add when the amount is being added to reserve A (price moves down),
// subtract when removed (price moves up on exact-output in the B->A
// direction), matching whirlpoolGetNextSqrtPriceFromTokenAmountARoundingUp.
func getNextSqrtPriceFromARoundingUp(sqrtPrice, liquidity, amount uint128.Uint128, add bool) (uint128.Uint128, error) {
	if amount.IsZero() {
		return sqrtPrice, nil
	}
	numerator1 := toBig(liquidity)
	numerator1.Lsh(numerator1, Q64Resolution)

	product := new(big.Int).Mul(toBig(amount), toBig(sqrtPrice))
	denominator := new(big.Int)
	if add {
		denominator.Add(numerator1, product)
	} else {
		denominator.Sub(numerator1, product)
		if denominator.Sign() <= 0 {
			return uint128.Zero, kerrors.ErrAmountCalculationOverflow
		}
	}

	num := new(big.Int).Mul(numerator1, toBig(sqrtPrice))
	return mulDivCeilBig(num, denominator)
}

// getNextSqrtPriceFromBRoundingDown implements
//
//	new_sqrt_price = sqrt_price +- amount*2^64/L
//
// matching whirlpoolGetNextSqrtPriceFromTokenAmountBRoundingDown: the
// quotient rounds down when added and up when subtracted, so the resulting
// price always rounds down.
func getNextSqrtPriceFromBRoundingDown(sqrtPrice, liquidity, amount uint128.Uint128, add bool) (uint128.Uint128, error) {
	if add {
		delta, err := MulDivFloor(amount, q64OneU128, liquidity)
		if err != nil {
			return uint128.Zero, err
		}
		return CheckedAddU128(sqrtPrice, delta)
	}
	delta, err := MulDivCeil(amount, q64OneU128, liquidity)
	if err != nil {
		return uint128.Zero, err
	}
	return CheckedSubU128(sqrtPrice, delta)
}

var q64OneU128 = uint128.FromBig(q64One)
