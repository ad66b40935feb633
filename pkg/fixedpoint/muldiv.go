package fixedpoint

import (
	"math/big"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// toBig converts a uint128 value to a *big.Int, the way the corpus's
// whirlpool port does before any product that might exceed 128 bits.
func toBig(v uint128.Uint128) *big.Int {
	return v.Big()
}

// fromBig converts a *big.Int back to a uint128, returning an overflow
// error if it does not fit in 128 bits.
func fromBig(v *big.Int) (uint128.Uint128, error) {
	if v.Sign() < 0 {
		return uint128.Zero, kerrors.ErrMulDivOverflow
	}
	if v.BitLen() > 128 {
		return uint128.Zero, kerrors.ErrMulDivOverflow
	}
	return uint128.FromBig(v), nil
}

// MulDivFloor computes floor(a*b/denominator) with a 256-bit-safe
// intermediate product, the same shape as the corpus's mulDivFloor helper.
func MulDivFloor(a, b uint128.Uint128, denominator uint128.Uint128) (uint128.Uint128, error) {
	if denominator.IsZero() {
		return uint128.Zero, kerrors.ErrDivisionByZero
	}
	num := new(big.Int).Mul(toBig(a), toBig(b))
	num.Div(num, toBig(denominator))
	return fromBig(num)
}

// MulDivCeil computes ceil(a*b/denominator).
func MulDivCeil(a, b uint128.Uint128, denominator uint128.Uint128) (uint128.Uint128, error) {
	if denominator.IsZero() {
		return uint128.Zero, kerrors.ErrDivisionByZero
	}
	num := new(big.Int).Mul(toBig(a), toBig(b))
	den := toBig(denominator)
	quo, rem := new(big.Int), new(big.Int)
	quo.DivMod(num, den, rem)
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return fromBig(quo)
}

// MulDivRoundingUp is MulDivCeil with a u64 denominator, the common case
// used by fee and amount-from-liquidity calculations.
func MulDivRoundingUp(a, b uint128.Uint128, denominator uint64) (uint128.Uint128, error) {
	return MulDivCeil(a, b, uint128.From64(denominator))
}

// DivFloor computes floor(a/b) for two uint128 operands.
func DivFloor(a, b uint128.Uint128) (uint128.Uint128, error) {
	if b.IsZero() {
		return uint128.Zero, kerrors.ErrDivisionByZero
	}
	return fromBig(new(big.Int).Div(toBig(a), toBig(b)))
}

// MulShiftRight computes floor(a*b / 2^shift), matching the corpus's
// pattern of left-shifting liquidity by 64 before dividing by a price
// difference (used pervasively by the amount-from-liquidity formulas).
func MulShiftRight(a, b uint128.Uint128, shift uint) (uint128.Uint128, error) {
	num := new(big.Int).Mul(toBig(a), toBig(b))
	num.Rsh(num, shift)
	return fromBig(num)
}

// MulShiftRightRoundingUp is MulShiftRight but rounds the final bits up
// instead of truncating.
func MulShiftRightRoundingUp(a, b uint128.Uint128, shift uint) (uint128.Uint128, error) {
	num := new(big.Int).Mul(toBig(a), toBig(b))
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), shift), big.NewInt(1))
	rem := new(big.Int).And(num, mask)
	num.Rsh(num, shift)
	if rem.Sign() != 0 {
		num.Add(num, big.NewInt(1))
	}
	return fromBig(num)
}

// CheckedAddU128 adds two uint128 values, returning an overflow error
// instead of wrapping.
func CheckedAddU128(a, b uint128.Uint128) (uint128.Uint128, error) {
	sum := a.AddWrap(b)
	if sum.Cmp(a) < 0 {
		return uint128.Zero, kerrors.ErrLiquidityOverflow
	}
	return sum, nil
}

// CheckedSubU128 subtracts b from a, returning an underflow error if b > a.
func CheckedSubU128(a, b uint128.Uint128) (uint128.Uint128, error) {
	if b.Cmp(a) > 0 {
		return uint128.Zero, kerrors.ErrLiquidityUnderflow
	}
	return a.Sub(b), nil
}
