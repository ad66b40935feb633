package fixedpoint

import (
	"math"
	"math/big"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// tickBase is sqrt(1.0001), the per-tick price step shared by every
// sqrt-price computation below. 1.0001^(tick/2) == tickBase^tick.
var tickBase = func() *big.Float {
	base := new(big.Float).SetPrec(200)
	base.SetFloat64(1.0001)
	base.Sqrt(base)
	return base
}()

var twoPow64 = new(big.Float).SetPrec(200).SetMantExp(big.NewFloat(1), Q64Resolution)

// powBigFloat raises base to an integer power (positive or negative) using
// exponentiation by squaring, mirroring the bit-decomposition shape of the
// well-known Uniswap V3 tick-math routine without its Q64.96 magic-constant
// table, since no such table surfaced in the reference corpus.
func powBigFloat(base *big.Float, exp int32) *big.Float {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	result := new(big.Float).SetPrec(200).SetFloat64(1)
	sq := new(big.Float).SetPrec(200).Copy(base)
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(result, sq)
		}
		sq.Mul(sq, sq)
		exp >>= 1
	}
	if neg {
		one := new(big.Float).SetPrec(200).SetFloat64(1)
		result.Quo(one, result)
	}
	return result
}

// GetSqrtPriceAtTick returns the Q64.64 sqrt price for a tick index.
// It is the kernel's realization of spec-documented sqrt_price(t) =
// 1.0001^(t/2), bounds-checked against [MinTick, MaxTick].
func GetSqrtPriceAtTick(tick int32) (uint128.Uint128, error) {
	if tick < MinTick || tick > MaxTick {
		return uint128.Zero, kerrors.ErrInvalidTickIndex
	}
	price := powBigFloat(tickBase, tick)
	price.Mul(price, twoPow64)
	i, _ := price.Int(nil)
	return fromBig(i)
}

// GetTickAtSqrtPrice returns the largest tick whose sqrt price is less than
// or equal to the given Q64.64 sqrt price. It first estimates the tick via
// a float64 logarithm, then walks to the exact boundary by re-deriving
// sqrt prices from candidate ticks, since the forward direction
// (GetSqrtPriceAtTick) is the one formula this kernel treats as ground
// truth.
func GetTickAtSqrtPrice(sqrtPriceX64 uint128.Uint128) (int32, error) {
	if sqrtPriceX64.Cmp(MinSqrtPriceX64) < 0 || sqrtPriceX64.Cmp(MaxSqrtPriceX64) > 0 {
		return 0, kerrors.ErrSqrtPriceOutOfBounds
	}

	asFloat := new(big.Float).SetPrec(200).SetInt(toBig(sqrtPriceX64))
	asFloat.Quo(asFloat, twoPow64)
	f64, _ := asFloat.Float64()
	guess := int32(math.Floor(math.Log(f64) / math.Log(1.0001) * 2))

	if guess < MinTick {
		guess = MinTick
	}
	if guess > MaxTick {
		guess = MaxTick
	}

	// Walk to the exact largest tick with sqrt_price(tick) <= sqrtPriceX64.
	// The estimate above can be off by a handful of ticks near the bounds
	// of float64 precision; a short linear walk in either direction settles
	// on the exact boundary.
	for {
		atGuess, err := GetSqrtPriceAtTick(guess)
		if err != nil {
			return 0, err
		}
		if atGuess.Cmp(sqrtPriceX64) > 0 {
			if guess <= MinTick {
				return MinTick, nil
			}
			guess--
			continue
		}
		if guess >= MaxTick {
			return MaxTick, nil
		}
		next, err := GetSqrtPriceAtTick(guess + 1)
		if err != nil {
			return 0, err
		}
		if next.Cmp(sqrtPriceX64) <= 0 {
			guess++
			continue
		}
		return guess, nil
	}
}
