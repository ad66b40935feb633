// Package fixedpoint implements the Q64.64 fixed-point arithmetic kernel
// that the settlement engine performs all price, liquidity and amount
// computations in. Every exported function here is pure and allocation-light
// on the hot path; 256-bit-safe intermediates are taken through math/big only
// where a plain uint128 multiply would overflow.
package fixedpoint

import (
	"math/big"

	"lukechampine.com/uint128"
)

const (
	// MinTick and MaxTick bound the addressable tick index range. The bound
	// is derived from the documented sqrt-price domain: the smallest tick
	// whose sqrt price still fits the Q64.64 representation.
	MinTick int32 = -443636
	MaxTick int32 = 443636

	// TicksPerArray is the fixed number of tick slots held by one tick array
	// account.
	TicksPerArray int32 = 88

	// NumRewards is the number of concurrent reward emission slots a pool
	// carries.
	NumRewards = 3

	// MaxFeeRate and MaxProtocolFeeRate are expressed in the same
	// hundredths-of-a-bip denominator as FeeRateDenominator.
	MaxFeeRate         uint16 = 10000 // 1.0000%... see FeeRateDenominator below; 10000/1_000_000 = 1%
	MaxProtocolFeeRate uint16 = 2500  // fraction of the trading fee, denominator 10000

	// FeeRateDenominator is the denominator trading fee rates are expressed
	// over (a fee_rate of 3000 means 3000/1_000_000 = 0.3%).
	FeeRateDenominator uint64 = 1_000_000

	// ProtocolFeeRateDenominator is the denominator protocol_fee_rate is
	// expressed over (protocol_fee_rate is a fraction of the trading fee).
	ProtocolFeeRateDenominator uint64 = 10_000

	// DaySeconds is used to size the emissions-sufficiency check on
	// set_reward_emissions.
	DaySeconds int64 = 86400

	// Q64Resolution is the number of fractional bits in the Q64.64
	// representation used for sqrt price and growth accumulators.
	Q64Resolution = 64
)

var (
	// MinSqrtPriceX64 and MaxSqrtPriceX64 bound the sqrt-price domain,
	// computed from MinTick/MaxTick via 1.0001^(tick/2) and rebased into
	// Q64.64 (64 fractional bits, matching the Whirlpools convention rather
	// than Uniswap V3's Q64.96).
	MinSqrtPriceX64 = uint128.From64(4295048016)
	MaxSqrtPriceX64 = uint128.Must(uint128.FromString("79226673515401279992447579055"))

	// MaxLiquidityPerTick is the ceiling liquidity.Modify enforces on a
	// pool's active liquidity; it is the full range of a u64, the width of a
	// tick's LiquidityGross, although pool and position liquidity are stored
	// as u128.
	MaxLiquidityPerTick = uint128.From64(^uint64(0))

	// q64One is 1 in Q64.64, i.e. 2^64.
	q64One = new(big.Int).Lsh(big.NewInt(1), Q64Resolution)
)

// Q64One returns 1.0 represented in Q64.64.
func Q64One() uint128.Uint128 { return q64OneU128 }

// MulU128 multiplies two uint128 values with a 256-bit-safe intermediate,
// returning an overflow error if the product does not fit back in 128 bits.
func MulU128(a, b uint128.Uint128) (uint128.Uint128, error) {
	return fromBig(new(big.Int).Mul(toBig(a), toBig(b)))
}
