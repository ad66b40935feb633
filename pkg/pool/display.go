package pool

import (
	"math/big"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/primitives"
)

// q64OneFloat is 2^64, the Q64.64 fixed-point denominator, as a big.Float
// precise enough for a human-facing price display.
var q64OneFloat = new(big.Float).SetMantExp(big.NewFloat(1), fixedpoint.Q64Resolution)

// DisplaySpotPrice converts the pool's current sqrt price into a decimal
// spot price of token B per token A, the same sqrt-then-square-then-adjust
// conversion a reference AMM's read-only price display performs on its own
// Q64.96 sqrt price, rebased here to this kernel's Q64.64 representation.
// It is never used on the settlement hot path: every swap and liquidity
// computation stays in integer Q64.64 throughout.
func (p *Pool) DisplaySpotPrice(decimalsA, decimalsB uint) (primitives.Price, error) {
	sqrtPriceFloat := new(big.Float).SetInt(p.SqrtPrice.Big())
	sqrtPrice := new(big.Float).Quo(sqrtPriceFloat, q64OneFloat)
	priceFloat := new(big.Float).Mul(sqrtPrice, sqrtPrice)

	decimalAdjustment := new(big.Float).SetFloat64(1)
	if decimalsA > decimalsB {
		decimalAdjustment.SetInt(pow10(decimalsA - decimalsB))
	} else if decimalsB > decimalsA {
		decimalAdjustment.Quo(big.NewFloat(1), new(big.Float).SetInt(pow10(decimalsB-decimalsA)))
	}
	adjusted := new(big.Float).Mul(priceFloat, decimalAdjustment)

	decimalPrice, err := primitives.NewDecimalFromString(adjusted.Text('f', 18))
	if err != nil {
		return primitives.Price{}, err
	}
	return primitives.NewPrice(decimalPrice)
}

func pow10(n uint) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
