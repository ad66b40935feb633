package pool

import (
	"github.com/daoleno/uniswapv3-sdk/constants"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// FeeTier is a whitelisted (tickSpacing, defaultFeeRate) pair a pool may be
// initialized against. FeeRate is expressed over fixedpoint.FeeRateDenominator
// (1_000_000), the same denominator the pool's own trading fee uses.
type FeeTier struct {
	TickSpacing    int32
	DefaultFeeRate uint64
}

// DefaultFeeTiers seeds the whitelist from the fee/tick-spacing table the
// rest of the corpus already carries, reusing constants.TickSpacings
// instead of hand-maintaining a duplicate mapping.
func DefaultFeeTiers() []FeeTier {
	order := []constants.FeeAmount{constants.FeeLow, constants.FeeMedium, constants.FeeHigh}
	tiers := make([]FeeTier, 0, len(order))
	for _, fee := range order {
		spacing, ok := constants.TickSpacings[fee]
		if !ok {
			continue
		}
		tiers = append(tiers, FeeTier{
			TickSpacing:    int32(spacing),
			DefaultFeeRate: uint64(fee), // FeeAmount is already expressed over the 1e6 denominator (500 == 0.05%)
		})
	}
	return tiers
}

// Lookup finds the fee tier registered for a tick spacing.
func Lookup(tiers []FeeTier, tickSpacing int32) (FeeTier, error) {
	for _, t := range tiers {
		if t.TickSpacing == tickSpacing {
			return t, nil
		}
	}
	return FeeTier{}, kerrors.ErrUnsupportedTickSpacing
}
