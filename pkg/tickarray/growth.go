package tickarray

import "lukechampine.com/uint128"

// FeeGrowthInsideA computes fee-growth-inside for token A across a tick
// range using the standard below/above decomposition: growth_inside =
// global - growth_below - growth_above, where growth_below/above are read
// directly off each boundary tick's outside checkpoint, flipped depending
// on which side of the boundary the current price sits.
func FeeGrowthInsideA(currentTick, tickLowerIndex, tickUpperIndex int32, lower, upper *Tick, globalA uint128.Uint128) uint128.Uint128 {
	below := lower.FeeGrowthOutsideA
	if currentTick < tickLowerIndex {
		below = globalA.SubWrap(below)
	}
	above := upper.FeeGrowthOutsideA
	if currentTick >= tickUpperIndex {
		above = globalA.SubWrap(above)
	}
	return globalA.SubWrap(below).SubWrap(above)
}

// FeeGrowthInsideB computes fee-growth-inside for token B across a tick
// range.
func FeeGrowthInsideB(currentTick, tickLowerIndex, tickUpperIndex int32, lower, upper *Tick, globalB uint128.Uint128) uint128.Uint128 {
	below := lower.FeeGrowthOutsideB
	if currentTick < tickLowerIndex {
		below = globalB.SubWrap(below)
	}
	above := upper.FeeGrowthOutsideB
	if currentTick >= tickUpperIndex {
		above = globalB.SubWrap(above)
	}
	return globalB.SubWrap(below).SubWrap(above)
}

// RewardGrowthInside computes reward-growth-inside for a single reward
// index across a tick range.
func RewardGrowthInside(currentTick, tickLowerIndex, tickUpperIndex int32, lower, upper *Tick, index int, global uint128.Uint128) uint128.Uint128 {
	below := lower.RewardGrowthsOutside[index]
	if currentTick < tickLowerIndex {
		below = global.SubWrap(below)
	}
	above := upper.RewardGrowthsOutside[index]
	if currentTick >= tickUpperIndex {
		above = global.SubWrap(above)
	}
	return global.SubWrap(below).SubWrap(above)
}
