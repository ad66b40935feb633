package fixedpoint

import (
	"math/big"
	"testing"
)

// A handful of known-good (tick, approximate sqrt price) anchors recomputed
// from 1.0001^(t/2), independent of the round-trip tests, to catch a
// regression that breaks both directions of the bijection identically.
func TestSqrtPriceAtTick_KnownAnchors(t *testing.T) {
	cases := []struct {
		tick   int32
		approx float64 // sqrt(1.0001^tick), i.e. sqrt price as a plain float
	}{
		{0, 1.0},
		{2000, 1.105165},
		{-2000, 0.904842},
		{20000, 2.718146},
	}
	for _, c := range cases {
		sp, err := GetSqrtPriceAtTick(c.tick)
		if err != nil {
			t.Fatalf("tick %d: %v", c.tick, err)
		}
		f := new(big.Float).SetPrec(100).SetInt(sp.Big())
		f.Quo(f, new(big.Float).SetPrec(100).SetInt(new(big.Int).Lsh(big.NewInt(1), Q64Resolution)))
		got, _ := f.Float64()
		diff := got - c.approx
		if diff < 0 {
			diff = -diff
		}
		if diff > 0.01 {
			t.Fatalf("tick %d: got sqrt price ~%.6f want ~%.6f", c.tick, got, c.approx)
		}
	}
}
