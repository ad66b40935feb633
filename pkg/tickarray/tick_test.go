package tickarray

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
)

func TestUpdateTick_LowerAddsUpperSubtracts(t *testing.T) {
	var zeroGrowths [fixedpoint.NumRewards]uint128.Uint128

	lower := &Tick{}
	if err := lower.UpdateTick(100, false, -64, 0, uint128.Zero, uint128.Zero, zeroGrowths); err != nil {
		t.Fatal(err)
	}
	if lower.LiquidityNet != 100 {
		t.Fatalf("lower tick net = %d, want 100", lower.LiquidityNet)
	}
	if lower.LiquidityGross != 100 {
		t.Fatalf("lower tick gross = %d, want 100", lower.LiquidityGross)
	}
	if !lower.Initialized {
		t.Fatal("tick should be initialized once gross is nonzero")
	}

	upper := &Tick{}
	if err := upper.UpdateTick(100, true, 64, 0, uint128.Zero, uint128.Zero, zeroGrowths); err != nil {
		t.Fatal(err)
	}
	if upper.LiquidityNet != -100 {
		t.Fatalf("upper tick net = %d, want -100", upper.LiquidityNet)
	}
}

func TestUpdateTick_RemovingLastLiquidityDeinitializes(t *testing.T) {
	var zeroGrowths [fixedpoint.NumRewards]uint128.Uint128
	tick := &Tick{}
	if err := tick.UpdateTick(50, false, -64, 0, uint128.Zero, uint128.Zero, zeroGrowths); err != nil {
		t.Fatal(err)
	}
	if err := tick.UpdateTick(-50, false, -64, 0, uint128.Zero, uint128.Zero, zeroGrowths); err != nil {
		t.Fatal(err)
	}
	if tick.Initialized {
		t.Fatal("tick should de-initialize once gross liquidity returns to zero")
	}
}

func TestUpdateTick_UnderflowRejected(t *testing.T) {
	var zeroGrowths [fixedpoint.NumRewards]uint128.Uint128
	tick := &Tick{}
	if err := tick.UpdateTick(-1, false, -64, 0, uint128.Zero, uint128.Zero, zeroGrowths); err == nil {
		t.Fatal("expected underflow error removing liquidity from an empty tick")
	}
}

func TestUpdateTick_SeedsOutsideGrowthByPositionRelativeToCurrentTick(t *testing.T) {
	globalA := uint128.From64(30)
	globalB := uint128.From64(50)
	var globalRewards [fixedpoint.NumRewards]uint128.Uint128

	below := &Tick{}
	if err := below.UpdateTick(100, false, -64, 0, globalA, globalB, globalRewards); err != nil {
		t.Fatal(err)
	}
	if below.FeeGrowthOutsideA.Cmp(globalA) != 0 || below.FeeGrowthOutsideB.Cmp(globalB) != 0 {
		t.Fatalf("tick at or below current should seed outside growth to global, got A=%s B=%s",
			below.FeeGrowthOutsideA.String(), below.FeeGrowthOutsideB.String())
	}

	atCurrent := &Tick{}
	if err := atCurrent.UpdateTick(100, false, 0, 0, globalA, globalB, globalRewards); err != nil {
		t.Fatal(err)
	}
	if atCurrent.FeeGrowthOutsideA.Cmp(globalA) != 0 {
		t.Fatalf("tick equal to current should seed outside growth to global, got A=%s", atCurrent.FeeGrowthOutsideA.String())
	}

	above := &Tick{}
	if err := above.UpdateTick(100, false, 64, 0, globalA, globalB, globalRewards); err != nil {
		t.Fatal(err)
	}
	if !above.FeeGrowthOutsideA.IsZero() || !above.FeeGrowthOutsideB.IsZero() {
		t.Fatalf("tick above current should seed outside growth to zero, got A=%s B=%s",
			above.FeeGrowthOutsideA.String(), above.FeeGrowthOutsideB.String())
	}
}

func TestCross_FlipsOutsideGrowth(t *testing.T) {
	tick := &Tick{
		FeeGrowthOutsideA: uint128.From64(10),
		FeeGrowthOutsideB: uint128.From64(20),
		LiquidityNet:      5,
	}
	globalA := uint128.From64(30)
	globalB := uint128.From64(50)
	var globalRewards [fixedpoint.NumRewards]uint128.Uint128

	delta := tick.Cross(globalA, globalB, globalRewards)
	if delta != 5 {
		t.Fatalf("cross should return liquidity_net, got %d", delta)
	}
	if tick.FeeGrowthOutsideA.Cmp(uint128.From64(20)) != 0 {
		t.Fatalf("fee growth outside A = %s, want 20", tick.FeeGrowthOutsideA.String())
	}
	if tick.FeeGrowthOutsideB.Cmp(uint128.From64(30)) != 0 {
		t.Fatalf("fee growth outside B = %s, want 30", tick.FeeGrowthOutsideB.String())
	}
}
