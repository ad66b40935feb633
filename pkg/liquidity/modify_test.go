package liquidity

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

func setupPoolAndSequence(t *testing.T, tickSpacing int32) (*pool.Pool, *tickarray.Sequence) {
	t.Helper()
	sqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	p := &pool.Pool{
		TickSpacing:      tickSpacing,
		SqrtPrice:        sqrtPrice,
		TickCurrentIndex: 0,
	}
	ticksInArray := fixedpoint.TicksPerArray * tickSpacing
	lowerArr, err := tickarray.NewArray(-ticksInArray, tickSpacing)
	if err != nil {
		t.Fatal(err)
	}
	upperArr, err := tickarray.NewArray(0, tickSpacing)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := tickarray.NewSequence([]*tickarray.Array{lowerArr, upperArr})
	if err != nil {
		t.Fatal(err)
	}
	return p, seq
}

func TestModify_IncreaseLiquidityInRange(t *testing.T) {
	p, seq := setupPoolAndSequence(t, 64)
	mint := [32]byte{}
	pos, err := position.Open(mint, mint, -640, 640, 64)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Modify(p, seq, pos, 1_000_000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if result.AmountA.IsZero() && result.AmountB.IsZero() {
		t.Fatal("expected nonzero token amounts for an in-range increase")
	}
	if pos.Liquidity.Cmp(uint128.From64(1_000_000)) != 0 {
		t.Fatalf("position liquidity = %s, want 1000000", pos.Liquidity.String())
	}
	if p.Liquidity.Cmp(uint128.From64(1_000_000)) != 0 {
		t.Fatalf("pool active liquidity = %s, want 1000000 (range straddles current tick)", p.Liquidity.String())
	}
}

func TestModify_DecreaseMoreThanDepositedFails(t *testing.T) {
	p, seq := setupPoolAndSequence(t, 64)
	mint := [32]byte{}
	pos, err := position.Open(mint, mint, -640, 640, 64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Modify(p, seq, pos, 500, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := Modify(p, seq, pos, -1000, 1001); err == nil {
		t.Fatal("expected underflow removing more liquidity than deposited")
	}
}

func TestModify_RejectsZeroDelta(t *testing.T) {
	p, seq := setupPoolAndSequence(t, 64)
	mint := [32]byte{}
	pos, err := position.Open(mint, mint, -640, 640, 64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Modify(p, seq, pos, 0, 1000); err == nil {
		t.Fatal("expected zero-delta rejection")
	}
}

func TestModify_RejectsPoolLiquidityExceedingMaxPerTick(t *testing.T) {
	p, seq := setupPoolAndSequence(t, 64)
	mint := [32]byte{}
	pos, err := position.Open(mint, mint, -640, 640, 64)
	if err != nil {
		t.Fatal(err)
	}
	p.Liquidity = fixedpoint.MaxLiquidityPerTick.Sub(uint128.From64(10))

	if _, err := Modify(p, seq, pos, 20, 1000); err == nil {
		t.Fatal("expected pool liquidity exceeding MaxLiquidityPerTick to be rejected")
	}
}

func TestModify_SeedsTickFeeGrowthOutsideByPositionRelativeToCurrentTick(t *testing.T) {
	p, seq := setupPoolAndSequence(t, 64)
	p.FeeGrowthGlobalA = uint128.From64(1_000)
	p.FeeGrowthGlobalB = uint128.From64(2_000)
	p.TickCurrentIndex = 0
	mint := [32]byte{}
	// Lower tick sits below current and should seed to global; upper sits
	// above and should seed to zero.
	pos, err := position.Open(mint, mint, -640, 640, 64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Modify(p, seq, pos, 1_000_000, 1000); err != nil {
		t.Fatal(err)
	}

	lowerTick, err := seq.GetTick(-640)
	if err != nil {
		t.Fatal(err)
	}
	if lowerTick.FeeGrowthOutsideA.Cmp(p.FeeGrowthGlobalA) != 0 {
		t.Fatalf("lower tick (below current) fee growth outside A = %s, want %s",
			lowerTick.FeeGrowthOutsideA.String(), p.FeeGrowthGlobalA.String())
	}

	upperTick, err := seq.GetTick(640)
	if err != nil {
		t.Fatal(err)
	}
	if !upperTick.FeeGrowthOutsideA.IsZero() || !upperTick.FeeGrowthOutsideB.IsZero() {
		t.Fatalf("upper tick (above current) fee growth outside should seed zero, got A=%s B=%s",
			upperTick.FeeGrowthOutsideA.String(), upperTick.FeeGrowthOutsideB.String())
	}
}

func TestModify_OutOfRangePositionDoesNotChangePoolLiquidity(t *testing.T) {
	p, seq := setupPoolAndSequence(t, 64)
	mint := [32]byte{}
	pos, err := position.Open(mint, mint, 1280, 1920, 64)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Modify(p, seq, pos, 500, 1000); err != nil {
		t.Fatal(err)
	}
	if !p.Liquidity.IsZero() {
		t.Fatalf("pool active liquidity should be untouched by an out-of-range position, got %s", p.Liquidity.String())
	}
}
