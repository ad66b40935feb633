package swap

import (
	"errors"
	"testing"

	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/liquidity"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

const testTickSpacing = 64

func setupSwapPool(t *testing.T) (*pool.Pool, *tickarray.Sequence) {
	t.Helper()
	sqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	p := &pool.Pool{
		TickSpacing:      testTickSpacing,
		FeeRate:          3000,
		SqrtPrice:        sqrtPrice,
		TickCurrentIndex: 0,
	}
	ticksInArray := fixedpoint.TicksPerArray * testTickSpacing
	lowerArr, err := tickarray.NewArray(-ticksInArray, testTickSpacing)
	if err != nil {
		t.Fatal(err)
	}
	upperArr, err := tickarray.NewArray(0, testTickSpacing)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := tickarray.NewSequence([]*tickarray.Array{lowerArr, upperArr})
	if err != nil {
		t.Fatal(err)
	}
	return p, seq
}

func openAndFund(t *testing.T, p *pool.Pool, seq *tickarray.Sequence, tickLower, tickUpper int32, delta int64) *position.Position {
	t.Helper()
	mint := [32]byte{}
	pos, err := position.Open(mint, mint, tickLower, tickUpper, testTickSpacing)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := liquidity.Modify(p, seq, pos, delta, 1000); err != nil {
		t.Fatal(err)
	}
	return pos
}

func TestRun_RejectsZeroAmount(t *testing.T) {
	p, seq := setupSwapPool(t)
	openAndFund(t, p, seq, -640, 640, 1_000_000)

	_, err := Run(p, seq, Params{
		AmountSpecified:        0,
		AmountSpecifiedIsInput: true,
		AToB:                   true,
		SqrtPriceLimit:         fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err == nil {
		t.Fatal("expected rejection of a zero-amount swap")
	}
}

func TestRun_RejectsPriceLimitOnWrongSide(t *testing.T) {
	p, seq := setupSwapPool(t)
	openAndFund(t, p, seq, -640, 640, 1_000_000)

	_, err := Run(p, seq, Params{
		AmountSpecified:        1000,
		AmountSpecifiedIsInput: true,
		AToB:                   true,
		SqrtPriceLimit:         fixedpoint.MaxSqrtPriceX64,
		Now:                    1001,
	})
	if err == nil {
		t.Fatal("expected rejection of a sqrt price limit above current price for an a-to-b swap")
	}
}

func TestRun_SmallSwapStaysWithinCurrentTickRange(t *testing.T) {
	p, seq := setupSwapPool(t)
	openAndFund(t, p, seq, -640, 640, 1_000_000)

	startTick := p.TickCurrentIndex
	result, err := Run(p, seq, Params{
		AmountSpecified:        100,
		AmountSpecifiedIsInput: true,
		AToB:                   true,
		SqrtPriceLimit:         fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.AmountA == 0 {
		t.Fatal("expected nonzero input amount consumed")
	}
	if p.TickCurrentIndex < -640 || p.TickCurrentIndex > startTick {
		t.Fatalf("small swap should not cross the -640 boundary, tick now %d", p.TickCurrentIndex)
	}
	if p.Liquidity.Cmp(uint128.From64(1_000_000)) != 0 {
		t.Fatal("pool liquidity should be unchanged by a swap that crosses no ticks")
	}
}

func TestRun_CrossesInitializedTickAndRemovesItsLiquidity(t *testing.T) {
	p, seq := setupSwapPool(t)
	// A wide position keeps liquidity nonzero past the -640 boundary, and a
	// narrow one supplies the tick that gets crossed. The price limit sits
	// between -640 and the wide position's -1280 boundary, so the swap is
	// guaranteed to cross exactly one initialized tick no matter how large
	// the specified amount is.
	openAndFund(t, p, seq, -1280, 1280, 500_000)
	openAndFund(t, p, seq, -640, 640, 500_000)

	limit, err := fixedpoint.GetSqrtPriceAtTick(-704)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(p, seq, Params{
		AmountSpecified:        1_000_000_000_000,
		AmountSpecifiedIsInput: true,
		AToB:                   true,
		SqrtPriceLimit:         limit,
		Now:                    1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.AmountA == 0 {
		t.Fatal("expected nonzero input amount consumed")
	}
	if p.TickCurrentIndex != -704 {
		t.Fatalf("expected the swap to settle exactly at the price limit tick, got %d", p.TickCurrentIndex)
	}
	if p.Liquidity.Cmp(uint128.From64(500_000)) != 0 {
		t.Fatalf("expected only the wide position's liquidity to remain active, got %s", p.Liquidity.String())
	}
}

func TestRun_CrossesInitializedTickGoingUpAndRemovesItsLiquidity(t *testing.T) {
	p, seq := setupSwapPool(t)
	// Mirror of TestRun_CrossesInitializedTickAndRemovesItsLiquidity in the
	// opposite direction: the swap moves price up through the narrow
	// position's upper bound at 640, which must come off scanForward (not
	// scanForward reached by accident via a stored, swap-direction-blind
	// Sequence field).
	openAndFund(t, p, seq, -1280, 1280, 500_000)
	openAndFund(t, p, seq, -640, 640, 500_000)

	limit, err := fixedpoint.GetSqrtPriceAtTick(704)
	if err != nil {
		t.Fatal(err)
	}

	result, err := Run(p, seq, Params{
		AmountSpecified:        1_000_000_000_000,
		AmountSpecifiedIsInput: true,
		AToB:                   false,
		SqrtPriceLimit:         limit,
		Now:                    1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.AmountB == 0 {
		t.Fatal("expected nonzero input amount consumed")
	}
	if p.TickCurrentIndex != 704 {
		t.Fatalf("expected the swap to settle exactly at the price limit tick, got %d", p.TickCurrentIndex)
	}
	if p.Liquidity.Cmp(uint128.From64(500_000)) != 0 {
		t.Fatalf("expected only the wide position's liquidity to remain active, got %s", p.Liquidity.String())
	}
}

func TestRun_InsufficientTickArraysReportsError(t *testing.T) {
	p, seq := setupSwapPool(t)
	openAndFund(t, p, seq, -640, 640, 10)

	_, err := Run(p, seq, Params{
		AmountSpecified:        1_000_000_000,
		AmountSpecifiedIsInput: true,
		AToB:                   true,
		SqrtPriceLimit:         fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err == nil {
		t.Fatal("expected the swap to exhaust the supplied tick arrays given minuscule liquidity")
	}
	if !errors.Is(err, kerrors.ErrInvalidTickArraySequence) && !errors.Is(err, kerrors.ErrTickLiquidityNet) {
		t.Fatalf("expected a tick-sequence or liquidity-net error, got %v", err)
	}
}
