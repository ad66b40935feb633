package pool

import (
	"testing"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
)

func TestDisplaySpotPrice_TickZeroIsOneWithEqualDecimals(t *testing.T) {
	sqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	p := &Pool{SqrtPrice: sqrtPrice}
	price, err := p.DisplaySpotPrice(6, 6)
	if err != nil {
		t.Fatal(err)
	}
	got := price.Decimal().Float64()
	if got < 0.999 || got > 1.001 {
		t.Fatalf("expected spot price near 1.0 at tick 0, got %v", got)
	}
}

func TestDisplaySpotPrice_AdjustsForDecimalDifference(t *testing.T) {
	sqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	p := &Pool{SqrtPrice: sqrtPrice}
	price, err := p.DisplaySpotPrice(6, 9)
	if err != nil {
		t.Fatal(err)
	}
	got := price.Decimal().Float64()
	if got < 0.000999 || got > 0.001001 {
		t.Fatalf("expected spot price near 0.001 adjusting for a 3-decimal difference, got %v", got)
	}
}
