package swap

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/liquidity"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
	"github.com/johnayoung/go-clmm-kernel/pkg/transferfee"
)

func buildTwoHopPool(t *testing.T, mintA, mintB, vaultA, vaultB solana.PublicKey, liquidityAmount int64) (*pool.Pool, *tickarray.Sequence) {
	t.Helper()
	sqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	p := &pool.Pool{
		MintA:            mintA,
		MintB:            mintB,
		VaultA:           vaultA,
		VaultB:           vaultB,
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
	pos, err := position.Open(mintA, mintA, -640, 640, testTickSpacing)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := liquidity.Modify(p, seq, pos, liquidityAmount, 1000); err != nil {
		t.Fatal(err)
	}
	return p, seq
}

func TestTwoHopSwap_ExactInNoIntermediaryFee(t *testing.T) {
	mintX := solana.PublicKey{1}
	mintY := solana.PublicKey{2}
	mintZ := solana.PublicKey{3}

	poolOne, seqOne := buildTwoHopPool(t, mintX, mintY, solana.PublicKey{10}, solana.PublicKey{11}, 1_000_000)
	poolTwo, seqTwo := buildTwoHopPool(t, mintY, mintZ, solana.PublicKey{12}, solana.PublicKey{13}, 1_000_000)

	result, err := TwoHopSwap(poolOne, poolTwo, seqOne, seqTwo, TwoHopParams{
		AmountSpecified:        1000,
		AmountSpecifiedIsInput: true,
		AToBOne:                true,
		AToBTwo:                true,
		SqrtPriceLimitOne:      fixedpoint.MinSqrtPriceX64,
		SqrtPriceLimitTwo:      fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.HopOne.AmountB != result.IntermediaryAmount {
		t.Fatalf("no transfer fee: intermediary amount should equal hop one's raw output, got %d vs %d", result.IntermediaryAmount, result.HopOne.AmountB)
	}
	if result.HopTwo.AmountA != result.IntermediaryAmount {
		t.Fatalf("hop two's consumed input should equal the intermediary amount, got %d vs %d", result.HopTwo.AmountA, result.IntermediaryAmount)
	}
	if result.IntermediaryFeeTaken != 0 {
		t.Fatalf("expected no fee with a nil transfer-fee config, got %d", result.IntermediaryFeeTaken)
	}
}

func TestTwoHopSwap_ExactInAppliesIntermediaryTransferFee(t *testing.T) {
	mintX := solana.PublicKey{1}
	mintY := solana.PublicKey{2}
	mintZ := solana.PublicKey{3}

	poolOne, seqOne := buildTwoHopPool(t, mintX, mintY, solana.PublicKey{10}, solana.PublicKey{11}, 100_000_000)
	poolTwo, seqTwo := buildTwoHopPool(t, mintY, mintZ, solana.PublicKey{12}, solana.PublicKey{13}, 100_000_000)

	result, err := TwoHopSwap(poolOne, poolTwo, seqOne, seqTwo, TwoHopParams{
		AmountSpecified:        100_000,
		AmountSpecifiedIsInput: true,
		AToBOne:                true,
		AToBTwo:                true,
		SqrtPriceLimitOne:      fixedpoint.MinSqrtPriceX64,
		SqrtPriceLimitTwo:      fixedpoint.MinSqrtPriceX64,
		IntermediaryFee:        &transferfee.Config{BasisPoints: 100, MaximumFee: 10},
		Now:                    1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.IntermediaryFeeTaken == 0 {
		t.Fatal("expected a nonzero transfer fee on the intermediary hop")
	}
	if result.IntermediaryAmount != result.HopOne.AmountB-result.IntermediaryFeeTaken {
		t.Fatalf("intermediary amount should be hop one's output net of the transfer fee, got %d", result.IntermediaryAmount)
	}
}

func TestTwoHopSwap_RejectsDuplicatePools(t *testing.T) {
	mintX := solana.PublicKey{1}
	mintY := solana.PublicKey{2}
	poolOne, seqOne := buildTwoHopPool(t, mintX, mintY, solana.PublicKey{10}, solana.PublicKey{11}, 1_000_000)

	_, err := TwoHopSwap(poolOne, poolOne, seqOne, seqOne, TwoHopParams{
		AmountSpecified:        1000,
		AmountSpecifiedIsInput: true,
		AToBOne:                true,
		AToBTwo:                true,
		SqrtPriceLimitOne:      fixedpoint.MinSqrtPriceX64,
		SqrtPriceLimitTwo:      fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err == nil {
		t.Fatal("expected rejection of identical pools")
	}
}

func TestTwoHopSwap_RejectsIntermediaryMintMismatch(t *testing.T) {
	mintX := solana.PublicKey{1}
	mintY := solana.PublicKey{2}
	mintW := solana.PublicKey{9}
	mintZ := solana.PublicKey{3}

	poolOne, seqOne := buildTwoHopPool(t, mintX, mintY, solana.PublicKey{10}, solana.PublicKey{11}, 1_000_000)
	// poolTwo's input mint under a_to_b_two=true is mint_w, not mint_y.
	poolTwo, seqTwo := buildTwoHopPool(t, mintW, mintZ, solana.PublicKey{12}, solana.PublicKey{13}, 1_000_000)

	_, err := TwoHopSwap(poolOne, poolTwo, seqOne, seqTwo, TwoHopParams{
		AmountSpecified:        1000,
		AmountSpecifiedIsInput: true,
		AToBOne:                true,
		AToBTwo:                true,
		SqrtPriceLimitOne:      fixedpoint.MinSqrtPriceX64,
		SqrtPriceLimitTwo:      fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err == nil || err != kerrors.ErrInvalidIntermediaryMint {
		t.Fatalf("expected ErrInvalidIntermediaryMint, got %v", err)
	}
}

func TestTwoHopSwap_ExactOutReverseOrder(t *testing.T) {
	mintX := solana.PublicKey{1}
	mintY := solana.PublicKey{2}
	mintZ := solana.PublicKey{3}

	poolOne, seqOne := buildTwoHopPool(t, mintX, mintY, solana.PublicKey{10}, solana.PublicKey{11}, 1_000_000)
	poolTwo, seqTwo := buildTwoHopPool(t, mintY, mintZ, solana.PublicKey{12}, solana.PublicKey{13}, 1_000_000)

	result, err := TwoHopSwap(poolOne, poolTwo, seqOne, seqTwo, TwoHopParams{
		AmountSpecified:        500,
		AmountSpecifiedIsInput: false,
		AToBOne:                true,
		AToBTwo:                true,
		SqrtPriceLimitOne:      fixedpoint.MinSqrtPriceX64,
		SqrtPriceLimitTwo:      fixedpoint.MinSqrtPriceX64,
		Now:                    1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.HopTwo.AmountB != 500 {
		t.Fatalf("expected hop two's output to equal the specified exact-output amount, got %d", result.HopTwo.AmountB)
	}
	if result.HopOne.AmountB != result.IntermediaryAmount {
		t.Fatalf("hop one's output should equal the grossed-up intermediary amount, got %d vs %d", result.HopOne.AmountB, result.IntermediaryAmount)
	}
}
