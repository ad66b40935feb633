package dex

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

const testTickSpacing = 64

type recordingSink struct {
	events []any
}

func (s *recordingSink) Emit(event any) { s.events = append(s.events, event) }

type recordingTransferer struct {
	transfers []transferCall
	fail      bool
}

type transferCall struct {
	From, To, Mint solana.PublicKey
	Amount         uint64
}

func (t *recordingTransferer) Transfer(from, to, mint solana.PublicKey, amount uint64) error {
	if t.fail {
		return errTransferFailed
	}
	t.transfers = append(t.transfers, transferCall{From: from, To: to, Mint: mint, Amount: amount})
	return nil
}

var errTransferFailed = testTransferError("transfer failed")

type testTransferError string

func (e testTransferError) Error() string { return string(e) }

func setupConfig(t *testing.T, feeAuthority solana.PublicKey) *pool.Config {
	t.Helper()
	cfg, err := InitializeConfig(feeAuthority, feeAuthority, feeAuthority, 0, fixedpoint.MaxProtocolFeeRate, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, tier := range pool.DefaultFeeTiers() {
		if tier.TickSpacing != testTickSpacing {
			continue
		}
		if err := InitializeFeeTier(cfg, feeAuthority, tier.TickSpacing, tier.DefaultFeeRate, fixedpoint.MaxFeeRate, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := pool.Lookup(cfg.FeeTiers, testTickSpacing); err != nil {
		if err := cfg.RegisterFeeTier(pool.FeeTier{TickSpacing: testTickSpacing, DefaultFeeRate: 3000}); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func setupPool(t *testing.T, cfg *pool.Config, mintA, mintB solana.PublicKey) (*pool.Pool, *tickarray.Sequence) {
	t.Helper()
	startSqrtPrice, err := fixedpoint.GetSqrtPriceAtTick(0)
	if err != nil {
		t.Fatal(err)
	}
	p, err := InitializePool(cfg, mintA, mintB, solana.PublicKey{100}, solana.PublicKey{101}, testTickSpacing, startSqrtPrice, nil)
	if err != nil {
		t.Fatal(err)
	}
	ticksInArray := fixedpoint.TicksPerArray * testTickSpacing
	lowerArr, err := InitializeTickArray(-ticksInArray, testTickSpacing, nil)
	if err != nil {
		t.Fatal(err)
	}
	upperArr, err := InitializeTickArray(0, testTickSpacing, nil)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := tickarray.NewSequence([]*tickarray.Array{lowerArr, upperArr})
	if err != nil {
		t.Fatal(err)
	}
	return p, seq
}
