package pool

import (
	"testing"

	"lukechampine.com/uint128"

	"github.com/gagliardetto/solana-go"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		FeeAuthority:    solana.PublicKeyFromBytes(bytesOf(1)),
		DefaultProtocolFeeRate: 300,
		FeeTiers:        DefaultFeeTiers(),
	}
}

func bytesOf(b byte) []byte {
	out := make([]byte, 32)
	out[31] = b
	return out
}

func TestNew_RejectsWrongMintOrder(t *testing.T) {
	cfg := testConfig(t)
	mintA := solana.PublicKeyFromBytes(bytesOf(2))
	mintB := solana.PublicKeyFromBytes(bytesOf(1))
	tier, err := Lookup(cfg.FeeTiers, 60)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg, mintA, mintB, mintA, mintB, tier, uint128.From64(1<<63)); err == nil {
		t.Fatal("expected invalid mint order error")
	}
}

func TestNew_RejectsUnregisteredTickSpacing(t *testing.T) {
	cfg := testConfig(t)
	mintA := solana.PublicKeyFromBytes(bytesOf(1))
	mintB := solana.PublicKeyFromBytes(bytesOf(2))
	badTier := FeeTier{TickSpacing: 7, DefaultFeeRate: 1000}
	if _, err := New(cfg, mintA, mintB, mintA, mintB, badTier, uint128.From64(1<<63)); err == nil {
		t.Fatal("expected unsupported tick spacing error")
	}
}

func TestSetFeeRate_RejectsExcessive(t *testing.T) {
	p := &Pool{}
	if err := p.SetFeeRate(1_000_000); err == nil {
		t.Fatal("expected fee rate exceeded error")
	}
	if err := p.SetFeeRate(3000); err != nil {
		t.Fatal(err)
	}
}

func TestInitializeReward_SequentialOnly(t *testing.T) {
	p := &Pool{}
	mint := solana.PublicKeyFromBytes(bytesOf(9))
	if err := p.InitializeReward(1, mint, mint, mint); err == nil {
		t.Fatal("expected sequential reward index enforcement")
	}
	if err := p.InitializeReward(0, mint, mint, mint); err != nil {
		t.Fatal(err)
	}
	if err := p.InitializeReward(0, mint, mint, mint); err == nil {
		t.Fatal("expected error re-initializing a slot")
	}
}

func TestRollRewardsAndFeeGrowth_NoLiquidityNoop(t *testing.T) {
	p := &Pool{RewardLastUpdatedTimestamp: 100}
	if err := p.RollRewardsAndFeeGrowth(200); err != nil {
		t.Fatal(err)
	}
	if p.RewardLastUpdatedTimestamp != 200 {
		t.Fatalf("timestamp not advanced: %d", p.RewardLastUpdatedTimestamp)
	}
}

func TestRollRewardsAndFeeGrowth_RejectsBackwardTime(t *testing.T) {
	p := &Pool{RewardLastUpdatedTimestamp: 200}
	if err := p.RollRewardsAndFeeGrowth(100); err == nil {
		t.Fatal("expected invalid timestamp error")
	}
}
