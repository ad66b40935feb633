package transferfee

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestLegacyAdapter_NoExtensions(t *testing.T) {
	var adapter TokenAdapter = LegacyAdapter{Transfer: func(from, to solana.PublicKey, amount uint64, decimals uint8) error {
		return nil
	}}
	if adapter.TransferFeeConfig() != nil {
		t.Fatal("legacy adapter must report no transfer-fee config")
	}
	if _, ok := adapter.TransferHookProgramID(); ok {
		t.Fatal("legacy adapter must report no transfer hook")
	}
	if adapter.IsMemoRequired() {
		t.Fatal("legacy adapter must not require memo")
	}
}

func TestToken2022Adapter_ReportsConfiguredExtensions(t *testing.T) {
	hook := solana.PublicKey{7}
	var adapter TokenAdapter = Token2022Adapter{
		Transfer:     func(from, to solana.PublicKey, amount uint64, decimals uint8) error { return nil },
		FeeConfig:    &Config{BasisPoints: 100, MaximumFee: 10},
		HookProgram:  &hook,
		MemoRequired: true,
	}
	if adapter.TransferFeeConfig() == nil {
		t.Fatal("expected a transfer-fee config")
	}
	gotHook, ok := adapter.TransferHookProgramID()
	if !ok || gotHook != hook {
		t.Fatal("expected the configured transfer-hook program id")
	}
	if !adapter.IsMemoRequired() {
		t.Fatal("expected memo required")
	}
}
