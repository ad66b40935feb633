package dex

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestTradeBatch_OpenAndCloseChildPosition(t *testing.T) {
	authority := solana.PublicKey{1}
	cfg := setupConfig(t, authority)
	p, _ := setupPool(t, cfg, solana.PublicKey{1}, solana.PublicKey{2})

	batch := InitializeTradeBatch(solana.PublicKey{70}, nil)
	sink := &recordingSink{}
	pos, slot, err := OpenPositionInTradeBatch(p, batch, solana.PublicKey{1}, -640, 640, sink)
	if err != nil {
		t.Fatal(err)
	}
	if pos.TradeBatch != batch.Mint {
		t.Fatal("expected child position to reference its trade batch")
	}
	if err := DeleteTradeBatch(batch, nil); err == nil {
		t.Fatal("expected delete to fail while a slot is open")
	}
	if err := ClosePositionInTradeBatch(batch, slot, pos, sink); err != nil {
		t.Fatal(err)
	}
	if err := DeleteTradeBatch(batch, nil); err != nil {
		t.Fatal(err)
	}
	if len(sink.events) != 2 {
		t.Fatalf("expected open and close events, got %d", len(sink.events))
	}
}
