package dex

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
)

func TestInitializeTokenWrapper_RejectsConfidentialTransfer(t *testing.T) {
	_, err := InitializeTokenWrapper(pool.TokenWrapper{Mint: solana.PublicKey{1}, HasConfidentialTransfer: true}, nil)
	if err != kerrors.ErrUnsupportedTokenMint {
		t.Fatalf("expected ErrUnsupportedTokenMint, got %v", err)
	}
}

func TestInitializeTokenWrapper_AllowsTransferFeeExtension(t *testing.T) {
	sink := &recordingSink{}
	w, err := InitializeTokenWrapper(pool.TokenWrapper{Mint: solana.PublicKey{1}, HasTransferFee: true}, sink)
	if err != nil {
		t.Fatal(err)
	}
	if !w.HasTransferFee {
		t.Fatal("expected transfer-fee flag to be preserved")
	}
	if len(sink.events) != 1 {
		t.Fatalf("expected one event, got %d", len(sink.events))
	}
}

func TestDeleteTokenWrapper_RejectsDoubleDelete(t *testing.T) {
	w, err := InitializeTokenWrapper(pool.TokenWrapper{Mint: solana.PublicKey{1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := DeleteTokenWrapper(w, nil); err != nil {
		t.Fatal(err)
	}
	if err := DeleteTokenWrapper(w, nil); err == nil {
		t.Fatal("expected second delete to fail")
	}
}
