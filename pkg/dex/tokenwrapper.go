package dex

import (
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
)

// InitializeTokenWrapper whitelists a non-native mint's extension set,
// rejecting a mint that carries an extension the kernel cannot settle
// against (confidential-transfer or non-transferable).
func InitializeTokenWrapper(wrapper pool.TokenWrapper, sink EventSink) (*pool.TokenWrapper, error) {
	w := wrapper
	if !w.AllowedExtensions() {
		return nil, kerrors.ErrUnsupportedTokenMint
	}
	emit(sink, TokenWrapperInitialized{Mint: w.Mint})
	return &w, nil
}

// DeleteTokenWrapper reclaims a token wrapper's rent, requiring it not
// already be deleted.
func DeleteTokenWrapper(w *pool.TokenWrapper, sink EventSink) error {
	mint := w.Mint
	if err := w.Delete(); err != nil {
		return err
	}
	emit(sink, TokenWrapperDeleted{Mint: mint})
	return nil
}

