package position

import (
	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// tradeBatchSize is the number of child position slots a single trade
// batch receipt can back, matching the documented ceiling for
// batch-opened positions.
const tradeBatchSize = 256

// TradeBatch is a single receipt token standing in for up to
// tradeBatchSize child positions, letting a caller open many ranges under
// one mint instead of one receipt per range.
type TradeBatch struct {
	Mint     solana.PublicKey
	occupied [tradeBatchSize]bool
	count    int
}

// Open reserves the next free slot and returns its index.
func (b *TradeBatch) Open() (int, error) {
	for i, taken := range b.occupied {
		if !taken {
			b.occupied[i] = true
			b.count++
			return i, nil
		}
	}
	return 0, kerrors.ErrInvalidTradeBatchIndex
}

// Close releases a slot, provided the caller has already verified (via
// Position.IsEmpty) that the child position backing it can be closed.
func (b *TradeBatch) Close(index int) error {
	if index < 0 || index >= tradeBatchSize {
		return kerrors.ErrInvalidTradeBatchIndex
	}
	if !b.occupied[index] {
		return kerrors.ErrInvalidTradeBatchIndex
	}
	b.occupied[index] = false
	b.count--
	return nil
}

// Deletable reports whether every slot in the batch is free, the
// precondition for deleting the batch's own receipt mint.
func (b *TradeBatch) Deletable() bool {
	return b.count == 0
}

// Delete fails with NonDeletablePositionTradeBatchError if any child
// position is still open.
func (b *TradeBatch) Delete() error {
	if !b.Deletable() {
		return kerrors.ErrNonDeletablePositionTradeBatch
	}
	return nil
}
