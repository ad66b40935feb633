package dex

import (
	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
)

// InitializeTradeBatch creates a new trade-batch receipt with every slot
// free.
func InitializeTradeBatch(mint solana.PublicKey, sink EventSink) *position.TradeBatch {
	return &position.TradeBatch{Mint: mint}
}

// OpenPositionInTradeBatch reserves the next free slot in a trade batch
// and opens a child position under it, the trade-batch variant of
// OpenPosition.
func OpenPositionInTradeBatch(p *pool.Pool, batch *position.TradeBatch, poolKey solana.PublicKey, tickLower, tickUpper int32, sink EventSink) (*position.Position, int, error) {
	slot, err := batch.Open()
	if err != nil {
		return nil, 0, err
	}
	pos, err := position.Open(poolKey, batch.Mint, tickLower, tickUpper, p.TickSpacing)
	if err != nil {
		_ = batch.Close(slot)
		return nil, 0, err
	}
	pos.TradeBatch = batch.Mint
	emit(sink, PositionOpened{PositionMint: batch.Mint, Pool: poolKey, TickLower: tickLower, TickUpper: tickUpper, TradeBatch: batch.Mint, TradeBatchSlot: slot})
	return pos, slot, nil
}

// ClosePositionInTradeBatch requires the child position be empty, releases
// its slot, and clears the position the same way ClosePosition does.
func ClosePositionInTradeBatch(batch *position.TradeBatch, slot int, pos *position.Position, sink EventSink) error {
	if err := pos.Close(); err != nil {
		return err
	}
	if err := batch.Close(slot); err != nil {
		return err
	}
	emit(sink, PositionClosed{PositionMint: batch.Mint})
	return nil
}

// DeleteTradeBatch reclaims a trade batch's receipt mint, requiring every
// child slot already be closed.
func DeleteTradeBatch(batch *position.TradeBatch, sink EventSink) error {
	return batch.Delete()
}
