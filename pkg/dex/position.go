package dex

import (
	"lukechampine.com/uint128"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/liquidity"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

// OpenPosition mints a receipt and creates its backing position with zero
// liquidity.
func OpenPosition(p *pool.Pool, poolKey, positionMint solana.PublicKey, tickLower, tickUpper int32, sink EventSink) (*position.Position, error) {
	pos, err := position.Open(poolKey, positionMint, tickLower, tickUpper, p.TickSpacing)
	if err != nil {
		return nil, err
	}
	emit(sink, PositionOpened{PositionMint: positionMint, Pool: poolKey, TickLower: tickLower, TickUpper: tickUpper})
	return pos, nil
}

// OpenPositionWithMetadata is identical to OpenPosition except it also
// directs the host to mint the decorative NFT-metadata account alongside
// the receipt; the metadata itself is out of this kernel's scope, so this
// function differs only in the event it emits.
func OpenPositionWithMetadata(p *pool.Pool, poolKey, positionMint solana.PublicKey, tickLower, tickUpper int32, sink EventSink) (*position.Position, error) {
	pos, err := position.Open(poolKey, positionMint, tickLower, tickUpper, p.TickSpacing)
	if err != nil {
		return nil, err
	}
	emit(sink, PositionOpened{PositionMint: positionMint, Pool: poolKey, TickLower: tickLower, TickUpper: tickUpper, WithMetadata: true})
	return pos, nil
}

// ClosePosition requires the position be empty and clears it so the host
// can burn its receipt.
func ClosePosition(pos *position.Position, sink EventSink) error {
	mint := pos.PositionMint
	if err := pos.Close(); err != nil {
		return err
	}
	emit(sink, PositionClosed{PositionMint: mint})
	return nil
}

// IncreaseLiquidity runs the modify_liquidity pipeline with a positive
// delta and enforces included_delta <= token_max_{a,b}.
func IncreaseLiquidity(p *pool.Pool, seq *tickarray.Sequence, pos *position.Position, liquidityAmount uint64, tokenMaxA, tokenMaxB uint64, now int64, sink EventSink) (liquidity.Result, error) {
	result, err := liquidity.Modify(p, seq, pos, int64(liquidityAmount), now)
	if err != nil {
		return liquidity.Result{}, err
	}
	if result.AmountA.Cmp(uint128.From64(tokenMaxA)) > 0 || result.AmountB.Cmp(uint128.From64(tokenMaxB)) > 0 {
		return liquidity.Result{}, kerrors.ErrTokenLimitExceeded
	}
	emit(sink, LiquidityIncreased{PositionMint: pos.PositionMint, LiquidityAmount: liquidityAmount, AmountA: result.AmountA.Lo, AmountB: result.AmountB.Lo})
	return result, nil
}

// DecreaseLiquidity runs the modify_liquidity pipeline with a negative
// delta and enforces excluded_delta >= token_min_{a,b}.
func DecreaseLiquidity(p *pool.Pool, seq *tickarray.Sequence, pos *position.Position, liquidityAmount uint64, tokenMinA, tokenMinB uint64, now int64, sink EventSink) (liquidity.Result, error) {
	result, err := liquidity.Modify(p, seq, pos, -int64(liquidityAmount), now)
	if err != nil {
		return liquidity.Result{}, err
	}
	if result.AmountA.Cmp(uint128.From64(tokenMinA)) < 0 || result.AmountB.Cmp(uint128.From64(tokenMinB)) < 0 {
		return liquidity.Result{}, kerrors.ErrTokenAmountBelowMinimum
	}
	emit(sink, LiquidityDecreased{PositionMint: pos.PositionMint, LiquidityAmount: liquidityAmount, AmountA: result.AmountA.Lo, AmountB: result.AmountB.Lo})
	return result, nil
}

// CollectFees zeroes a position's owed fees and transfers them from the
// pool's vaults to the receipt holder's token accounts.
func CollectFees(pos *position.Position, transferer TokenTransferer, vaultA, vaultB, destA, destB, mintA, mintB solana.PublicKey, sink EventSink) error {
	amountA, amountB := pos.CollectFees()
	if amountA > 0 {
		if err := transferer.Transfer(vaultA, destA, mintA, amountA); err != nil {
			return err
		}
	}
	if amountB > 0 {
		if err := transferer.Transfer(vaultB, destB, mintB, amountB); err != nil {
			return err
		}
	}
	emit(sink, FeesCollected{PositionMint: pos.PositionMint, AmountA: amountA, AmountB: amountB})
	return nil
}

// CollectReward zeroes a single reward index's owed amount and transfers it
// from the pool's reward vault to the receipt holder.
func CollectReward(pos *position.Position, index int, transferer TokenTransferer, vault, dest, mint solana.PublicKey, sink EventSink) error {
	amount, err := pos.CollectReward(index)
	if err != nil {
		return err
	}
	if amount > 0 {
		if err := transferer.Transfer(vault, dest, mint, amount); err != nil {
			return err
		}
	}
	emit(sink, RewardCollected{PositionMint: pos.PositionMint, RewardIndex: index, Amount: amount})
	return nil
}

// CollectProtocolFees zeroes a pool's accrued protocol fees and transfers
// them to the config's collection authority, requiring that authority to
// have signed.
func CollectProtocolFees(cfg *pool.Config, p *pool.Pool, signer solana.PublicKey, transferer TokenTransferer, vaultA, vaultB, destA, destB, mintA, mintB solana.PublicKey, sink EventSink) error {
	if signer != cfg.CollectProtocolFeesAuthority {
		return kerrors.ErrInvalidDelegate
	}
	amountA, amountB := p.ProtocolFeeOwedA, p.ProtocolFeeOwedB
	p.ProtocolFeeOwedA, p.ProtocolFeeOwedB = 0, 0
	if amountA > 0 {
		if err := transferer.Transfer(vaultA, destA, mintA, amountA); err != nil {
			return err
		}
	}
	if amountB > 0 {
		if err := transferer.Transfer(vaultB, destB, mintB, amountB); err != nil {
			return err
		}
	}
	emit(sink, ProtocolFeesCollected{AmountA: amountA, AmountB: amountB})
	return nil
}
