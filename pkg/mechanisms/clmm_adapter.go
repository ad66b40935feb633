package mechanisms

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/dex"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/primitives"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

// metadataTickLower and metadataTickUpper are the TokenAmounts.Metadata keys a
// caller uses to name the tick range a new position should be opened
// against. AddLiquidity has no dedicated tick-range fields of its own, so
// this adapter borrows the venue-agnostic Metadata bag the same way the
// interface's doc comment anticipates ("Implementations should document
// which fields they use").
const (
	metadataTickLower = "tick_lower"
	metadataTickUpper = "tick_upper"
)

// CLMMLiquidityPool adapts this module's tick-indexed settlement kernel to
// the toolkit's venue-agnostic LiquidityPool contract: a surface over an
// already-initialized pool.Pool that reads its state (Calculate) and opens,
// funds and withdraws positions on it (AddLiquidity, RemoveLiquidity), for
// callers that want to value or size a concentrated-liquidity position
// without depending on the kernel's Solana-program-shaped instruction layer
// directly.
//
// AddLiquidity's TokenAmounts.AmountA is read as the liquidity amount to
// deposit (the kernel's native unit of deposit) and AmountB as the token-B
// slippage bound, mirroring increase_liquidity's own (liquidity_amount,
// token_max_a, token_max_b) parameterization; token_max_a is left
// unbounded since the generic interface carries only two amount fields.
type CLMMLiquidityPool struct {
	venue      string
	poolKey    solana.PublicKey
	decimalsA  uint
	decimalsB  uint
	underlying *pool.Pool
	sequence   *tickarray.Sequence
	positions  map[string]*position.Position
	nextSlot   int
}

// NewCLMMLiquidityPool wraps an initialized pool and its tick array
// sequence for use behind the LiquidityPool interface.
func NewCLMMLiquidityPool(venue string, poolKey solana.PublicKey, p *pool.Pool, seq *tickarray.Sequence, decimalsA, decimalsB uint) *CLMMLiquidityPool {
	return &CLMMLiquidityPool{
		venue:      venue,
		poolKey:    poolKey,
		decimalsA:  decimalsA,
		decimalsB:  decimalsB,
		underlying: p,
		sequence:   seq,
		positions:  make(map[string]*position.Position),
	}
}

func (c *CLMMLiquidityPool) Mechanism() MechanismType {
	return MechanismTypeLiquidityPool
}

func (c *CLMMLiquidityPool) Venue() string {
	return c.venue
}

// Calculate reports the pool's current spot price, total liquidity and
// accrued-but-uncollected protocol fees. It reads pool state only; params
// is accepted for interface conformance and is currently unused by this
// adapter since the pool already carries everything Calculate reports.
func (c *CLMMLiquidityPool) Calculate(ctx context.Context, params PoolParams) (PoolState, error) {
	if err := ctx.Err(); err != nil {
		return PoolState{}, err
	}
	spotPrice, err := c.underlying.DisplaySpotPrice(c.decimalsA, c.decimalsB)
	if err != nil {
		return PoolState{}, err
	}
	liquidityDecimal, err := primitives.NewDecimalFromString(c.underlying.Liquidity.Big().String())
	if err != nil {
		return PoolState{}, err
	}
	liquidityAmount, err := primitives.NewAmount(liquidityDecimal)
	if err != nil {
		return PoolState{}, err
	}
	return PoolState{
		SpotPrice:          spotPrice,
		Liquidity:          liquidityAmount,
		EffectiveLiquidity: liquidityAmount,
		AccumulatedFeesA:   primitives.AmountFromAtomicUnits(c.underlying.ProtocolFeeOwedA, c.decimalsA),
		AccumulatedFeesB:   primitives.AmountFromAtomicUnits(c.underlying.ProtocolFeeOwedB, c.decimalsB),
	}, nil
}

// AddLiquidity opens a new position across the tick range named in
// amounts.Metadata (under the metadataTickLower/metadataTickUpper keys) and
// deposits amounts.AmountA worth of
// liquidity into it, bounding the token B side by amounts.AmountB.
func (c *CLMMLiquidityPool) AddLiquidity(ctx context.Context, amounts TokenAmounts) (PoolPosition, error) {
	if err := ctx.Err(); err != nil {
		return PoolPosition{}, err
	}
	tickLower, tickUpper, err := tickRangeFromAmounts(amounts)
	if err != nil {
		return PoolPosition{}, err
	}

	c.nextSlot++
	slot := syntheticPositionMint(c.nextSlot)
	pos, err := dex.OpenPosition(c.underlying, c.poolKey, slot, tickLower, tickUpper, nil)
	if err != nil {
		return PoolPosition{}, err
	}

	liquidityAmount := amounts.AmountA.ToAtomicUnits(0)
	tokenMaxB := amounts.AmountB.ToAtomicUnits(c.decimalsB)
	result, err := dex.IncreaseLiquidity(c.underlying, c.sequence, pos, liquidityAmount, ^uint64(0), tokenMaxB, time.Now().Unix(), nil)
	if err != nil {
		return PoolPosition{}, err
	}

	positionID := slot.String()
	c.positions[positionID] = pos

	return PoolPosition{
		PoolID:    c.poolKey.String(),
		Liquidity: primitives.AmountFromAtomicUnits(liquidityAmount, 0),
		TokensDeposited: TokenAmounts{
			AmountA: primitives.AmountFromAtomicUnits(result.AmountA.Lo, c.decimalsA),
			AmountB: primitives.AmountFromAtomicUnits(result.AmountB.Lo, c.decimalsB),
		},
		Metadata: map[string]interface{}{
			"position_id": positionID,
			"tick_lower":  tickLower,
			"tick_upper":  tickUpper,
		},
	}, nil
}

// RemoveLiquidity withdraws all of a position's liquidity and returns the
// amounts released, leaving the emptied position open for the caller to
// close separately (fee and reward collection are out of scope for this
// bridge; use the dex package directly for those).
func (c *CLMMLiquidityPool) RemoveLiquidity(ctx context.Context, withdraw PoolPosition) (TokenAmounts, error) {
	if err := ctx.Err(); err != nil {
		return TokenAmounts{}, err
	}
	positionID, ok := withdraw.Metadata["position_id"].(string)
	if !ok {
		return TokenAmounts{}, kerrors.ErrPositionNotFound
	}
	pos, ok := c.positions[positionID]
	if !ok {
		return TokenAmounts{}, kerrors.ErrPositionNotFound
	}
	liquidityAmount := withdraw.Liquidity.ToAtomicUnits(0)
	result, err := dex.DecreaseLiquidity(c.underlying, c.sequence, pos, liquidityAmount, 0, 0, time.Now().Unix(), nil)
	if err != nil {
		return TokenAmounts{}, err
	}
	delete(c.positions, positionID)
	return TokenAmounts{
		AmountA: primitives.AmountFromAtomicUnits(result.AmountA.Lo, c.decimalsA),
		AmountB: primitives.AmountFromAtomicUnits(result.AmountB.Lo, c.decimalsB),
	}, nil
}

func tickRangeFromAmounts(amounts TokenAmounts) (int32, int32, error) {
	if amounts.Metadata == nil {
		return 0, 0, kerrors.ErrInvalidTickIndex
	}
	lower, ok := amounts.Metadata[metadataTickLower].(int32)
	if !ok {
		return 0, 0, kerrors.ErrInvalidTickIndex
	}
	upper, ok := amounts.Metadata[metadataTickUpper].(int32)
	if !ok {
		return 0, 0, kerrors.ErrInvalidTickIndex
	}
	return lower, upper, nil
}

// syntheticPositionMint derives a deterministic stand-in for a position's
// receipt mint from this adapter's internal slot counter. Real position
// mints are minted by the host off-chain; this bridge only needs a stable
// key to look the position back up by.
func syntheticPositionMint(slot int) solana.PublicKey {
	var key solana.PublicKey
	key[0] = byte(slot)
	key[1] = byte(slot >> 8)
	key[2] = byte(slot >> 16)
	return key
}
