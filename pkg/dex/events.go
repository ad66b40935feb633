package dex

import (
	"lukechampine.com/uint128"

	"github.com/gagliardetto/solana-go"
)

// ConfigInitialized is emitted by InitializeConfig.
type ConfigInitialized struct {
	FeeAuthority                  solana.PublicKey
	CollectProtocolFeesAuthority  solana.PublicKey
	RewardEmissionsSuperAuthority solana.PublicKey
	DefaultProtocolFeeRate        uint16
}

// FeeTierInitialized is emitted by InitializeFeeTier.
type FeeTierInitialized struct {
	TickSpacing    int32
	DefaultFeeRate uint64
}

// PoolInitialized is emitted by InitializePool.
type PoolInitialized struct {
	MintA, MintB   solana.PublicKey
	VaultA, VaultB solana.PublicKey
	TickSpacing    int32
	InitialSqrtPrice uint128.Uint128
}

// TickArrayInitialized is emitted by InitializeTickArray.
type TickArrayInitialized struct {
	StartTickIndex int32
}

// RewardInitialized is emitted by InitializeReward.
type RewardInitialized struct {
	RewardIndex int
	Mint        solana.PublicKey
	Vault       solana.PublicKey
	Authority   solana.PublicKey
}

// RewardEmissionsSet is emitted by SetRewardEmissions.
type RewardEmissionsSet struct {
	RewardIndex           int
	EmissionsPerSecondX64 uint128.Uint128
}

// PositionOpened is emitted by OpenPosition and OpenPositionWithMetadata.
type PositionOpened struct {
	PositionMint   solana.PublicKey
	Pool           solana.PublicKey
	TickLower      int32
	TickUpper      int32
	WithMetadata   bool
	TradeBatch     solana.PublicKey
	TradeBatchSlot int
}

// PositionClosed is emitted by ClosePosition.
type PositionClosed struct {
	PositionMint solana.PublicKey
}

// LiquidityIncreased is emitted by IncreaseLiquidity.
type LiquidityIncreased struct {
	PositionMint    solana.PublicKey
	LiquidityAmount uint64
	AmountA, AmountB uint64
}

// LiquidityDecreased is emitted by DecreaseLiquidity.
type LiquidityDecreased struct {
	PositionMint    solana.PublicKey
	LiquidityAmount uint64
	AmountA, AmountB uint64
}

// FeesCollected is emitted by CollectFees.
type FeesCollected struct {
	PositionMint     solana.PublicKey
	AmountA, AmountB uint64
}

// RewardCollected is emitted by CollectReward.
type RewardCollected struct {
	PositionMint solana.PublicKey
	RewardIndex  int
	Amount       uint64
}

// ProtocolFeesCollected is emitted by CollectProtocolFees.
type ProtocolFeesCollected struct {
	Pool             solana.PublicKey
	AmountA, AmountB uint64
}

// FeesAndRewardsUpdated is emitted by UpdateFeesAndRewards.
type FeesAndRewardsUpdated struct {
	PositionMint solana.PublicKey
}

// Swapped is emitted by Swap.
type Swapped struct {
	Pool                   solana.PublicKey
	AmountSpecifiedIsInput bool
	AToB                   bool
	AmountA, AmountB       uint64
	ProtocolFeeA, ProtocolFeeB uint64
}

// TwoHopSwapped is emitted by TwoHopSwap.
type TwoHopSwapped struct {
	PoolOne, PoolTwo           solana.PublicKey
	IntermediaryAmount         uint64
	IntermediaryFeeTaken       uint64
}

// TokenWrapperInitialized is emitted by InitializeTokenWrapper.
type TokenWrapperInitialized struct {
	Mint solana.PublicKey
}

// TokenWrapperDeleted is emitted by DeleteTokenWrapper.
type TokenWrapperDeleted struct {
	Mint solana.PublicKey
}

// AuthoritySet is emitted by every set_*_authority instruction.
type AuthoritySet struct {
	Field     string
	Authority solana.PublicKey
}

// FeeRateSet is emitted by SetFeeRate and SetProtocolFeeRate.
type FeeRateSet struct {
	Pool solana.PublicKey
	// One of FeeRate or ProtocolFeeRate is populated depending on which
	// instruction emitted this; the other is left zero.
	FeeRate         uint64
	ProtocolFeeRate uint16
}

func emit(sink EventSink, event any) {
	if sink == nil {
		return
	}
	sink.Emit(event)
}
