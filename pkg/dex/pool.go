package dex

import (
	"lukechampine.com/uint128"

	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
	"github.com/johnayoung/go-clmm-kernel/pkg/position"
	"github.com/johnayoung/go-clmm-kernel/pkg/tickarray"
)

// InitializePool creates a pool against a whitelisted fee tier, rejecting a
// tick spacing the config has no registered tier for.
func InitializePool(cfg *pool.Config, mintA, mintB, vaultA, vaultB solana.PublicKey, tickSpacing int32, startSqrtPrice uint128.Uint128, sink EventSink) (*pool.Pool, error) {
	tier, err := pool.Lookup(cfg.FeeTiers, tickSpacing)
	if err != nil {
		return nil, err
	}
	p, err := pool.New(cfg, mintA, mintB, vaultA, vaultB, tier, startSqrtPrice)
	if err != nil {
		return nil, err
	}
	emit(sink, PoolInitialized{
		MintA: mintA, MintB: mintB, VaultA: vaultA, VaultB: vaultB,
		TickSpacing: tickSpacing, InitialSqrtPrice: startSqrtPrice,
	})
	return p, nil
}

// InitializeTickArray allocates a tick array account at an aligned start
// index; it carries no pool reference because a pool addresses its arrays
// by start index alone.
func InitializeTickArray(startTickIndex, tickSpacing int32, sink EventSink) (*tickarray.Array, error) {
	arr, err := tickarray.NewArray(startTickIndex, tickSpacing)
	if err != nil {
		return nil, err
	}
	emit(sink, TickArrayInitialized{StartTickIndex: startTickIndex})
	return arr, nil
}

// InitializeReward claims the next-in-order reward slot on a pool.
func InitializeReward(p *pool.Pool, index int, mint, vault, authority solana.PublicKey, sink EventSink) error {
	if err := p.InitializeReward(index, mint, vault, authority); err != nil {
		return err
	}
	emit(sink, RewardInitialized{RewardIndex: index, Mint: mint, Vault: vault, Authority: authority})
	return nil
}

// SetRewardEmissions sets a reward slot's emissions rate, requiring the
// reward's own authority to have signed.
func SetRewardEmissions(p *pool.Pool, signer solana.PublicKey, index int, emissionsPerSecondX64 uint128.Uint128, vaultBalance uint64, sink EventSink) error {
	if index < 0 || index >= len(p.RewardInfos) {
		return kerrors.ErrInvalidRewardIndex
	}
	if signer != p.RewardInfos[index].Authority {
		return kerrors.ErrInvalidDelegate
	}
	if err := p.SetRewardEmissions(index, emissionsPerSecondX64, vaultBalance); err != nil {
		return err
	}
	emit(sink, RewardEmissionsSet{RewardIndex: index, EmissionsPerSecondX64: emissionsPerSecondX64})
	return nil
}

// SetRewardAuthority transfers a single reward slot's authority.
func SetRewardAuthority(p *pool.Pool, signer solana.PublicKey, index int, newAuthority solana.PublicKey, sink EventSink) error {
	if index < 0 || index >= len(p.RewardInfos) {
		return kerrors.ErrInvalidRewardIndex
	}
	if signer != p.RewardInfos[index].Authority {
		return kerrors.ErrInvalidDelegate
	}
	p.RewardInfos[index].Authority = newAuthority
	emit(sink, AuthoritySet{Field: "reward_authority", Authority: newAuthority})
	return nil
}

// SetFeeRate updates a pool's trading fee rate, requiring the config's fee
// authority to have signed.
func SetFeeRate(cfg *pool.Config, p *pool.Pool, signer solana.PublicKey, feeRate uint64, sink EventSink) error {
	if signer != cfg.FeeAuthority {
		return kerrors.ErrInvalidDelegate
	}
	if err := p.SetFeeRate(feeRate); err != nil {
		return err
	}
	emit(sink, FeeRateSet{FeeRate: feeRate})
	return nil
}

// SetProtocolFeeRate updates a pool's protocol fee rate, requiring the
// config's fee authority to have signed.
func SetProtocolFeeRate(cfg *pool.Config, p *pool.Pool, signer solana.PublicKey, rate uint16, sink EventSink) error {
	if signer != cfg.FeeAuthority {
		return kerrors.ErrInvalidDelegate
	}
	if err := p.SetProtocolFeeRate(rate); err != nil {
		return err
	}
	emit(sink, FeeRateSet{ProtocolFeeRate: rate})
	return nil
}

// UpdateFeesAndRewards rolls a pool's reward/fee growth accumulators
// forward and credits a single position's checkpoints with whatever it has
// newly earned, without touching its liquidity. It is the standalone
// operation the original program exposes separately from
// increase_liquidity/decrease_liquidity, useful for a position that wants
// its owed amounts current without also resizing.
func UpdateFeesAndRewards(p *pool.Pool, seq *tickarray.Sequence, pos *position.Position, now int64, sink EventSink) error {
	if err := p.RollRewardsAndFeeGrowth(now); err != nil {
		return err
	}
	lowerTick, err := seq.GetTick(pos.TickLower)
	if err != nil {
		return err
	}
	upperTick, err := seq.GetTick(pos.TickUpper)
	if err != nil {
		return err
	}

	insideA := tickarray.FeeGrowthInsideA(p.TickCurrentIndex, pos.TickLower, pos.TickUpper, lowerTick, upperTick, p.FeeGrowthGlobalA)
	insideB := tickarray.FeeGrowthInsideB(p.TickCurrentIndex, pos.TickLower, pos.TickUpper, lowerTick, upperTick, p.FeeGrowthGlobalB)
	if err := pos.UpdateFeesOwed(insideA, insideB); err != nil {
		return err
	}
	for i := range p.RewardInfos {
		if !p.RewardInfos[i].Initialized() {
			continue
		}
		insideReward := tickarray.RewardGrowthInside(p.TickCurrentIndex, pos.TickLower, pos.TickUpper, lowerTick, upperTick, i, p.RewardInfos[i].GrowthGlobalX64)
		if err := pos.UpdateRewardOwed(i, insideReward); err != nil {
			return err
		}
	}

	emit(sink, FeesAndRewardsUpdated{PositionMint: pos.PositionMint})
	return nil
}
