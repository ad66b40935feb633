package dex

import (
	"github.com/gagliardetto/solana-go"

	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
	"github.com/johnayoung/go-clmm-kernel/pkg/pool"
)

// InitializeConfig creates a deployment's root admin record.
func InitializeConfig(feeAuthority, collectProtocolFeesAuthority, rewardEmissionsSuperAuthority solana.PublicKey, defaultProtocolFeeRate uint16, maxProtocolFeeRate uint16, sink EventSink) (*pool.Config, error) {
	cfg := &pool.Config{
		FeeAuthority:                  feeAuthority,
		CollectProtocolFeesAuthority:  collectProtocolFeesAuthority,
		RewardEmissionsSuperAuthority: rewardEmissionsSuperAuthority,
		DefaultProtocolFeeRate:        defaultProtocolFeeRate,
	}
	if err := cfg.Validate(maxProtocolFeeRate); err != nil {
		return nil, err
	}
	emit(sink, ConfigInitialized{
		FeeAuthority:                  feeAuthority,
		CollectProtocolFeesAuthority:  collectProtocolFeesAuthority,
		RewardEmissionsSuperAuthority: rewardEmissionsSuperAuthority,
		DefaultProtocolFeeRate:        defaultProtocolFeeRate,
	})
	return cfg, nil
}

// InitializeFeeTier whitelists a (tick_spacing, default_fee_rate) pair
// against a config, requiring the config's fee authority to have signed
// (checked by the caller; this function only enforces the signer matches).
func InitializeFeeTier(cfg *pool.Config, signer solana.PublicKey, tickSpacing int32, defaultFeeRate uint64, maxFeeRate uint16, sink EventSink) error {
	if signer != cfg.FeeAuthority {
		return kerrors.ErrInvalidDelegate
	}
	if defaultFeeRate > uint64(maxFeeRate) {
		return kerrors.ErrFeeRateExceeded
	}
	if err := cfg.RegisterFeeTier(pool.FeeTier{TickSpacing: tickSpacing, DefaultFeeRate: defaultFeeRate}); err != nil {
		return err
	}
	emit(sink, FeeTierInitialized{TickSpacing: tickSpacing, DefaultFeeRate: defaultFeeRate})
	return nil
}

// SetFeeAuthority transfers the config's fee authority.
func SetFeeAuthority(cfg *pool.Config, signer, newAuthority solana.PublicKey, sink EventSink) error {
	if signer != cfg.FeeAuthority {
		return kerrors.ErrInvalidDelegate
	}
	cfg.FeeAuthority = newAuthority
	emit(sink, AuthoritySet{Field: "fee_authority", Authority: newAuthority})
	return nil
}

// SetCollectProtocolFeesAuthority transfers the config's protocol-fee
// collection authority.
func SetCollectProtocolFeesAuthority(cfg *pool.Config, signer, newAuthority solana.PublicKey, sink EventSink) error {
	if signer != cfg.CollectProtocolFeesAuthority {
		return kerrors.ErrInvalidDelegate
	}
	cfg.CollectProtocolFeesAuthority = newAuthority
	emit(sink, AuthoritySet{Field: "collect_protocol_fees_authority", Authority: newAuthority})
	return nil
}

// SetRewardEmissionsSuperAuthority transfers the config's super authority
// over every pool's reward emissions.
func SetRewardEmissionsSuperAuthority(cfg *pool.Config, signer, newAuthority solana.PublicKey, sink EventSink) error {
	if signer != cfg.RewardEmissionsSuperAuthority {
		return kerrors.ErrInvalidDelegate
	}
	cfg.RewardEmissionsSuperAuthority = newAuthority
	emit(sink, AuthoritySet{Field: "reward_emissions_super_authority", Authority: newAuthority})
	return nil
}

// SetDefaultProtocolFeeRate updates the rate newly-initialized pools
// inherit; it does not retroactively change any existing pool.
func SetDefaultProtocolFeeRate(cfg *pool.Config, signer solana.PublicKey, rate, maxProtocolFeeRate uint16, sink EventSink) error {
	if signer != cfg.FeeAuthority {
		return kerrors.ErrInvalidDelegate
	}
	if rate > maxProtocolFeeRate {
		return kerrors.ErrProtocolFeeRateExceeded
	}
	cfg.DefaultProtocolFeeRate = rate
	emit(sink, FeeRateSet{ProtocolFeeRate: rate})
	return nil
}
