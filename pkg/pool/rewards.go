package pool

import (
	"lukechampine.com/uint128"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// SetRewardEmissions sets a reward slot's emissions rate, after checking the
// vault can sustain the new rate for at least one day — the same
// sufficiency check the original program performs before accepting a new
// rate, so a pool can never be left with an emissions rate it cannot pay
// out.
func (p *Pool) SetRewardEmissions(index int, emissionsPerSecondX64 uint128.Uint128, vaultBalance uint64) error {
	if index < 0 || index >= fixedpoint.NumRewards {
		return kerrors.ErrInvalidRewardIndex
	}
	if !p.RewardInfos[index].Initialized() {
		return kerrors.ErrRewardNotInitialized
	}

	dayEmissionsX64, err := fixedpoint.MulU128(emissionsPerSecondX64, uint128.From64(uint64(fixedpoint.DaySeconds)))
	if err != nil {
		return err
	}
	dayEmissionsWhole, err := fixedpoint.MulShiftRight(dayEmissionsX64, uint128.From64(1), fixedpoint.Q64Resolution)
	if err != nil {
		return err
	}
	if dayEmissionsWhole.Cmp(uint128.From64(vaultBalance)) > 0 {
		return kerrors.ErrInsufficientRewardVaultAmount
	}

	p.RewardInfos[index].EmissionsPerSecondX64 = emissionsPerSecondX64
	return nil
}

// RollRewardsAndFeeGrowth advances a pool's reward-growth accumulators from
// RewardLastUpdatedTimestamp to now, crediting each initialized reward
// slot's global growth with emissionsPerSecond*elapsed/liquidity. It must
// be the first step of both the liquidity-modification and swap pipelines
// (before either reads a position's or a tick's growth checkpoints), and is
// also exposed standalone as the update_fees_and_rewards operation.
func (p *Pool) RollRewardsAndFeeGrowth(now int64) error {
	if now < p.RewardLastUpdatedTimestamp {
		return kerrors.ErrInvalidTimestamp
	}
	elapsed := now - p.RewardLastUpdatedTimestamp
	p.RewardLastUpdatedTimestamp = now
	if elapsed == 0 || p.Liquidity.IsZero() {
		return nil
	}

	for i := range p.RewardInfos {
		r := &p.RewardInfos[i]
		if !r.Initialized() || r.EmissionsPerSecondX64.IsZero() {
			continue
		}
		emitted, err := fixedpoint.MulU128(r.EmissionsPerSecondX64, uint128.From64(uint64(elapsed)))
		if err != nil {
			return err
		}
		growthDelta, err := fixedpoint.DivFloor(emitted, p.Liquidity)
		if err != nil {
			return err
		}
		r.GrowthGlobalX64 = r.GrowthGlobalX64.Add(growthDelta)
	}
	return nil
}
