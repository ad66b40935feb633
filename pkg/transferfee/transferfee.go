// Package transferfee adapts the SPL Token-2022 transfer-fee extension: the
// fee a mint carries is taken out of every transfer before it reaches the
// recipient, so any instruction that sizes an amount against a vault balance
// must convert between the amount a payer authorizes and the amount a vault
// actually receives. The Mint identity itself wraps the same
// uniswap-sdk-core entity and go-ethereum address type an ERC20-style token
// pair would use, rather than inventing a parallel identity type.
package transferfee

import (
	"lukechampine.com/uint128"

	core "github.com/daoleno/uniswap-sdk-core/entities"
	"github.com/ethereum/go-ethereum/common"

	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// maxBasisPoints is SPL Token-2022's ONE_IN_BASIS_POINTS: a transfer-fee
// basis-point rate of this value means the entire transfer is taken as fee.
const maxBasisPoints = 10000

// Mint is the identity a transfer-fee lookup dispatches on: the underlying
// token entity plus its on-chain address, the same shape a concentrated-
// liquidity pool's token pair takes.
type Mint struct {
	Token   *core.Token
	Address common.Address
}

// NewMint wraps an address and decimal count into a Mint, constructing its
// token pair via core.NewToken.
func NewMint(address common.Address, decimals uint) Mint {
	return Mint{
		Token:   core.NewToken(1, address, decimals, "", ""),
		Address: address,
	}
}

// Config is one epoch's transfer-fee parameters for a mint carrying the
// SPL Token-2022 transfer-fee extension. A nil *Config models a mint with no
// such extension: every conversion below is then the identity map.
type Config struct {
	BasisPoints uint16
	MaximumFee  uint64
}

// FeeExcluded converts an amount a payer authorizes (fee-included, the
// amount leaving their account) into the amount a vault actually receives
// (fee-excluded) plus the fee taken. With cfg == nil this is the identity.
func FeeExcluded(cfg *Config, included uint64) (excluded uint64, fee uint64, err error) {
	if cfg == nil || cfg.BasisPoints == 0 {
		return included, 0, nil
	}
	fee, err = calculateFee(cfg, included)
	if err != nil {
		return 0, 0, err
	}
	if fee > included {
		return 0, 0, kerrors.Wrap(kerrors.ErrTransferFeeCalculation, "fee %d exceeds amount %d", fee, included)
	}
	return included - fee, fee, nil
}

// FeeIncluded is the inverse of FeeExcluded: given the amount a vault must
// receive (fee-excluded), it returns the smallest amount a payer must
// authorize (fee-included) such that included - fee(included) >= excluded,
// plus the fee that authorization carries. With cfg == nil this is the
// identity.
func FeeIncluded(cfg *Config, excluded uint64) (included uint64, fee uint64, err error) {
	if cfg == nil || cfg.BasisPoints == 0 {
		return excluded, 0, nil
	}
	if excluded == 0 {
		return 0, 0, nil
	}

	if cfg.BasisPoints >= maxBasisPoints {
		// The forward map saturates fee at MaximumFee once included exceeds
		// it, so the inverse is a direct offset: this is the "maximum_fee as
		// the fee" edge case the 100%-bps corner calls for.
		included, err = addU64(excluded, cfg.MaximumFee)
		if err != nil {
			return 0, 0, err
		}
		return included, cfg.MaximumFee, nil
	}

	candidateWide, err := fixedpoint.MulDivCeil(uint128.From64(excluded), uint128.From64(maxBasisPoints), uint128.From64(uint64(maxBasisPoints-cfg.BasisPoints)))
	if err != nil {
		return 0, 0, err
	}
	if candidateWide.Hi != 0 {
		return 0, 0, kerrors.ErrTransferFeeCalculation
	}
	candidate := candidateWide.Lo
	// The closed-form candidate can land one unit short because of rounding
	// in both the forward and inverse division; walk it up until it truly
	// nets the caller the excluded amount they asked for.
	for i := 0; i < 2; i++ {
		feeAtCandidate, err := calculateFee(cfg, candidate)
		if err != nil {
			return 0, 0, err
		}
		if candidate < feeAtCandidate {
			return 0, 0, kerrors.Wrap(kerrors.ErrTransferFeeCalculation, "fee exceeds candidate amount")
		}
		if candidate-feeAtCandidate >= excluded {
			return candidate, feeAtCandidate, nil
		}
		candidate++
	}
	return 0, 0, kerrors.Wrap(kerrors.ErrTransferFeeCalculation, "inverse fee search did not converge for excluded=%d", excluded)
}

func calculateFee(cfg *Config, amount uint64) (uint64, error) {
	rawWide, err := fixedpoint.MulDivCeil(uint128.From64(amount), uint128.From64(uint64(cfg.BasisPoints)), uint128.From64(maxBasisPoints))
	if err != nil {
		return 0, err
	}
	if rawWide.Hi != 0 {
		return 0, kerrors.ErrTransferFeeCalculation
	}
	if rawWide.Lo > cfg.MaximumFee {
		return cfg.MaximumFee, nil
	}
	return rawWide.Lo, nil
}

func addU64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, kerrors.ErrTransferFeeCalculation
	}
	return sum, nil
}
