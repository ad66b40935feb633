// Package kerrors is the stable error catalogue for the settlement kernel.
// Every failure mode named in the operation contracts is represented here as
// a sentinel value carrying a numeric code, the same way the reference
// program enumerates one error variant per failure condition. Callers use
// errors.Is against the sentinel; wrapping with fmt.Errorf("%w: ...") is
// expected for added context.
package kerrors

import "fmt"

// Code is a stable numeric identifier for a kernel error condition.
// Codes are grouped by category in blocks of 100 so new errors can be
// inserted within a category without renumbering the others.
type Code uint32

const (
	// Input validation: 1000-1099
	CodeInvalidTokenMintOrder Code = 1000 + iota
	CodeSqrtPriceOutOfBounds
	CodeInvalidTickIndex
	CodeInvalidStartTickIndex
	CodeUnsupportedTickSpacing
	CodeFeeRateExceeded
	CodeProtocolFeeRateExceeded
	CodeInvalidRewardIndex
	CodeInvalidSqrtPriceLimitDirection
	CodeInvalidIntermediaryMint
	CodeDuplicateTwoHopPool
	CodeInvalidTradeBatchIndex
)

const (
	// Authorisation: 1100-1199
	CodeInvalidDelegate Code = 1100 + iota
	CodeInvalidPositionTokenAmount
	CodeUnsupportedTokenMint
	CodeMissingExtraAccountsForTransferHook
	CodeInvalidRemainingAccountsSlice
	CodeInsufficientRemainingAccounts
	CodeDuplicateAccountTypes
)

const (
	// State preconditions: 1200-1299
	CodeNonEmptyPositionClose Code = 1200 + iota
	CodePositionAlreadyOpened
	CodePositionAlreadyClosed
	CodeNonDeletablePositionTradeBatch
	CodeRewardNotInitialized
	CodeTickArrayAlreadyExists
	CodeTickNotFound
	CodeInvalidTickArraySequence
	CodePositionNotFound
)

const (
	// Numeric: 1300-1399
	CodeDivisionByZero Code = 1300 + iota
	CodeBigIntCast
	CodeNumberDowncast
	CodeMultiplicationOverflow
	CodeMultiplicationShiftRightOverflow
	CodeMulDivOverflow
	CodeMulDivInvalidInput
	CodeAmountCalculationOverflow
	CodeAmountRemainingOverflow
	CodeLiquidityOverflow
	CodeLiquidityUnderflow
	CodeTickLiquidityNet
	CodeExcessiveLiquidity
	CodeZeroLiquidity
	CodeTimestampConversion
	CodeInvalidTimestamp
	CodeTransferFeeCalculation
)

const (
	// Economic outcome: 1400-1499
	CodeTokenLimitExceeded Code = 1400 + iota
	CodeTokenAmountBelowMinimum
	CodeAmountOutBelowMinimum
	CodeAmountInAboveMaximum
	CodeNoTradableAmount
	CodeAmountMismatch
	CodeInsufficientRewardVaultAmount
)

// KernelError is a stable, numerically-coded error. It is returned by value
// as an error interface so callers can compare with errors.Is against the
// package-level sentinels below.
type KernelError struct {
	code Code
	msg  string
}

func (e *KernelError) Error() string { return e.msg }

// Code returns the stable numeric code carried by this error.
func (e *KernelError) Code() Code { return e.code }

// Is makes errors.Is(err, sentinel) match on code rather than identity,
// so a wrapped or re-constructed KernelError with the same code still
// compares equal to the sentinel.
func (e *KernelError) Is(target error) bool {
	other, ok := target.(*KernelError)
	if !ok {
		return false
	}
	return other.code == e.code
}

func newError(code Code, msg string) *KernelError {
	return &KernelError{code: code, msg: msg}
}

// Sentinel errors, one per condition enumerated in the operation contracts.
var (
	ErrInvalidTokenMintOrder           = newError(CodeInvalidTokenMintOrder, "mint_a must sort before mint_b")
	ErrSqrtPriceOutOfBounds            = newError(CodeSqrtPriceOutOfBounds, "sqrt price outside [MIN_SQRT_PRICE_X64, MAX_SQRT_PRICE_X64]")
	ErrInvalidTickIndex                = newError(CodeInvalidTickIndex, "tick index invalid for tick spacing or out of range")
	ErrInvalidStartTickIndex           = newError(CodeInvalidStartTickIndex, "tick array start index misaligned or out of range")
	ErrUnsupportedTickSpacing          = newError(CodeUnsupportedTickSpacing, "tick spacing has no registered fee tier")
	ErrFeeRateExceeded                 = newError(CodeFeeRateExceeded, "fee rate exceeds MAX_FEE_RATE")
	ErrProtocolFeeRateExceeded         = newError(CodeProtocolFeeRateExceeded, "protocol fee rate exceeds MAX_PROTOCOL_FEE_RATE")
	ErrInvalidRewardIndex              = newError(CodeInvalidRewardIndex, "reward index out of range or not next-in-order")
	ErrInvalidSqrtPriceLimitDirection  = newError(CodeInvalidSqrtPriceLimitDirection, "sqrt price limit is not between current price and range bound in the trade direction")
	ErrInvalidIntermediaryMint         = newError(CodeInvalidIntermediaryMint, "two-hop swap intermediary mint mismatch")
	ErrDuplicateTwoHopPool             = newError(CodeDuplicateTwoHopPool, "two-hop swap pools must be distinct")
	ErrInvalidTradeBatchIndex          = newError(CodeInvalidTradeBatchIndex, "trade batch index out of range")
	ErrInvalidDelegate                 = newError(CodeInvalidDelegate, "receipt delegate must cover the full balance of 1")
	ErrInvalidPositionTokenAmount      = newError(CodeInvalidPositionTokenAmount, "position receipt balance must be exactly 1")
	ErrUnsupportedTokenMint            = newError(CodeUnsupportedTokenMint, "mint carries an unsupported extension")
	ErrMissingExtraAccountsForHook     = newError(CodeMissingExtraAccountsForTransferHook, "transfer hook requires extra accounts that were not supplied")
	ErrInvalidRemainingAccountsSlice   = newError(CodeInvalidRemainingAccountsSlice, "remaining accounts slice malformed")
	ErrInsufficientRemainingAccounts   = newError(CodeInsufficientRemainingAccounts, "not enough remaining accounts supplied")
	ErrDuplicateAccountTypes           = newError(CodeDuplicateAccountTypes, "remaining accounts contain duplicate account types")
	ErrNonEmptyPositionClose           = newError(CodeNonEmptyPositionClose, "position must have zero liquidity and zero owed amounts to close")
	ErrPositionAlreadyOpened           = newError(CodePositionAlreadyOpened, "position already opened")
	ErrPositionAlreadyClosed           = newError(CodePositionAlreadyClosed, "position already closed")
	ErrNonDeletablePositionTradeBatch  = newError(CodeNonDeletablePositionTradeBatch, "trade batch still has open child positions")
	ErrRewardNotInitialized            = newError(CodeRewardNotInitialized, "reward slot not initialized")
	ErrTickArrayAlreadyExists          = newError(CodeTickArrayAlreadyExists, "tick array already initialized at this start index")
	ErrTickNotFound                    = newError(CodeTickNotFound, "tick index not covered by any array in the sequence")
	ErrPositionNotFound                = newError(CodePositionNotFound, "position not tracked by this handle")
	ErrInvalidTickArraySequence        = newError(CodeInvalidTickArraySequence, "tick array sequence does not cover the required range")
	ErrDivisionByZero                  = newError(CodeDivisionByZero, "division by zero")
	ErrBigIntCast                      = newError(CodeBigIntCast, "value does not fit in the target big integer width")
	ErrNumberDowncast                  = newError(CodeNumberDowncast, "value does not fit in the target integer width")
	ErrMultiplicationOverflow          = newError(CodeMultiplicationOverflow, "multiplication overflowed")
	ErrMultiplicationShiftRightOverflow = newError(CodeMultiplicationShiftRightOverflow, "mul-shift-right result truncated on overflow")
	ErrMulDivOverflow                  = newError(CodeMulDivOverflow, "mul-div result overflowed target width")
	ErrMulDivInvalidInput              = newError(CodeMulDivInvalidInput, "mul-div received an invalid input")
	ErrAmountCalculationOverflow       = newError(CodeAmountCalculationOverflow, "amount calculation overflowed u64")
	ErrAmountRemainingOverflow         = newError(CodeAmountRemainingOverflow, "amount remaining overflowed during fee deduction")
	ErrLiquidityOverflow               = newError(CodeLiquidityOverflow, "liquidity addition overflowed")
	ErrLiquidityUnderflow              = newError(CodeLiquidityUnderflow, "liquidity subtraction underflowed")
	ErrTickLiquidityNet                = newError(CodeTickLiquidityNet, "tick liquidity_net violates |net| <= gross")
	ErrExcessiveLiquidity              = newError(CodeExcessiveLiquidity, "liquidity exceeds MAX_LIQUIDITY_PER_TICK")
	ErrZeroLiquidity                   = newError(CodeZeroLiquidity, "liquidity delta must be non-zero")
	ErrTimestampConversion             = newError(CodeTimestampConversion, "timestamp does not fit in the target width")
	ErrInvalidTimestamp                = newError(CodeInvalidTimestamp, "timestamp precedes the last recorded timestamp")
	ErrTransferFeeCalculation          = newError(CodeTransferFeeCalculation, "transfer fee calculation overflowed or is inconsistent")
	ErrTokenLimitExceeded              = newError(CodeTokenLimitExceeded, "token amount exceeds the caller-supplied limit")
	ErrTokenAmountBelowMinimum         = newError(CodeTokenAmountBelowMinimum, "token amount below the caller-supplied minimum")
	ErrAmountOutBelowMinimum           = newError(CodeAmountOutBelowMinimum, "swap output below other_amount_threshold")
	ErrAmountInAboveMaximum            = newError(CodeAmountInAboveMaximum, "swap input above other_amount_threshold")
	ErrNoTradableAmount                = newError(CodeNoTradableAmount, "amount must be greater than zero")
	ErrAmountMismatch                  = newError(CodeAmountMismatch, "two-hop swap intermediary amounts do not match")
	ErrInsufficientRewardVaultAmount   = newError(CodeInsufficientRewardVaultAmount, "reward vault balance insufficient for one day of emissions")
)

// Wrap attaches context to a sentinel while preserving errors.Is matching.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...)
}
