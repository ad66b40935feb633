package position

import "github.com/johnayoung/go-clmm-kernel/pkg/kerrors"

// ReceiptAccount is the minimal shape of the token account holding a
// position's receipt mint that ownership validation needs: its balance and,
// if any, its delegate and the amount that delegate is approved for.
type ReceiptAccount struct {
	Balance          uint64
	Delegate         *[32]byte
	DelegatedAmount  uint64
}

// ValidateReceiptOwnership enforces that a position's receipt is held as a
// non-fungible balance of exactly 1, and that any delegate approved against
// it covers the full balance — a partial-balance delegate is rejected the
// same way the original program rejects it, since a delegate approved for
// less than the full balance could never actually move the token.
func ValidateReceiptOwnership(account ReceiptAccount) error {
	if account.Balance != 1 {
		return kerrors.ErrInvalidPositionTokenAmount
	}
	if account.Delegate != nil && account.DelegatedAmount != account.Balance {
		return kerrors.ErrInvalidDelegate
	}
	return nil
}
