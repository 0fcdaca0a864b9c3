package vault

import (
	"errors"
	"fmt"
)

// common errors
var (
	ErrNotAuthorized         = errors.New("caller is not the vault owner")
	ErrZeroAmount            = errors.New("amount must be positive")
	ErrInsufficientShares    = errors.New("insufficient shares")
	ErrInsufficientLiquidity = errors.New("insufficient vault liquidity")
	ErrTransferFailed        = errors.New("custody transfer failed")

	ErrAmountOverflow  = errors.New("amount overflows balance accounting")
	ErrMetadataTooLong = errors.New("metadata field exceeds length limit")

	ErrSnapshotNotFound = errors.New("no ledger snapshot stored")
	ErrLedgerCorrupt    = errors.New("ledger accounting invariants violated")
)

func wrapTransferError(err error) error {
	return fmt.Errorf("%w: %v", ErrTransferFailed, err)
}

// IsTransferFailed return true if err comes from the custody transfer step.
func IsTransferFailed(err error) bool {
	return errors.Is(err, ErrTransferFailed)
}

// IsBalanceError return true for failures a caller can fix by lowering
// the requested amount or funding the account.
func IsBalanceError(err error) bool {
	switch {
	case errors.Is(err, ErrZeroAmount):
	case errors.Is(err, ErrInsufficientShares):
	case errors.Is(err, ErrInsufficientLiquidity):
	default:
		return false
	}
	return true
}
