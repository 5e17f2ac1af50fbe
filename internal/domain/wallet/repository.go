package wallet

import (
	"context"
)

// Repository defines wallet persistence operations
type Repository interface {
	// Credit atomically increases the user's balance by amount, creating the
	// wallet if it does not exist. The reference is reserved in the same
	// database transaction; a duplicate reference rolls everything back and
	// returns ErrDuplicateReference, which is the authoritative at-most-once
	// guarantee for a payment reference.
	Credit(ctx context.Context, userID string, amount int64, reference string) error

	// GetByUserID retrieves a wallet, returning ErrWalletNotFound if absent
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
}

// ErrWalletNotFound indicates missing wallet
type ErrWalletNotFound struct {
	UserID string
}

func (e ErrWalletNotFound) Error() string {
	return "wallet not found for user: " + e.UserID
}

// Is implements the errors.Is interface for ErrWalletNotFound
func (e ErrWalletNotFound) Is(target error) bool {
	t, ok := target.(ErrWalletNotFound)
	if !ok {
		return false
	}
	// An empty target UserID matches any ErrWalletNotFound
	if t.UserID == "" {
		return true
	}
	return e.UserID == t.UserID
}

// ErrDuplicateReference indicates the payment reference was already credited
type ErrDuplicateReference struct {
	Reference string
}

func (e ErrDuplicateReference) Error() string {
	return "payment reference already credited: " + e.Reference
}

// Is implements the errors.Is interface for ErrDuplicateReference
func (e ErrDuplicateReference) Is(target error) bool {
	t, ok := target.(ErrDuplicateReference)
	if !ok {
		return false
	}
	if t.Reference == "" {
		return true
	}
	return e.Reference == t.Reference
}
