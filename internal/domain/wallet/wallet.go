package wallet

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrInvalidCreditAmount = errors.New("credit amount must be positive")
	ErrEmptyUserID         = errors.New("user id cannot be empty")
)

// Wallet holds a user's spark balance
type Wallet struct {
	UserID    string    `json:"user_id"`
	Balance   int64     `json:"balance"` // Sparks
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWallet creates an empty wallet for the given user
func NewWallet(userID string) (*Wallet, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	now := time.Now()
	return &Wallet{
		UserID:    userID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
