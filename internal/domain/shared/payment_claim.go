package shared

import (
	"errors"
	"time"
)

var (
	ErrMissingReference = errors.New("payment reference is required")
	ErrMissingUserID    = errors.New("user id is required")
	ErrInvalidAmount    = errors.New("amount must be positive")
)

// PaymentClaim is an inbound request to confirm a payment and credit the
// user's wallet. The claimed amount is informational only; the processor's
// settled amount is authoritative for crediting.
type PaymentClaim struct {
	Reference     string  `json:"reference"`
	UserID        string  `json:"user_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency,omitempty"`
	CorrelationID string  `json:"correlation_id,omitempty"`
}

// Validate checks that all required claim fields are present.
// No external calls may be made for a claim that fails validation.
func (c *PaymentClaim) Validate() error {
	if c.Reference == "" {
		return ErrMissingReference
	}
	if c.UserID == "" {
		return ErrMissingUserID
	}
	if c.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// WalletCreditedEvent is published after a wallet credit commits.
// Delivery is best effort; the credit outcome never depends on it.
type WalletCreditedEvent struct {
	RecordID      string    `json:"record_id"`
	UserID        string    `json:"user_id"`
	Reference     string    `json:"reference"`
	Sparks        int64     `json:"sparks"`
	SettledAmount int64     `json:"settled_amount"` // Processor minor units
	Timestamp     time.Time `json:"timestamp"`
}
