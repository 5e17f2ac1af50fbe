package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/monocle-wallet-service/internal/domain/shared"
)

// Record is an auditable outcome of a credit attempt. A record is written
// exactly once per attempt with a terminal status and is never mutated.
type Record struct {
	ID          uuid.UUID                `json:"id" bson:"_id"`
	UserID      string                   `json:"user_id" bson:"user_id"`
	Type        shared.TransactionType   `json:"type" bson:"type"`
	Amount      int64                    `json:"amount" bson:"amount"` // Sparks
	Currency    string                   `json:"currency" bson:"currency"`
	Status      shared.TransactionStatus `json:"status" bson:"status"`
	Reference   string                   `json:"reference" bson:"reference"`
	Description string                   `json:"description" bson:"description"`
	Metadata    map[string]interface{}   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time                `json:"created_at" bson:"created_at"`
}
