package service

import (
	"context"
	"encoding/json"

	"github.com/monocle-wallet-service/internal/domain/shared"
)

// CreditService defines the interface for processing payment claims
type CreditService interface {
	// Process runs the credit workflow for a claim and always returns a
	// terminal outcome; it never retries and never panics across the boundary.
	Process(ctx context.Context, claim *shared.PaymentClaim) *CreditOutcome
}

// OutcomeCode classifies the terminal result of a credit workflow run
type OutcomeCode string

const (
	OutcomeSuccess            OutcomeCode = "SUCCESS"
	OutcomeInvalidInput       OutcomeCode = "INVALID_INPUT"
	OutcomeVerificationFailed OutcomeCode = "VERIFICATION_FAILED"
	OutcomeAlreadyProcessed   OutcomeCode = "ALREADY_PROCESSED"
	OutcomeCreditFailed       OutcomeCode = "CREDIT_FAILED"
	OutcomeConfigurationError OutcomeCode = "CONFIGURATION_ERROR"
	OutcomeTransportError     OutcomeCode = "TRANSPORT_ERROR"
	OutcomeStoreUnavailable   OutcomeCode = "STORE_UNAVAILABLE"
)

// CreditOutcome is the structured result of one credit workflow invocation
type CreditOutcome struct {
	Code           OutcomeCode
	Message        string
	SparksCredited int64
	Details        json.RawMessage // Processor diagnostic payload, when available
}

// UserFacing reports whether the outcome maps to a 400-class response
// (caller mistake or duplicate) rather than a 500-class internal failure.
func (o *CreditOutcome) UserFacing() bool {
	switch o.Code {
	case OutcomeInvalidInput, OutcomeVerificationFailed, OutcomeAlreadyProcessed:
		return true
	}
	return false
}
