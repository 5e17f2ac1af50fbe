package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/monocle-wallet-service/internal/config"
	"github.com/monocle-wallet-service/internal/domain/shared"
	"github.com/monocle-wallet-service/internal/domain/transaction"
	"github.com/monocle-wallet-service/internal/domain/wallet"
	"github.com/monocle-wallet-service/internal/paystack"
	"github.com/monocle-wallet-service/internal/platform/messaging/producers"
)

// CreditServiceImpl orchestrates the payment-confirmation pipeline:
// validate -> verify -> derive settled amount -> idempotency check ->
// credit wallet -> write audit record. Every step either proceeds or
// terminates with a final outcome; nothing is retried here.
type CreditServiceImpl struct {
	verifier  paystack.Verifier
	wallets   wallet.Repository
	records   transaction.Repository
	publisher producers.MessagePublisher
	exchange  config.ExchangeConfig
	logger    *slog.Logger
}

// NewCreditService creates a new credit workflow service
func NewCreditService(
	logger *slog.Logger,
	verifier paystack.Verifier,
	wallets wallet.Repository,
	records transaction.Repository,
	publisher producers.MessagePublisher,
	exchange config.ExchangeConfig,
) CreditService {
	return &CreditServiceImpl{
		verifier:  verifier,
		wallets:   wallets,
		records:   records,
		publisher: publisher,
		exchange:  exchange,
		logger:    logger,
	}
}

// Process handles the credit workflow for a single payment claim.
func (s *CreditServiceImpl) Process(ctx context.Context, claim *shared.PaymentClaim) *CreditOutcome {
	logger := s.logger
	if claim.CorrelationID != "" {
		logger = s.logger.With("correlation_id", claim.CorrelationID)
	}

	// 1. Input validation: no external calls for a malformed claim
	if err := claim.Validate(); err != nil {
		logger.Warn("Rejected invalid payment claim", "reference", claim.Reference, "error", err)
		return &CreditOutcome{
			Code:    OutcomeInvalidInput,
			Message: "Missing required fields",
		}
	}

	logger.Info("Processing payment claim", "reference", claim.Reference, "user_id", claim.UserID)

	// 2. Verification with the payment processor
	result, err := s.verifier.Verify(ctx, claim.Reference)
	if err != nil {
		if errors.Is(err, paystack.ErrMissingSecretKey) {
			logger.Error("Payment verification is not configured", "error", err)
			return &CreditOutcome{
				Code:    OutcomeConfigurationError,
				Message: "Payment verification is not configured",
			}
		}
		logger.Error("Payment processor unreachable", "reference", claim.Reference, "error", err)
		return &CreditOutcome{
			Code:    OutcomeTransportError,
			Message: "Payment processor unavailable",
		}
	}
	if !result.Success {
		logger.Warn("Payment not confirmed by processor",
			"reference", claim.Reference,
			"processor_status", result.Status,
		)
		return &CreditOutcome{
			Code:    OutcomeVerificationFailed,
			Message: "Payment verification failed",
			Details: result.Raw,
		}
	}

	// 3. Settled-amount derivation: the processor's amount is authoritative,
	// the claimed amount is informational only.
	if claim.Amount*float64(s.exchange.MinorUnitScale) != float64(result.Amount) {
		logger.Warn("Claimed amount differs from settled amount",
			"reference", claim.Reference,
			"claimed", claim.Amount,
			"settled_minor", result.Amount,
		)
	}
	settledBase := float64(result.Amount) / float64(s.exchange.MinorUnitScale)

	// 4. Idempotency check: only a completed record counts as processed
	existing, err := s.records.GetCompletedByReference(ctx, claim.Reference)
	if err != nil && !errors.Is(err, transaction.ErrRecordNotFound{}) {
		logger.Error("Failed to check for existing transaction record", "reference", claim.Reference, "error", err)
		return &CreditOutcome{
			Code:    OutcomeStoreUnavailable,
			Message: "Transaction store unavailable",
		}
	}
	if existing != nil {
		logger.Info("Payment reference already processed", "reference", claim.Reference)
		return &CreditOutcome{
			Code:    OutcomeAlreadyProcessed,
			Message: "Transaction already processed",
		}
	}

	// 5. Credited-units computation. Integer arithmetic: minor * rate / scale
	// equals floor(base * rate) for non-negative inputs.
	sparksToCredit := result.Amount * s.exchange.SparksPerUnit / s.exchange.MinorUnitScale

	// 6. Atomic credit attempt. The reference reservation inside the wallet
	// store is the authoritative duplicate guard under concurrency.
	if err := s.wallets.Credit(ctx, claim.UserID, sparksToCredit, claim.Reference); err != nil {
		if errors.Is(err, wallet.ErrDuplicateReference{}) {
			logger.Info("Payment reference lost the credit race", "reference", claim.Reference)
			return &CreditOutcome{
				Code:    OutcomeAlreadyProcessed,
				Message: "Transaction already processed",
			}
		}

		logger.Error("Failed to credit wallet",
			"reference", claim.Reference,
			"user_id", claim.UserID,
			"sparks", sparksToCredit,
			"error", err,
		)

		// Best-effort failure audit; a second failure here is logged but must
		// never mask the CreditFailed outcome.
		failedRecord := s.buildRecord(claim, result, sparksToCredit, settledBase, shared.TransactionStatusFailed)
		if recordErr := s.records.Create(ctx, failedRecord); recordErr != nil {
			logger.Error("Failed to write failed transaction record", "reference", claim.Reference, "error", recordErr)
		}

		return &CreditOutcome{
			Code:    OutcomeCreditFailed,
			Message: "Failed to credit wallet",
		}
	}

	// 7. Record the successful credit. The balance mutation is already
	// committed; a record-write failure is logged and the success stands.
	record := s.buildRecord(claim, result, sparksToCredit, settledBase, shared.TransactionStatusCompleted)
	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, transaction.ErrDuplicateReference{}) {
			logger.Warn("Completed record already exists for reference", "reference", claim.Reference)
		} else {
			logger.Error("Failed to write completed transaction record", "reference", claim.Reference, "error", err)
		}
	}

	s.publishCreditEvent(ctx, logger, record, result.Amount)

	logger.Info("Wallet credited",
		"reference", claim.Reference,
		"user_id", claim.UserID,
		"sparks", sparksToCredit,
	)

	return &CreditOutcome{
		Code:           OutcomeSuccess,
		Message:        fmt.Sprintf("Successfully credited %d Sparks", sparksToCredit),
		SparksCredited: sparksToCredit,
	}
}

// buildRecord assembles the audit record for a credit attempt
func (s *CreditServiceImpl) buildRecord(
	claim *shared.PaymentClaim,
	result *paystack.VerificationResult,
	sparks int64,
	settledBase float64,
	status shared.TransactionStatus,
) *transaction.Record {
	currency := claim.Currency
	if currency == "" {
		currency = shared.DefaultCurrency
	}

	settledCurrency := result.Currency
	if settledCurrency == "" {
		settledCurrency = "NGN"
	}

	record := &transaction.Record{
		ID:          uuid.New(),
		UserID:      claim.UserID,
		Type:        shared.TransactionTypeDeposit,
		Amount:      sparks,
		Currency:    currency,
		Status:      status,
		Reference:   claim.Reference,
		Description: fmt.Sprintf("Paystack deposit - %s %s", strconv.FormatFloat(settledBase, 'f', -1, 64), settledCurrency),
		CreatedAt:   time.Now(),
	}

	if status == shared.TransactionStatusCompleted {
		record.Metadata = map[string]interface{}{
			"paystack_reference": claim.Reference,
			"amount_settled":     settledBase,
			"processor_status":   result.Status,
		}
	}

	return record
}

// publishCreditEvent emits a wallet-credited event; failures are logged only
func (s *CreditServiceImpl) publishCreditEvent(ctx context.Context, logger *slog.Logger, record *transaction.Record, settledMinor int64) {
	if s.publisher == nil {
		return
	}

	event := &shared.WalletCreditedEvent{
		RecordID:      record.ID.String(),
		UserID:        record.UserID,
		Reference:     record.Reference,
		Sparks:        record.Amount,
		SettledAmount: settledMinor,
		Timestamp:     record.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, record.Reference, event); err != nil {
		logger.Error("Failed to publish credit event", "reference", record.Reference, "error", err)
	}
}
