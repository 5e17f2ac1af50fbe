package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-wallet-service/internal/api/middleware"
	"github.com/monocle-wallet-service/internal/domain/shared"
	"github.com/monocle-wallet-service/internal/service"
)

// PaymentHandler handles payment confirmation requests
type PaymentHandler struct {
	creditService service.CreditService
	logger        *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(logger *slog.Logger, creditService service.CreditService) *PaymentHandler {
	return &PaymentHandler{
		creditService: creditService,
		logger:        logger,
	}
}

// Verify confirms a payment reference with the processor and credits the
// user's wallet, at most once per reference
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid payment verification request", "error", err)
		RespondBadRequest(c, "Missing required fields")
		return
	}

	claim := &shared.PaymentClaim{
		Reference:     req.Reference,
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CorrelationID: middleware.GetCorrelationID(c),
	}

	outcome := h.creditService.Process(c.Request.Context(), claim)

	switch outcome.Code {
	case service.OutcomeSuccess:
		RespondCredited(c, outcome.Message, outcome.SparksCredited)
	case service.OutcomeVerificationFailed:
		RespondErrorWithDetails(c, http.StatusBadRequest, outcome.Message, outcome.Details)
	case service.OutcomeInvalidInput, service.OutcomeAlreadyProcessed:
		RespondBadRequest(c, outcome.Message)
	default:
		// Configuration, transport, store and credit failures surface without
		// internal detail beyond the outcome message
		RespondInternalError(c, outcome.Message)
	}
}
