package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-wallet-service/internal/domain/transaction"
)

// TransactionHandler handles transaction record read operations
type TransactionHandler struct {
	records transaction.Repository
	logger  *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, records transaction.Repository) *TransactionHandler {
	return &TransactionHandler{
		records: records,
		logger:  logger,
	}
}

// GetByReference retrieves the most recent record for a payment reference,
// returns 404 if not found
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		RespondBadRequest(c, "Invalid payment reference")
		return
	}

	record, err := h.records.GetByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, transaction.ErrRecordNotFound{}) {
			RespondNotFound(c, "Transaction not found")
			return
		}
		h.logger.Error("Failed to get transaction", "reference", reference, "error", err)
		RespondInternalError(c, "")
		return
	}

	RespondData(c, http.StatusOK, mapRecordToResponse(record))
}

// GetByUserID retrieves paginated transaction history for a user
func (h *TransactionHandler) GetByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Warn("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	offset := (pagination.Page - 1) * pagination.PerPage
	records, err := h.records.GetByUserID(c.Request.Context(), userID, pagination.PerPage, offset)
	if err != nil {
		h.logger.Error("Failed to get transactions", "user_id", userID, "error", err)
		RespondInternalError(c, "")
		return
	}

	total, err := h.records.CountByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to count transactions", "user_id", userID, "error", err)
		RespondInternalError(c, "")
		return
	}

	var transactions []TransactionResponse
	for _, record := range records {
		transactions = append(transactions, mapRecordToResponse(record))
	}

	RespondPaginatedData(c, http.StatusOK, transactions, pagination.Page, pagination.PerPage, int(total))
}

// mapRecordToResponse maps a transaction record to a response DTO
func mapRecordToResponse(record *transaction.Record) TransactionResponse {
	return TransactionResponse{
		ID:          record.ID.String(),
		UserID:      record.UserID,
		Type:        string(record.Type),
		Amount:      record.Amount,
		Currency:    record.Currency,
		Status:      string(record.Status),
		Reference:   record.Reference,
		Description: record.Description,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
}
