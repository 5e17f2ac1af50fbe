package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-wallet-service/internal/domain/wallet"
)

// WalletHandler handles wallet read operations
type WalletHandler struct {
	wallets wallet.Repository
	logger  *slog.Logger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(logger *slog.Logger, wallets wallet.Repository) *WalletHandler {
	return &WalletHandler{
		wallets: wallets,
		logger:  logger,
	}
}

// GetByUserID retrieves a wallet's balance, returns 404 if no wallet exists yet
func (h *WalletHandler) GetByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	w, err := h.wallets.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound{}) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		h.logger.Error("Failed to get wallet", "user_id", userID, "error", err)
		RespondInternalError(c, "")
		return
	}

	RespondData(c, 200, WalletResponse{
		UserID:    w.UserID,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	})
}
