package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-wallet-service/internal/api/handler"
	"github.com/monocle-wallet-service/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	appEnv string,
	appVersion string,
	paymentHandler *handler.PaymentHandler,
	walletHandler *handler.WalletHandler,
	transactionHandler *handler.TransactionHandler,
) {
	startTime := time.Now()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Payment confirmation
		payments := v1.Group("/payments")
		{
			payments.POST("/verify", paymentHandler.Verify)
		}

		// Wallet operations
		wallets := v1.Group("/wallets")
		{
			wallets.GET("/:user_id", walletHandler.GetByUserID)
			wallets.GET("/:user_id/transactions", transactionHandler.GetByUserID)
		}

		// Transaction lookup
		transactions := v1.Group("/transactions")
		{
			transactions.GET("/:reference", transactionHandler.GetByReference)
		}

		// API status endpoint
		v1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "API is operational",
				"data": gin.H{
					"uptime":      time.Since(startTime).String(),
					"environment": appEnv,
				},
			})
		})
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appVersion,
		})
	})
}
