// Package postgres provides the PostgreSQL implementation of the wallet
// repository. Balance mutations and the payment reference reservation commit
// in a single database transaction so a reference can never credit a wallet
// more than once, even under concurrent duplicate submissions.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/monocle-wallet-service/internal/domain/wallet"
	"github.com/monocle-wallet-service/internal/platform/persistence"
)

// WalletRepository implements the wallet.Repository interface for PostgreSQL
type WalletRepository struct {
	db     persistence.TxQuerier // *pgxpool.Pool in production, pgxmock in tests
	logger *slog.Logger
}

// NewWalletRepository creates a new PostgreSQL wallet repository
func NewWalletRepository(logger *slog.Logger, db *persistence.PostgresDB) wallet.Repository {
	return &WalletRepository{
		db:     db.Pool(),
		logger: logger,
	}
}

// Credit reserves the payment reference and applies an atomic upsert-increment
// to the wallet balance inside one transaction. A reference that was already
// reserved loses the insert and the whole transaction rolls back with
// ErrDuplicateReference; the losing invocation therefore observes "already
// credited" and no balance change.
func (r *WalletRepository) Credit(ctx context.Context, userID string, amount int64, reference string) error {
	if amount <= 0 {
		return wallet.ErrInvalidCreditAmount
	}
	if userID == "" {
		return wallet.ErrEmptyUserID
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin credit transaction", "user_id", userID, "error", err)
		return fmt.Errorf("failed to begin credit transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // No-op after commit
	}()

	reserveQuery := `
		INSERT INTO payment_references (reference, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (reference) DO NOTHING
	`

	tag, err := tx.Exec(ctx, reserveQuery, reference, userID)
	if err != nil {
		r.logger.Error("Failed to reserve payment reference", "reference", reference, "error", err)
		return fmt.Errorf("failed to reserve payment reference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wallet.ErrDuplicateReference{Reference: reference}
	}

	creditQuery := `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
	`

	if _, err = tx.Exec(ctx, creditQuery, userID, amount); err != nil {
		r.logger.Error("Failed to credit wallet", "user_id", userID, "amount", amount, "error", err)
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit credit transaction", "user_id", userID, "reference", reference, "error", err)
		return fmt.Errorf("failed to commit credit transaction: %w", err)
	}

	return nil
}

// GetByUserID retrieves a wallet by its owner's user ID
func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*wallet.Wallet, error) {
	query := `
		SELECT user_id, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var w wallet.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&w.UserID,
		&w.Balance,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrWalletNotFound{UserID: userID}
		}
		r.logger.Error("Failed to get wallet", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &w, nil
}
