package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monocle-wallet-service/internal/domain/shared"
	"github.com/monocle-wallet-service/internal/domain/transaction"
)

const (
	// TransactionCollectionName is the name of the transaction records collection
	TransactionCollectionName = "transactions"
)

// TransactionRepository implements the transaction.Repository interface for MongoDB
type TransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewTransactionRepository creates a new MongoDB transaction record repository
func NewTransactionRepository(logger *slog.Logger, db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureIndexes creates the partial unique index guarding the at-most-once
// invariant: only one completed record may exist per reference. Failed records
// are exempt so a failed credit attempt never blocks a later retry.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(TransactionCollectionName)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(shared.TransactionStatusCompleted)}),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		r.logger.Error("Failed to create transaction indexes", "error", err)
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}

	return nil
}

// Create durably persists a transaction record. A second completed record for
// the same reference violates the partial unique index and is surfaced as
// ErrDuplicateReference.
func (r *TransactionRepository) Create(ctx context.Context, record *transaction.Record) error {
	collection := r.db.Collection(TransactionCollectionName)

	_, err := collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return transaction.ErrDuplicateReference{Reference: record.Reference}
		}
		r.logger.Error("Failed to create transaction record",
			"reference", record.Reference,
			"error", err)
		return fmt.Errorf("failed to create transaction record: %w", err)
	}

	return nil
}

// GetCompletedByReference retrieves the completed record for a reference.
// Returns ErrRecordNotFound when no completed record exists, regardless of
// any failed records for the same reference.
func (r *TransactionRepository) GetCompletedByReference(ctx context.Context, reference string) (*transaction.Record, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{
		"reference": reference,
		"status":    string(shared.TransactionStatusCompleted),
	}
	var record transaction.Record
	err := collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transaction.ErrRecordNotFound{Reference: reference}
		}
		r.logger.Error("Failed to get completed transaction record",
			"reference", reference,
			"error", err)
		return nil, fmt.Errorf("failed to get completed transaction record: %w", err)
	}

	return &record, nil
}

// GetByReference retrieves the most recent record for a reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*transaction.Record, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"reference": reference}
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})

	var record transaction.Record
	err := collection.FindOne(ctx, filter, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transaction.ErrRecordNotFound{Reference: reference}
		}
		r.logger.Error("Failed to get transaction record",
			"reference", reference,
			"error", err)
		return nil, fmt.Errorf("failed to get transaction record: %w", err)
	}

	return &record, nil
}

// GetByUserID retrieves paginated transaction records for a user.
// Results are sorted by creation time in descending order (newest first).
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*transaction.Record, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get transaction records",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to get transaction records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*transaction.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode transaction records",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to decode transaction records: %w", err)
	}

	return records, nil
}

// CountByUserID counts the total number of transaction records for a user
func (r *TransactionRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	collection := r.db.Collection(TransactionCollectionName)

	filter := bson.M{"user_id": userID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count transaction records",
			"user_id", userID,
			"error", err)
		return 0, fmt.Errorf("failed to count transaction records: %w", err)
	}

	return count, nil
}
