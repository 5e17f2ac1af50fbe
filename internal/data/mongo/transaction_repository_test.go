package mongo

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/monocle-wallet-service/internal/domain/shared"
	"github.com/monocle-wallet-service/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, record *transaction.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetCompletedByReference(ctx context.Context, reference string) (*transaction.Record, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Record), args.Error(1)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*transaction.Record, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Record), args.Error(1)
}

func (m *MockTransactionRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*transaction.Record, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Record), args.Error(1)
}

func (m *MockTransactionRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewTransactionRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewTransactionRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &TransactionRepository{}, repo)

	// Compile-time contract with the domain interface
	var _ transaction.Repository = repo
}

func sampleRecord(status shared.TransactionStatus) *transaction.Record {
	return &transaction.Record{
		ID:          uuid.New(),
		UserID:      "U1",
		Type:        shared.TransactionTypeDeposit,
		Amount:      5000,
		Currency:    shared.DefaultCurrency,
		Status:      status,
		Reference:   "R1",
		Description: "Paystack deposit - 500 NGN",
		CreatedAt:   time.Now(),
	}
}

func TestTransactionRepository_Create(t *testing.T) {
	record := sampleRecord(shared.TransactionStatusCompleted)

	tests := []struct {
		name          string
		setupMocks    func(m *MockTransactionRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			setupMocks: func(m *MockTransactionRepository) {
				m.On("Create", mock.Anything, record).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate completed reference",
			setupMocks: func(m *MockTransactionRepository) {
				m.On("Create", mock.Anything, record).Return(transaction.ErrDuplicateReference{Reference: "R1"})
			},
			expectedError: transaction.ErrDuplicateReference{Reference: "R1"},
		},
		{
			name: "database error",
			setupMocks: func(m *MockTransactionRepository) {
				m.On("Create", mock.Anything, record).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockTransactionRepository{}
			tt.setupMocks(mockRepo)

			err := mockRepo.Create(context.Background(), record)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTransactionRepository_GetCompletedByReference(t *testing.T) {
	completed := sampleRecord(shared.TransactionStatusCompleted)

	tests := []struct {
		name           string
		setupMocks     func(m *MockTransactionRepository)
		expectedRecord *transaction.Record
		expectedError  error
	}{
		{
			name: "completed record found",
			setupMocks: func(m *MockTransactionRepository) {
				m.On("GetCompletedByReference", mock.Anything, "R1").Return(completed, nil)
			},
			expectedRecord: completed,
		},
		{
			name: "only failed records exist",
			setupMocks: func(m *MockTransactionRepository) {
				// A failed record never satisfies the completed lookup
				m.On("GetCompletedByReference", mock.Anything, "R1").Return(nil, transaction.ErrRecordNotFound{Reference: "R1"})
			},
			expectedError: transaction.ErrRecordNotFound{Reference: "R1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockTransactionRepository{}
			tt.setupMocks(mockRepo)

			record, err := mockRepo.GetCompletedByReference(context.Background(), "R1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, record)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRecord, record)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTransactionRepository_GetByUserID(t *testing.T) {
	records := []*transaction.Record{
		sampleRecord(shared.TransactionStatusCompleted),
		sampleRecord(shared.TransactionStatusFailed),
	}

	mockRepo := &MockTransactionRepository{}
	mockRepo.On("GetByUserID", mock.Anything, "U1", 10, 0).Return(records, nil)
	mockRepo.On("CountByUserID", mock.Anything, "U1").Return(int64(2), nil)

	got, err := mockRepo.GetByUserID(context.Background(), "U1", 10, 0)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	count, err := mockRepo.CountByUserID(context.Background(), "U1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	mockRepo.AssertExpectations(t)
}
