package transaction

import (
	"context"
)

// Repository manages transaction record persistence with pagination support
type Repository interface {
	// Create durably persists a record. A second completed record for the
	// same reference is rejected with ErrDuplicateReference by a uniqueness
	// constraint, independent of any application-level check.
	Create(ctx context.Context, record *Record) error

	// GetCompletedByReference returns the completed record for a reference,
	// or ErrRecordNotFound. Failed records never satisfy this lookup, so a
	// failed credit attempt does not block a legitimate retry.
	GetCompletedByReference(ctx context.Context, reference string) (*Record, error)

	// GetByReference returns the most recent record for a reference
	GetByReference(ctx context.Context, reference string) (*Record, error)

	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*Record, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

// ErrRecordNotFound indicates missing transaction record
type ErrRecordNotFound struct {
	Reference string
}

func (e ErrRecordNotFound) Error() string {
	return "transaction record not found: " + e.Reference
}

// Is implements the errors.Is interface for ErrRecordNotFound
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	// An empty target reference matches any ErrRecordNotFound
	if t.Reference == "" {
		return true
	}
	return e.Reference == t.Reference
}

// ErrDuplicateReference indicates reference uniqueness violation
type ErrDuplicateReference struct {
	Reference string
}

func (e ErrDuplicateReference) Error() string {
	return "duplicate transaction record for reference: " + e.Reference
}

// Is implements the errors.Is interface for ErrDuplicateReference
func (e ErrDuplicateReference) Is(target error) bool {
	t, ok := target.(ErrDuplicateReference)
	if !ok {
		return false
	}
	if t.Reference == "" {
		return true
	}
	return e.Reference == t.Reference
}
