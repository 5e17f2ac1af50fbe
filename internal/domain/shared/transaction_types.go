package shared

// TransactionType defines possible transaction operations
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "deposit"
)

// TransactionStatus defines terminal transaction states.
// Records are written once with a terminal status and never mutated.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// DefaultCurrency is the credited unit used when a claim omits currency
const DefaultCurrency = "sparks"
