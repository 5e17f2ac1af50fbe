package handler

// VerifyPaymentRequest represents a request to confirm a payment and credit sparks
type VerifyPaymentRequest struct {
	Reference string  `json:"reference" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency,omitempty"`
}

// WalletResponse represents a wallet in API responses
type WalletResponse struct {
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TransactionResponse represents a transaction record in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// TransactionListResponse represents a list of transaction records in API responses
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
