package handler

import (
	"time"
)

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=bank cash credit"`
	Balance     int64   `json:"balance"` // Opening balance in minor units, may be negative
	Currency    string  `json:"currency" binding:"required,len=3"`
	CreditLimit *int64  `json:"credit_limit,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Balance     int64   `json:"balance"`
	Currency    string  `json:"currency"`
	CreditLimit *int64  `json:"credit_limit,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=income expense"`
	Color string `json:"color,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// TransactionRequest represents a request to create or update a transaction
type TransactionRequest struct {
	AccountID  string  `json:"account_id" binding:"required,uuid"`
	CategoryID *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount     int64   `json:"amount" binding:"min=0"`
	Type       string  `json:"type" binding:"required,oneof=income expense"`
	Date       string  `json:"date" binding:"required"`
	Note       string  `json:"note,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID         string  `json:"id"`
	AccountID  string  `json:"account_id"`
	CategoryID *string `json:"category_id,omitempty"`
	Amount     int64   `json:"amount"`
	Type       string  `json:"type"`
	Date       string  `json:"date"`
	Note       string  `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// TransferRequest represents a request to move money between two accounts
type TransferRequest struct {
	SourceAccountID string `json:"source_account_id" binding:"required,uuid"`
	TargetAccountID string `json:"target_account_id" binding:"required,uuid"`
	Amount          int64  `json:"amount" binding:"min=0"`
	Date            string `json:"date,omitempty"`
}

// ListTransactionsParams represents query parameters for listing transactions
type ListTransactionsParams struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
}

// DateRangeParams represents an optional date range for reporting queries
type DateRangeParams struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// parseDate accepts RFC 3339 timestamps and bare dates
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseOptionalDate parses s when non-empty, otherwise returns nil
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
