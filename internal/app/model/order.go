package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order linked to a savings account once the goal is fulfilled. Owned by order management.
type Order struct {
	ID          int64           `json:"id"`
	OrderNo     string          `json:"order_no"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Case is a support case opened for the account by the chatbot flow.
type Case struct {
	ID        int64     `json:"id"`
	CaseNo    string    `json:"case_no"`
	CaseType  string    `json:"case_type"`
	Status    string    `json:"status"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}
