package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeRefund     TransactionType = "refund"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusVerified  TransactionStatus = "verified"
	TransactionStatusRejected  TransactionStatus = "rejected"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// NoReasonGiven is stored as rejection reason when the admin left it empty
const NoReasonGiven = "ไม่ระบุเหตุผล"

// Transaction is a single deposit, withdrawal or refund against an account
type Transaction struct {
	ID              int64
	TransactionNo   string
	AccountID       int64
	Type            TransactionType
	Amount          decimal.Decimal
	BalanceAfter    decimal.NullDecimal
	PaymentID       *int64
	Status          TransactionStatus
	VerifiedBy      *int64
	VerifiedAt      *time.Time
	RejectionReason string
	Notes           string
	CreatedAt       time.Time

	// from the linked payment proof
	SlipImageURL   string
	SlipVerifiedAt *time.Time
}

func (t *Transaction) Pending() bool {
	return t.Status == TransactionStatusPending
}

// Verify stamps the transaction as verified by admin with the resulting balance
func (t *Transaction) Verify(admin *Admin, balance decimal.Decimal, now time.Time) {
	t.Status = TransactionStatusVerified
	t.BalanceAfter = decimal.NullDecimal{Decimal: balance, Valid: true}
	t.VerifiedBy = adminID(admin)
	t.VerifiedAt = &now
}

// Reject stamps the transaction as rejected, substituting a placeholder for an empty reason
func (t *Transaction) Reject(admin *Admin, reason string, now time.Time) {
	if reason == "" {
		reason = NoReasonGiven
	}
	t.Status = TransactionStatusRejected
	t.RejectionReason = reason
	t.VerifiedBy = adminID(admin)
	t.VerifiedAt = &now
}

func adminID(a *Admin) *int64 {
	if a == nil || a.ID == 0 {
		return nil
	}
	id := a.ID
	return &id
}
