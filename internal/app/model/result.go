package model

import "github.com/shopspring/decimal"

// ApprovalResult of an approved deposit
type ApprovalResult struct {
	AccountID       int64
	TransactionID   int64
	Amount          decimal.Decimal
	NewBalance      decimal.Decimal
	TargetAmount    decimal.Decimal
	ProgressPercent decimal.Decimal
	RemainingAmount decimal.Decimal
	GoalReached     bool
	Status          AccountStatus
}

// CancelResult carries the advisory refund; nothing is paid out automatically
type CancelResult struct {
	Account               *Account
	RefundAmount          decimal.Decimal
	CancelledTransactions int64
}

type DepositResult struct {
	Account     *Account
	Transaction *Transaction
}
