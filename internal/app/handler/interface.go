package handler

//go:generate mockgen -destination=./mock/service.go -package=mock savingsdesk/internal/app/handler SavingsService

import (
	"context"

	"github.com/shopspring/decimal"

	"savingsdesk/internal/app/model"
)

// SavingsService is what the admin API needs from the savings core
type SavingsService interface {
	ApproveDeposit(ctx context.Context, admin *model.Admin, accountID, transactionID int64) (*model.ApprovalResult, error)
	ApproveTransaction(ctx context.Context, admin *model.Admin, transactionID int64) (*model.ApprovalResult, error)
	RejectTransaction(ctx context.Context, admin *model.Admin, transactionID int64, reason string) (*model.Transaction, error)
	Cancel(ctx context.Context, admin *model.Admin, accountID int64, reason string) (*model.CancelResult, error)
	Complete(ctx context.Context, admin *model.Admin, accountID int64, notes string) (*model.Account, error)
	ManualDeposit(ctx context.Context, admin *model.Admin, key model.AccountKey, amount decimal.Decimal, notes string) (*model.DepositResult, error)
	UpdateStatus(ctx context.Context, admin *model.Admin, key model.AccountKey, status model.AccountStatus) (*model.Account, error)
	ListAccounts(ctx context.Context, f model.AccountFilter) (*model.AccountPage, error)
	GetAccountDetail(ctx context.Context, id int64) (*model.AccountDetail, error)
	GetStats(ctx context.Context) (*model.Stats, error)
}
