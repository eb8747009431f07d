package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
)

// ErrTransactionNoTaken is returned by TransactionRepository.TxCreate when the generated number already exists
var ErrTransactionNoTaken = fmt.Errorf("transaction number taken: %w", apperr.ErrConflict)

type AccountRepository interface {
	// TxLock reads model.Account by key and locks its row until tx ends
	TxLock(ctx context.Context, tx *sql.Tx, key model.AccountKey) (*model.Account, error)
	// TxUpdate writes balance, status, notes and timestamps of model.Account within the tx
	TxUpdate(ctx context.Context, tx *sql.Tx, m *model.Account) error
	// Read instance of model.Account
	Read(ctx context.Context, id int64) (*model.Account, error)
	// List accounts matching the filter along with the total count
	List(ctx context.Context, f model.AccountFilter) ([]*model.AccountSummary, int, error)
	// Stats aggregates balances and due dates relative to today
	Stats(ctx context.Context, today time.Time) (*model.Stats, error)
}

type TransactionRepository interface {
	// TxLock reads model.Transaction of the account and locks its row until tx ends
	TxLock(ctx context.Context, tx *sql.Tx, accountID, id int64) (*model.Transaction, error)
	// TxUpdateStatus moves model.Transaction out of the given status, fails with apperr.ErrInvalidState if it already moved
	TxUpdateStatus(ctx context.Context, tx *sql.Tx, m *model.Transaction, from model.TransactionStatus) error
	// TxCancelPending cancels all pending transactions of the account
	TxCancelPending(ctx context.Context, tx *sql.Tx, accountID int64, now time.Time) (int64, error)
	// TxCreate a new model.Transaction within the tx
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error)
	// ReadAccountID returns the owning account of a transaction
	ReadAccountID(ctx context.Context, id int64) (int64, error)
	// AllByAccountID returns account history, newest first
	AllByAccountID(ctx context.Context, accountID int64) ([]*model.Transaction, error)
}

type PaymentRepository interface {
	// TxVerify marks the payment proof verified; a failure leaves tx usable
	TxVerify(ctx context.Context, tx *sql.Tx, id int64, admin *model.Admin, now time.Time) error
}

type OrderRepository interface {
	// Read instance of model.Order
	Read(ctx context.Context, id int64) (*model.Order, error)
}

type CaseRepository interface {
	// LatestByAccountID returns the most recently created case of the account
	LatestByAccountID(ctx context.Context, accountID int64) (*model.Case, error)
}

type AdminRepository interface {
	// ReadActive returns model.Admin if it exists and is not disabled
	ReadActive(ctx context.Context, id int64) (*model.Admin, error)
}

// Repositories used by the savings services
type Repositories struct {
	Accounts     AccountRepository
	Transactions TransactionRepository
	Payments     PaymentRepository
	Orders       OrderRepository
	Cases        CaseRepository
}
