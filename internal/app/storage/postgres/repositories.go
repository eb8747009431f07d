package postgres

import (
	"database/sql"
	"fmt"

	"savingsdesk/internal/app/storage"
)

// NewRepositories builds all savings repositories over db
func NewRepositories(db *sql.DB) (storage.Repositories, error) {
	accounts, err := NewAccountRepository(db)
	if err != nil {
		return storage.Repositories{}, fmt.Errorf("account repository init: %w", err)
	}

	transactions, err := NewTransactionRepository(db)
	if err != nil {
		return storage.Repositories{}, fmt.Errorf("transaction repository init: %w", err)
	}

	payments, err := NewPaymentRepository()
	if err != nil {
		return storage.Repositories{}, fmt.Errorf("payment repository init: %w", err)
	}

	orders, err := NewOrderRepository(db)
	if err != nil {
		return storage.Repositories{}, fmt.Errorf("order repository init: %w", err)
	}

	cases, err := NewCaseRepository(db)
	if err != nil {
		return storage.Repositories{}, fmt.Errorf("case repository init: %w", err)
	}

	return storage.Repositories{
		Accounts:     accounts,
		Transactions: transactions,
		Payments:     payments,
		Orders:       orders,
		Cases:        cases,
	}, nil
}
