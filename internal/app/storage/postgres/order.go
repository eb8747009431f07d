package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/storage"
)

// storage.OrderRepository interface implementation
var _ storage.OrderRepository = (*OrderRepository)(nil)

type OrderRepository struct {
	db *sql.DB
}

func (r *OrderRepository) LoggerComponent() string {
	return "OrderRepository"
}

func NewOrderRepository(db *sql.DB) (*OrderRepository, error) {
	s := &OrderRepository{
		db: db,
	}
	return s, nil
}

// Read implementation of interface storage.OrderRepository
func (r *OrderRepository) Read(ctx context.Context, id int64) (*model.Order, error) {
	const SQL = `
		SELECT id, order_no, status, total_amount, created_at
		FROM orders
		WHERE id = $1
`
	m := &model.Order{}

	err := r.db.QueryRowContext(ctx, SQL, id).Scan(&m.ID, &m.OrderNo, &m.Status, &m.TotalAmount, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
		}
		return nil, classify("select", err)
	}

	return m, nil
}
