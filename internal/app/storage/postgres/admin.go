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

// storage.AdminRepository interface implementation
var _ storage.AdminRepository = (*AdminRepository)(nil)

type AdminRepository struct {
	db *sql.DB
}

func (r *AdminRepository) LoggerComponent() string {
	return "AdminRepository"
}

func NewAdminRepository(db *sql.DB) (*AdminRepository, error) {
	return &AdminRepository{db: db}, nil
}

// ReadActive implementation of interface storage.AdminRepository
func (r *AdminRepository) ReadActive(ctx context.Context, id int64) (*model.Admin, error) {
	const SQL = `
		SELECT id, username, role
		FROM admin_users
		WHERE id = $1 AND is_active
`
	m := &model.Admin{}

	err := r.db.QueryRowContext(ctx, SQL, id).Scan(&m.ID, &m.Username, &m.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %d: %w", id, apperr.ErrNotFound)
		}
		return nil, classify("select", err)
	}

	return m, nil
}
