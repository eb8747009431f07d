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

// storage.CaseRepository interface implementation
var _ storage.CaseRepository = (*CaseRepository)(nil)

type CaseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) (*CaseRepository, error) {
	return &CaseRepository{db: db}, nil
}

// LatestByAccountID implementation of interface storage.CaseRepository
func (r *CaseRepository) LatestByAccountID(ctx context.Context, accountID int64) (*model.Case, error) {
	const SQL = `
		SELECT id, case_no, case_type, status, subject, created_at
		FROM cases
		WHERE savings_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
`
	var (
		m       model.Case
		subject sql.NullString
	)

	err := r.db.QueryRowContext(ctx, SQL, accountID).Scan(&m.ID, &m.CaseNo, &m.CaseType, &m.Status, &subject, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("case of account %d: %w", accountID, apperr.ErrNotFound)
		}
		return nil, classify("select", err)
	}
	m.Subject = subject.String

	return &m, nil
}
