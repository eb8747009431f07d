package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/storage"
)

// storage.PaymentRepository interface implementation
var _ storage.PaymentRepository = (*PaymentRepository)(nil)

type PaymentRepository struct{}

func NewPaymentRepository() (*PaymentRepository, error) {
	return &PaymentRepository{}, nil
}

// TxVerify implementation of interface storage.PaymentRepository.
// The update runs under a savepoint so a failure does not abort tx.
func (r *PaymentRepository) TxVerify(ctx context.Context, tx *sql.Tx, id int64, admin *model.Admin, now time.Time) error {
	const (
		sqlSavepoint = `SAVEPOINT payment_proof`
		sqlRollback  = `ROLLBACK TO SAVEPOINT payment_proof`
		sqlRelease   = `RELEASE SAVEPOINT payment_proof`
		SQL          = `UPDATE payments SET status = 'verified', verified_by = $1, verified_at = $2 WHERE id = $3`
	)

	var adminID sql.NullInt64
	if admin != nil && admin.ID != 0 {
		adminID = sql.NullInt64{Int64: admin.ID, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, sqlSavepoint); err != nil {
		return classify("savepoint", err)
	}

	if _, err := tx.ExecContext(ctx, SQL, adminID, now, id); err != nil {
		if _, rbErr := tx.ExecContext(ctx, sqlRollback); rbErr != nil {
			return fmt.Errorf("update: %v, rollback to savepoint: %w", err, rbErr)
		}
		return classify("update", err)
	}

	if _, err := tx.ExecContext(ctx, sqlRelease); err != nil {
		return classify("release savepoint", err)
	}

	return nil
}
