package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/storage"
)

const transactionNoConstraint = "savings_transactions_transaction_no_key"

// storage.TransactionRepository interface implementation
var _ storage.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	db *sql.DB
}

func (r *TransactionRepository) LoggerComponent() string {
	return "TransactionRepository"
}

func NewTransactionRepository(db *sql.DB) (*TransactionRepository, error) {
	s := &TransactionRepository{
		db: db,
	}
	return s, nil
}

// Expected column order of scanTransaction
const transactionColumns = `
	st.id, st.transaction_no, st.savings_account_id, st.transaction_type, st.amount, st.balance_after,
	st.payment_id, st.status, st.verified_by, st.verified_at, st.rejection_reason, st.notes, st.created_at,
	p.slip_image_url, p.slip_verified_at
`

const transactionFrom = `
	FROM savings_transactions st
	LEFT JOIN payments p ON p.id = st.payment_id
`

func scanTransaction(s scanner) (*model.Transaction, error) {
	var (
		m                           model.Transaction
		typ, status                 string
		paymentID, verifiedBy       sql.NullInt64
		verifiedAt, slipVerifiedAt  sql.NullTime
		reason, notes, slipImageURL sql.NullString
	)

	if err := s.Scan(
		&m.ID, &m.TransactionNo, &m.AccountID, &typ, &m.Amount, &m.BalanceAfter,
		&paymentID, &status, &verifiedBy, &verifiedAt, &reason, &notes, &m.CreatedAt,
		&slipImageURL, &slipVerifiedAt,
	); err != nil {
		return nil, err
	}

	m.Type = model.TransactionType(typ)
	m.Status = model.TransactionStatus(status)
	m.PaymentID = int64Ptr(paymentID)
	m.VerifiedBy = int64Ptr(verifiedBy)
	m.VerifiedAt = timePtr(verifiedAt)
	m.RejectionReason = reason.String
	m.Notes = notes.String
	m.SlipImageURL = slipImageURL.String
	m.SlipVerifiedAt = timePtr(slipVerifiedAt)

	return &m, nil
}

// TxLock implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxLock(ctx context.Context, tx *sql.Tx, accountID, id int64) (*model.Transaction, error) {
	const SQL = `SELECT ` + transactionColumns + transactionFrom + `
		WHERE st.id = $1 AND st.savings_account_id = $2
		FOR UPDATE OF st
`

	m, err := scanTransaction(tx.QueryRowContext(ctx, SQL, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", id, apperr.ErrNotFound)
		}
		return nil, classify("select for update", err)
	}

	return m, nil
}

// TxUpdateStatus implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxUpdateStatus(ctx context.Context, tx *sql.Tx, m *model.Transaction, from model.TransactionStatus) error {
	const SQL = `
		UPDATE savings_transactions
		SET status = $1, balance_after = $2, verified_by = $3, verified_at = $4, rejection_reason = $5, updated_at = $6
		WHERE id = $7 AND status = $8
`

	updatedAt := time.Now()
	if m.VerifiedAt != nil {
		updatedAt = *m.VerifiedAt
	}

	res, err := tx.ExecContext(ctx, SQL,
		string(m.Status),
		m.BalanceAfter,
		nullInt64(m.VerifiedBy),
		nullTime(m.VerifiedAt),
		nullString(m.RejectionReason),
		updatedAt,
		m.ID,
		string(from),
	)
	if err != nil {
		return classify("update", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return classify("rows affected", err)
	}

	if n == 0 {
		return fmt.Errorf("transaction %d is no longer %s: %w", m.ID, from, apperr.ErrInvalidState)
	}

	return nil
}

// TxCancelPending implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxCancelPending(ctx context.Context, tx *sql.Tx, accountID int64, now time.Time) (int64, error) {
	const SQL = `
		UPDATE savings_transactions
		SET status = $1, updated_at = $2
		WHERE savings_account_id = $3 AND status = $4
`

	res, err := tx.ExecContext(ctx, SQL,
		string(model.TransactionStatusCancelled),
		now,
		accountID,
		string(model.TransactionStatusPending),
	)
	if err != nil {
		return 0, classify("update", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify("rows affected", err)
	}

	return n, nil
}

// TxCreate implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
	const SQL = `
		INSERT INTO savings_transactions (
			transaction_no, savings_account_id, transaction_type, amount, balance_after,
			status, verified_by, verified_at, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
`

	err := tx.QueryRowContext(ctx, SQL,
		m.TransactionNo,
		m.AccountID,
		string(m.Type),
		m.Amount,
		m.BalanceAfter,
		string(m.Status),
		nullInt64(m.VerifiedBy),
		nullTime(m.VerifiedAt),
		nullString(m.Notes),
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err, transactionNoConstraint) {
			return nil, fmt.Errorf("insert %s: %w", m.TransactionNo, storage.ErrTransactionNoTaken)
		}
		return nil, classify("insert", err)
	}

	return m, nil
}

// ReadAccountID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) ReadAccountID(ctx context.Context, id int64) (int64, error) {
	const SQL = `SELECT savings_account_id FROM savings_transactions WHERE id = $1`

	var accountID int64
	if err := r.db.QueryRowContext(ctx, SQL, id).Scan(&accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("transaction %d: %w", id, apperr.ErrNotFound)
		}
		return 0, classify("select", err)
	}

	return accountID, nil
}

// AllByAccountID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) AllByAccountID(ctx context.Context, accountID int64) ([]*model.Transaction, error) {
	l := logger.Get(ctx, r).With().Str("method", "AllByAccountID").Logger()

	const SQL = `SELECT ` + transactionColumns + transactionFrom + `
		WHERE st.savings_account_id = $1
		ORDER BY st.created_at DESC, st.id DESC
`
	rows, err := r.db.QueryContext(ctx, SQL, accountID)
	if err != nil {
		return nil, classify("select", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Transaction, 0)

	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			l.Debug().Err(err).Send()
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("rows", err)
	}

	return res, nil
}
