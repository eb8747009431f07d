package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/storage"
)

// storage.AccountRepository interface implementation
var _ storage.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func (r *AccountRepository) LoggerComponent() string {
	return "AccountRepository"
}

func NewAccountRepository(db *sql.DB) (*AccountRepository, error) {
	s := &AccountRepository{
		db: db,
	}
	return s, nil
}

// Expected column order of scanAccount
const accountColumns = `
	sa.id, sa.account_no, sa.customer_id, sa.channel_id, ch.name, sa.platform, sa.external_user_id,
	sa.product_ref_id, sa.product_name, sa.target_amount, sa.current_amount, sa.status,
	sa.target_date, sa.order_id, sa.admin_notes, sa.created_at, sa.updated_at, sa.completed_at
`

const accountFrom = `
	FROM savings_accounts sa
	LEFT JOIN customer_channels ch ON ch.id = sa.channel_id
`

func scanAccount(s scanner, extra ...interface{}) (*model.Account, error) {
	var (
		m                                                  model.Account
		status                                             string
		customerID, channelID, orderID                     sql.NullInt64
		channelName, platform, externalUserID, productName sql.NullString
		adminNotes                                         sql.NullString
		targetDate, completedAt                            sql.NullTime
	)

	dest := []interface{}{
		&m.ID, &m.AccountNo, &customerID, &channelID, &channelName, &platform, &externalUserID,
		&m.ProductRefID, &productName, &m.TargetAmount, &m.CurrentAmount, &status,
		&targetDate, &orderID, &adminNotes, &m.CreatedAt, &m.UpdatedAt, &completedAt,
	}

	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	m.Status = model.AccountStatus(status)
	m.CustomerID = int64Ptr(customerID)
	m.ChannelID = int64Ptr(channelID)
	m.ChannelName = channelName.String
	m.Platform = platform.String
	m.ExternalUserID = externalUserID.String
	m.ProductName = productName.String
	m.TargetDate = timePtr(targetDate)
	m.OrderID = int64Ptr(orderID)
	m.AdminNotes = adminNotes.String
	m.CompletedAt = timePtr(completedAt)

	return &m, nil
}

// TxLock implementation of interface storage.AccountRepository
func (r *AccountRepository) TxLock(ctx context.Context, tx *sql.Tx, key model.AccountKey) (*model.Account, error) {
	where, arg := "sa.id = $1", interface{}(nil)
	if id, ok := key.ID(); ok {
		arg = id
	} else if number, ok := key.Number(); ok {
		where, arg = "sa.account_no = $1", number
	} else {
		return nil, fmt.Errorf("%w: empty account key", apperr.ErrInvalidInput)
	}

	SQL := `SELECT ` + accountColumns + accountFrom + `WHERE ` + where + ` FOR UPDATE OF sa`

	m, err := scanAccount(tx.QueryRowContext(ctx, SQL, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("savings account %s: %w", key, apperr.ErrNotFound)
		}
		return nil, classify("select for update", err)
	}

	return m, nil
}

// TxUpdate implementation of interface storage.AccountRepository
func (r *AccountRepository) TxUpdate(ctx context.Context, tx *sql.Tx, m *model.Account) error {
	const SQL = `
		UPDATE savings_accounts
		SET current_amount = $1, status = $2, admin_notes = $3, completed_at = $4, updated_at = $5
		WHERE id = $6
`

	res, err := tx.ExecContext(ctx, SQL,
		m.CurrentAmount,
		string(m.Status),
		nullString(m.AdminNotes),
		nullTime(m.CompletedAt),
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return classify("update", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("savings account %d: %w", m.ID, apperr.ErrNotFound)
	}

	return nil
}

// Read implementation of interface storage.AccountRepository
func (r *AccountRepository) Read(ctx context.Context, id int64) (*model.Account, error) {
	SQL := `SELECT ` + accountColumns + accountFrom + `WHERE sa.id = $1`

	m, err := scanAccount(r.db.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("savings account %d: %w", id, apperr.ErrNotFound)
		}
		return nil, classify("select", err)
	}

	return m, nil
}

// List implementation of interface storage.AccountRepository
func (r *AccountRepository) List(ctx context.Context, f model.AccountFilter) ([]*model.AccountSummary, int, error) {
	l := logger.Get(ctx, r).With().Str("method", "List").Logger()

	var (
		where []string
		args  []interface{}
	)

	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("sa.status = $%d", len(args)))
	}

	if f.Platform != "" {
		args = append(args, f.Platform)
		where = append(where, fmt.Sprintf("sa.platform = $%d", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(sa.account_no ILIKE $%d OR sa.external_user_id ILIKE $%d OR sa.product_ref_id ILIKE $%d)", n, n, n,
		))
	}

	if f.PendingOnly {
		where = append(where, `EXISTS (
			SELECT 1 FROM savings_transactions p WHERE p.savings_account_id = sa.id AND p.status = 'pending'
		)`)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countSQL := `SELECT count(*) FROM savings_accounts sa ` + whereClause
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, classify("count", err)
	}

	pageArgs := append(args[:len(args):len(args)], f.Limit, f.Offset)
	SQL := `SELECT ` + accountColumns + `,
		(SELECT count(*) FROM savings_transactions p
			WHERE p.savings_account_id = sa.id AND p.status = 'pending') AS pending_count,
		(SELECT coalesce(sum(p.amount), 0) FROM savings_transactions p
			WHERE p.savings_account_id = sa.id AND p.status = 'pending') AS pending_amount
	` + accountFrom + whereClause + fmt.Sprintf(`
		ORDER BY
			CASE sa.status WHEN 'active' THEN 1 WHEN 'completed' THEN 2 WHEN 'cancelled' THEN 3 WHEN 'expired' THEN 4 ELSE 5 END,
			sa.updated_at DESC, sa.id DESC
		LIMIT $%d OFFSET $%d`, len(pageArgs)-1, len(pageArgs))

	rows, err := r.db.QueryContext(ctx, SQL, pageArgs...)
	if err != nil {
		return nil, 0, classify("select", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.AccountSummary, 0)

	for rows.Next() {
		var (
			pendingCount  int
			pendingAmount decimal.Decimal
		)
		m, err := scanAccount(rows, &pendingCount, &pendingAmount)
		if err != nil {
			l.Debug().Err(err).Send()
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		res = append(res, &model.AccountSummary{
			Account:       *m,
			PendingCount:  pendingCount,
			PendingAmount: pendingAmount,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, 0, classify("rows", err)
	}

	return res, total, nil
}

// Stats implementation of interface storage.AccountRepository
func (r *AccountRepository) Stats(ctx context.Context, today time.Time) (*model.Stats, error) {
	const SQL = `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'active'),
			coalesce(sum(current_amount) FILTER (WHERE status = 'active'), 0),
			count(*) FILTER (WHERE status = 'active' AND target_date IS NOT NULL
				AND target_date >= $1::date AND target_date <= $1::date + 30),
			count(*) FILTER (WHERE status = 'active' AND target_date IS NOT NULL AND target_date < $1::date)
		FROM savings_accounts
`
	const pendingSQL = `
		SELECT count(*), coalesce(sum(amount), 0)
		FROM savings_transactions
		WHERE status = 'pending'
`

	m := &model.Stats{}

	err := r.db.QueryRowContext(ctx, SQL, today.Format("2006-01-02")).
		Scan(&m.Total, &m.Active, &m.TotalAmount, &m.NearDue, &m.Overdue)
	if err != nil {
		return nil, classify("select stats", err)
	}

	if err := r.db.QueryRowContext(ctx, pendingSQL).Scan(&m.PendingDeposits, &m.PendingAmount); err != nil {
		return nil, classify("select pending stats", err)
	}

	return m, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
