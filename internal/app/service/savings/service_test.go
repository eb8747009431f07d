package savings

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/notify/mock"
	"savingsdesk/internal/app/storage/postgres"
)

var (
	testNow   = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	testAdmin = &model.Admin{ID: 9, Username: "ops", Role: "admin"}
)

const (
	sqlLockAccountByID     = `FROM savings_accounts sa .* WHERE sa.id = \$1 FOR UPDATE OF sa`
	sqlLockAccountByNumber = `FROM savings_accounts sa .* WHERE sa.account_no = \$1 FOR UPDATE OF sa`
	sqlLockTransaction     = `FROM savings_transactions st .* WHERE st.id = \$1 AND st.savings_account_id = \$2 FOR UPDATE OF st`
	sqlUpdateTransaction   = `UPDATE savings_transactions SET status = \$1, balance_after = \$2`
	sqlCancelPending       = `UPDATE savings_transactions SET status = \$1, updated_at = \$2 WHERE savings_account_id = \$3`
	sqlUpdateAccount       = `UPDATE savings_accounts SET current_amount = \$1`
	sqlInsertTransaction   = `INSERT INTO savings_transactions`
)

var accountCols = []string{
	"id", "account_no", "customer_id", "channel_id", "name", "platform", "external_user_id",
	"product_ref_id", "product_name", "target_amount", "current_amount", "status",
	"target_date", "order_id", "admin_notes", "created_at", "updated_at", "completed_at",
}

var transactionCols = []string{
	"id", "transaction_no", "savings_account_id", "transaction_type", "amount", "balance_after",
	"payment_id", "status", "verified_by", "verified_at", "rejection_reason", "notes", "created_at",
	"slip_image_url", "slip_verified_at",
}

type accountFixture struct {
	id      int64
	status  model.AccountStatus
	current string
	target  string
	notes   interface{}
	orderID interface{}
}

func accountValues(f accountFixture) []driver.Value {
	created := testNow.Add(-30 * 24 * time.Hour)
	return []driver.Value{
		f.id, "SAV-0001", int64(4), int64(3), "LINE OA", "line", "U123",
		"P-1", "Rolex Submariner", f.target, f.current, string(f.status),
		nil, f.orderID, f.notes, created, created, nil,
	}
}

func accountRows(f accountFixture) *sqlmock.Rows {
	return sqlmock.NewRows(accountCols).AddRow(accountValues(f)...)
}

func transactionRows(id, accountID int64, amount string, status model.TransactionStatus, paymentID interface{}) *sqlmock.Rows {
	return sqlmock.NewRows(transactionCols).AddRow(
		id, "SAVTX-20260314-ABCDEF", accountID, "deposit", amount, nil,
		paymentID, string(status), nil, nil, nil, nil, testNow.Add(-time.Hour),
		"https://cdn.example/slip.jpg", nil,
	)
}

// decimalArg matches a driver value numerically, "1000" == "1000.00"
type decimalArg string

func (d decimalArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return got.Equal(decimal.RequireFromString(string(d)))
}

func newTestService(t *testing.T, opts ...Option) (*Service, sqlmock.Sqlmock, *mock.MockNotifier) {
	t.Helper()

	db, m, err := sqlmock.New()
	require.NoError(t, err)

	repos, err := postgres.NewRepositories(db)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	n := mock.NewMockNotifier(ctrl)

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	s := New(db, repos, n, opts...)

	t.Cleanup(func() {
		assert.NoError(t, m.ExpectationsWereMet())
		_ = db.Close()
	})

	return s, m, n
}

func TestService_RetriesSerializationFailure(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "40001"})
	m.ExpectRollback()

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "900.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "100.00", model.TransactionStatusVerified, nil))
	m.ExpectRollback()

	_, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestService_GivesUpAfterMaxAttempts(t *testing.T) {
	s, m, _ := newTestService(t)

	for i := 0; i < maxTxAttempts; i++ {
		m.ExpectBegin()
		m.ExpectQuery(sqlLockAccountByID).
			WithArgs(int64(1)).
			WillReturnError(&pq.Error{Code: "40P01"})
		m.ExpectRollback()
	}

	_, err := s.Complete(context.Background(), testAdmin, 1, "")
	require.Error(t, err)
	assert.True(t, postgres.IsRetryable(err))
}

func TestService_StoreTimeout(t *testing.T) {
	s, m, _ := newTestService(t, WithTimeout(10*time.Millisecond))

	m.ExpectBegin().WillDelayFor(time.Second)

	_, err := s.Cancel(context.Background(), testAdmin, 1, "")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
}
