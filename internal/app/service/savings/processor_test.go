package savings

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/notify"
)

func TestService_ApproveDeposit_GoalReached(t *testing.T) {
	s, m, n := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusPending, int64(55)))
	m.ExpectExec(sqlUpdateTransaction).
		WithArgs("verified", decimalArg("1000"), int64(9), testNow, nil, testNow, int64(10), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(sqlUpdateAccount).
		WithArgs(decimalArg("1000"), "completed", nil, testNow, testNow, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(`^SAVEPOINT payment_proof$`).WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec(`UPDATE payments SET status = 'verified'`).
		WithArgs(int64(9), testNow, int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(`^RELEASE SAVEPOINT payment_proof$`).WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectCommit()

	var notifyCtx context.Context
	n.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(ctx context.Context, e notify.Event) {
		notifyCtx = ctx
		assert.Equal(t, notify.EventGoalReached, e.Type)
		assert.Equal(t, "U123", e.ExternalUserID)
		p, ok := e.Payload.(notify.GoalReachedPayload)
		require.True(t, ok)
		assert.Equal(t, "Rolex Submariner", p.ProductName)
	})

	res, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 10)
	require.NoError(t, err)

	// the event context survives the operation's store timeout
	require.NotNil(t, notifyCtx)
	assert.NoError(t, notifyCtx.Err())
	_, hasDeadline := notifyCtx.Deadline()
	assert.False(t, hasDeadline)

	assert.True(t, res.GoalReached)
	assert.Equal(t, model.AccountStatusCompleted, res.Status)
	assert.Equal(t, "1000", res.NewBalance.String())
	assert.Equal(t, "100", res.ProgressPercent.String())
	assert.Equal(t, "0", res.RemainingAmount.String())
}

func TestService_ApproveDeposit_Progress(t *testing.T) {
	s, m, n := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(11), int64(1)).
		WillReturnRows(transactionRows(11, 1, "100.00", model.TransactionStatusPending, nil))
	m.ExpectExec(sqlUpdateTransaction).
		WithArgs("verified", decimalArg("900"), int64(9), testNow, nil, testNow, int64(11), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(sqlUpdateAccount).
		WithArgs(decimalArg("900"), "active", nil, nil, testNow, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectCommit()

	n.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e notify.Event) {
		assert.Equal(t, notify.EventDepositVerified, e.Type)
	})

	res, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 11)
	require.NoError(t, err)

	assert.False(t, res.GoalReached)
	assert.Equal(t, model.AccountStatusActive, res.Status)
	assert.Equal(t, "900", res.NewBalance.String())
	assert.Equal(t, "90", res.ProgressPercent.String())
	assert.Equal(t, "100", res.RemainingAmount.String())
}

func TestService_ApproveDeposit_AlreadyVerified(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusVerified, nil))
	m.ExpectRollback()

	res, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	assert.Nil(t, res)
}

func TestService_ApproveDeposit_LostRace(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusPending, nil))
	m.ExpectExec(sqlUpdateTransaction).
		WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectRollback()

	_, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestService_ApproveDeposit_InactiveAccount(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusCancelled, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusPending, nil))
	m.ExpectRollback()

	_, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestService_ApproveDeposit_NotFound(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(99), int64(1)).
		WillReturnRows(sqlmock.NewRows(transactionCols))
	m.ExpectRollback()

	_, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_ApproveDeposit_PaymentProofFailureIsTolerated(t *testing.T) {
	s, m, n := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "0", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusPending, int64(55)))
	m.ExpectExec(sqlUpdateTransaction).WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(sqlUpdateAccount).WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(`^SAVEPOINT payment_proof$`).WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectExec(`UPDATE payments SET status = 'verified'`).WillReturnError(assert.AnError)
	m.ExpectExec(`^ROLLBACK TO SAVEPOINT payment_proof$`).WillReturnResult(sqlmock.NewResult(0, 0))
	m.ExpectCommit()

	n.EXPECT().Notify(gomock.Any(), gomock.Any())

	res, err := s.ApproveDeposit(context.Background(), testAdmin, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "200", res.NewBalance.String())
}

func TestService_ApproveTransaction(t *testing.T) {
	s, m, n := newTestService(t)

	m.ExpectQuery(`SELECT savings_account_id FROM savings_transactions WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"savings_account_id"}).AddRow(int64(1)))
	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "100.00", model.TransactionStatusPending, nil))
	m.ExpectExec(sqlUpdateTransaction).WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectExec(sqlUpdateAccount).WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectCommit()

	n.EXPECT().Notify(gomock.Any(), gomock.Any())

	res, err := s.ApproveTransaction(context.Background(), testAdmin, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AccountID)
}

func TestService_ApproveTransaction_NotFound(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectQuery(`SELECT savings_account_id FROM savings_transactions WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"savings_account_id"}))

	_, err := s.ApproveTransaction(context.Background(), testAdmin, 10)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_RejectDeposit_DefaultReason(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusPending, nil))
	m.ExpectExec(sqlUpdateTransaction).
		WithArgs("rejected", nil, int64(9), testNow, model.NoReasonGiven, testNow, int64(10), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	m.ExpectCommit()

	res, err := s.RejectDeposit(context.Background(), testAdmin, 1, 10, "  ")
	require.NoError(t, err)

	assert.Equal(t, model.TransactionStatusRejected, res.Status)
	assert.Equal(t, model.NoReasonGiven, res.RejectionReason)
}

func TestService_RejectTransaction_NotPending(t *testing.T) {
	s, m, _ := newTestService(t)

	m.ExpectQuery(`SELECT savings_account_id FROM savings_transactions WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"savings_account_id"}).AddRow(int64(1)))
	m.ExpectBegin()
	m.ExpectQuery(sqlLockAccountByID).
		WithArgs(int64(1)).
		WillReturnRows(accountRows(accountFixture{id: 1, status: model.AccountStatusActive, current: "800.00", target: "1000.00"}))
	m.ExpectQuery(sqlLockTransaction).
		WithArgs(int64(10), int64(1)).
		WillReturnRows(transactionRows(10, 1, "200.00", model.TransactionStatusCancelled, nil))
	m.ExpectRollback()

	_, err := s.RejectTransaction(context.Background(), testAdmin, 10, "blurry slip")
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}
