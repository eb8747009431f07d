package savings

import (
	"context"
	"database/sql"
	"strings"

	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/notify"
)

// ApproveDeposit credits a pending deposit to its account.
// Reaching the target completes the account. The customer is notified after commit.
func (s *Service) ApproveDeposit(ctx context.Context, admin *model.Admin, accountID, transactionID int64) (*model.ApprovalResult, error) {
	l := s.log(ctx, admin, "Savings.Processor", "ApproveDeposit")
	ctx = l.WithContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		res     *model.ApprovalResult
		account *model.Account
	)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		a, err := s.repos.Accounts.TxLock(ctx, tx, model.AccountByID(accountID))
		if err != nil {
			return err
		}

		t, err := s.repos.Transactions.TxLock(ctx, tx, accountID, transactionID)
		if err != nil {
			return err
		}

		if !t.Pending() {
			return invalidState("transaction %d is %s", t.ID, t.Status)
		}

		if a.Status != model.AccountStatusActive {
			return invalidState("savings account %d is %s", a.ID, a.Status)
		}

		now := s.now()
		balance, goalReached := a.Credit(t.Amount, true, now)
		t.Verify(admin, balance, now)

		if err := s.repos.Transactions.TxUpdateStatus(ctx, tx, t, model.TransactionStatusPending); err != nil {
			return err
		}

		if err := s.repos.Accounts.TxUpdate(ctx, tx, a); err != nil {
			return err
		}

		if t.PaymentID != nil {
			if err := s.repos.Payments.TxVerify(ctx, tx, *t.PaymentID, admin, now); err != nil {
				l.Warn().Err(err).Int64("payment_id", *t.PaymentID).Msg("Payment proof left unverified")
			}
		}

		percent, remaining := a.Progress()
		res = &model.ApprovalResult{
			AccountID:       a.ID,
			TransactionID:   t.ID,
			Amount:          t.Amount,
			NewBalance:      balance,
			TargetAmount:    a.TargetAmount,
			ProgressPercent: percent,
			RemainingAmount: remaining,
			GoalReached:     goalReached,
			Status:          a.Status,
		}
		account = a

		return nil
	})
	if err != nil {
		l.Debug().Err(err).Int64("savings_id", accountID).Int64("transaction_id", transactionID).Msg("Approve failed")
		return nil, err
	}

	l.Info().
		Int64("savings_id", res.AccountID).
		Int64("transaction_id", res.TransactionID).
		Str("new_balance", res.NewBalance.String()).
		Bool("goal_reached", res.GoalReached).
		Msg("Deposit approved")

	// delivery outlives the store timeout and the request
	if account.Notifiable() {
		s.notifier.Notify(context.WithoutCancel(ctx), notify.DepositEvent(account, res.Amount, res.GoalReached))
	}

	return res, nil
}

// ApproveTransaction approves a deposit known only by its own id
func (s *Service) ApproveTransaction(ctx context.Context, admin *model.Admin, transactionID int64) (*model.ApprovalResult, error) {
	accountID, err := s.accountOf(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return s.ApproveDeposit(ctx, admin, accountID, transactionID)
}

// RejectDeposit closes a pending deposit without touching the balance
func (s *Service) RejectDeposit(ctx context.Context, admin *model.Admin, accountID, transactionID int64, reason string) (*model.Transaction, error) {
	l := s.log(ctx, admin, "Savings.Processor", "RejectDeposit")
	ctx = l.WithContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res *model.Transaction

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		// account first, same lock order as approval
		if _, err := s.repos.Accounts.TxLock(ctx, tx, model.AccountByID(accountID)); err != nil {
			return err
		}

		t, err := s.repos.Transactions.TxLock(ctx, tx, accountID, transactionID)
		if err != nil {
			return err
		}

		if !t.Pending() {
			return invalidState("transaction %d is %s", t.ID, t.Status)
		}

		t.Reject(admin, strings.TrimSpace(reason), s.now())

		if err := s.repos.Transactions.TxUpdateStatus(ctx, tx, t, model.TransactionStatusPending); err != nil {
			return err
		}

		res = t
		return nil
	})
	if err != nil {
		l.Debug().Err(err).Int64("savings_id", accountID).Int64("transaction_id", transactionID).Msg("Reject failed")
		return nil, err
	}

	l.Info().
		Int64("savings_id", accountID).
		Int64("transaction_id", res.ID).
		Str("reason", res.RejectionReason).
		Msg("Deposit rejected")

	return res, nil
}

// RejectTransaction rejects a deposit known only by its own id
func (s *Service) RejectTransaction(ctx context.Context, admin *model.Admin, transactionID int64, reason string) (*model.Transaction, error) {
	accountID, err := s.accountOf(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return s.RejectDeposit(ctx, admin, accountID, transactionID, reason)
}

func (s *Service) accountOf(ctx context.Context, transactionID int64) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, err := s.repos.Transactions.ReadAccountID(ctx, transactionID)
	return id, unavailable(ctx, err)
}
