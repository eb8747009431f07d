package savings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/storage"
)

const (
	cancelNote         = "Cancelled by admin"
	manualDepositNote  = "Manual deposit by admin"
	transactionNoTries = 3
)

// Cancel closes an active account and sweeps its pending deposits.
// The refund amount is advisory; no money is moved.
func (s *Service) Cancel(ctx context.Context, admin *model.Admin, accountID int64, reason string) (*model.CancelResult, error) {
	l := s.log(ctx, admin, "Savings.Lifecycle", "Cancel")
	ctx = l.WithContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res *model.CancelResult

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		a, err := s.repos.Accounts.TxLock(ctx, tx, model.AccountByID(accountID))
		if err != nil {
			return err
		}

		if a.Status != model.AccountStatusActive {
			return invalidState("savings account %d is %s", a.ID, a.Status)
		}

		now := s.now()
		note := cancelNote
		if reason = strings.TrimSpace(reason); reason != "" {
			note += ": " + reason
		}
		a.AppendNote(note)
		a.Status = model.AccountStatusCancelled
		a.UpdatedAt = now

		if err := s.repos.Accounts.TxUpdate(ctx, tx, a); err != nil {
			return err
		}

		n, err := s.repos.Transactions.TxCancelPending(ctx, tx, a.ID, now)
		if err != nil {
			return err
		}

		res = &model.CancelResult{
			Account:               a,
			RefundAmount:          a.CurrentAmount,
			CancelledTransactions: n,
		}
		return nil
	})
	if err != nil {
		l.Debug().Err(err).Int64("savings_id", accountID).Msg("Cancel failed")
		return nil, err
	}

	l.Info().
		Int64("savings_id", accountID).
		Int64("cancelled_transactions", res.CancelledTransactions).
		Str("refund_amount", res.RefundAmount.String()).
		Msg("Savings account cancelled")

	return res, nil
}

// Complete closes an active account as fulfilled regardless of its balance.
// Notes replace whatever was written before.
func (s *Service) Complete(ctx context.Context, admin *model.Admin, accountID int64, notes string) (*model.Account, error) {
	l := s.log(ctx, admin, "Savings.Lifecycle", "Complete")
	ctx = l.WithContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res *model.Account

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		a, err := s.repos.Accounts.TxLock(ctx, tx, model.AccountByID(accountID))
		if err != nil {
			return err
		}

		if a.Status != model.AccountStatusActive {
			return invalidState("savings account %d is %s", a.ID, a.Status)
		}

		a.MarkCompleted(s.now())
		a.AdminNotes = strings.TrimSpace(notes)

		if err := s.repos.Accounts.TxUpdate(ctx, tx, a); err != nil {
			return err
		}

		res = a
		return nil
	})
	if err != nil {
		l.Debug().Err(err).Int64("savings_id", accountID).Msg("Complete failed")
		return nil, err
	}

	l.Info().Int64("savings_id", accountID).Msg("Savings account completed")

	return res, nil
}

// ManualDeposit credits an active account directly with an already verified deposit.
// Unlike approval it never completes the account, even past the target.
func (s *Service) ManualDeposit(ctx context.Context, admin *model.Admin, key model.AccountKey, amount decimal.Decimal, notes string) (*model.DepositResult, error) {
	l := s.log(ctx, admin, "Savings.Lifecycle", "ManualDeposit")
	ctx = l.WithContext(ctx)

	if err := model.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if notes = strings.TrimSpace(notes); notes == "" {
		notes = manualDepositNote
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		res *model.DepositResult
		err error
	)

	// a colliding transaction number is retried with a fresh one
	for attempt := 1; attempt <= transactionNoTries; attempt++ {
		res, err = s.manualDeposit(ctx, admin, key, amount, notes)
		if !errors.Is(err, storage.ErrTransactionNoTaken) {
			break
		}
		l.Debug().Err(err).Int("attempt", attempt).Msg("Transaction number taken")
	}
	if err != nil {
		l.Debug().Err(err).Str("savings", key.String()).Msg("Manual deposit failed")
		return nil, err
	}

	l.Info().
		Int64("savings_id", res.Account.ID).
		Str("transaction_no", res.Transaction.TransactionNo).
		Str("new_balance", res.Account.CurrentAmount.String()).
		Msg("Manual deposit recorded")

	return res, nil
}

func (s *Service) manualDeposit(ctx context.Context, admin *model.Admin, key model.AccountKey, amount decimal.Decimal, notes string) (*model.DepositResult, error) {
	var res *model.DepositResult

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		a, err := s.repos.Accounts.TxLock(ctx, tx, key)
		if err != nil {
			return err
		}

		if a.Status != model.AccountStatusActive {
			return invalidState("savings account %d is %s", a.ID, a.Status)
		}

		if a.CurrentAmount.Add(amount).GreaterThan(model.MaxAmount) {
			return fmt.Errorf("balance of savings account %d would exceed %s: %w", a.ID, model.MaxAmount, apperr.ErrInvalidInput)
		}

		now := s.now()
		balance, _ := a.Credit(amount, false, now)

		t := &model.Transaction{
			TransactionNo: newTransactionNo(now),
			AccountID:     a.ID,
			Type:          model.TransactionTypeDeposit,
			Amount:        amount,
			Notes:         notes,
			CreatedAt:     now,
		}
		t.Verify(admin, balance, now)

		if t, err = s.repos.Transactions.TxCreate(ctx, tx, t); err != nil {
			return err
		}

		if err := s.repos.Accounts.TxUpdate(ctx, tx, a); err != nil {
			return err
		}

		res = &model.DepositResult{Account: a, Transaction: t}
		return nil
	})

	return res, err
}

// UpdateStatus sets any status from any status. Completing stamps completed_at.
func (s *Service) UpdateStatus(ctx context.Context, admin *model.Admin, key model.AccountKey, status model.AccountStatus) (*model.Account, error) {
	l := s.log(ctx, admin, "Savings.Lifecycle", "UpdateStatus")
	ctx = l.WithContext(ctx)

	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, apperr.ErrInvalidInput)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res *model.Account

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		a, err := s.repos.Accounts.TxLock(ctx, tx, key)
		if err != nil {
			return err
		}

		now := s.now()
		if status == model.AccountStatusCompleted {
			a.MarkCompleted(now)
		} else {
			a.Status = status
			a.UpdatedAt = now
		}

		if err := s.repos.Accounts.TxUpdate(ctx, tx, a); err != nil {
			return err
		}

		res = a
		return nil
	})
	if err != nil {
		l.Debug().Err(err).Str("savings", key.String()).Msg("Status update failed")
		return nil, err
	}

	l.Info().
		Int64("savings_id", res.ID).
		Str("status", string(res.Status)).
		Msg("Savings status updated")

	return res, nil
}

// newTransactionNo is SAVTX-<date>-<6 chars of a globally unique id>
func newTransactionNo(now time.Time) string {
	id := strings.ToUpper(xid.New().String())
	return "SAVTX-" + now.Format("20060102") + "-" + id[len(id)-6:]
}
