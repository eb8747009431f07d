package savings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
)

// ListAccounts returns one page of accounts and the total matching the filter
func (s *Service) ListAccounts(ctx context.Context, f model.AccountFilter) (*model.AccountPage, error) {
	f = f.Normalize()
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("status %q: %w", f.Status, apperr.ErrInvalidInput)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	accounts, total, err := s.repos.Accounts.List(ctx, f)
	if err != nil {
		return nil, unavailable(ctx, err)
	}

	return &model.AccountPage{
		Accounts: accounts,
		Total:    total,
		Limit:    f.Limit,
		Offset:   f.Offset,
	}, nil
}

// GetAccountDetail returns the account with history, latest case and linked order
func (s *Service) GetAccountDetail(ctx context.Context, id int64) (*model.AccountDetail, error) {
	l := s.log(ctx, nil, "Savings.Query", "GetAccountDetail")

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.repos.Accounts.Read(ctx, id)
	if err != nil {
		return nil, unavailable(ctx, err)
	}

	txs, err := s.repos.Transactions.AllByAccountID(ctx, id)
	if err != nil {
		return nil, unavailable(ctx, err)
	}

	res := &model.AccountDetail{
		Account:      a,
		Transactions: txs,
	}

	c, err := s.repos.Cases.LatestByAccountID(ctx, id)
	switch {
	case err == nil:
		res.Case = c
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, unavailable(ctx, err)
	}

	if a.OrderID != nil {
		o, err := s.repos.Orders.Read(ctx, *a.OrderID)
		switch {
		case err == nil:
			res.Order = o
		case errors.Is(err, apperr.ErrNotFound):
			l.Warn().Int64("savings_id", id).Int64("order_id", *a.OrderID).Msg("Linked order is missing")
		default:
			return nil, unavailable(ctx, err)
		}
	}

	return res, nil
}

// GetStats aggregates the whole book as of today
func (s *Service) GetStats(ctx context.Context) (*model.Stats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	res, err := s.repos.Accounts.Stats(ctx, today)
	if err != nil {
		return nil, unavailable(ctx, err)
	}

	return res, nil
}
