package savings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/model"
	"savingsdesk/internal/app/notify"
	"savingsdesk/internal/app/storage"
	"savingsdesk/internal/app/storage/postgres"
)

// maxTxAttempts a unit of work is replayed after serialization failures
const maxTxAttempts = 3

// Service is the back-office side of goal savings accounts
type Service struct {
	db       *sql.DB
	repos    storage.Repositories
	notifier notify.Notifier
	timeout  time.Duration
	now      func() time.Time
}

func New(db *sql.DB, repos storage.Repositories, n notify.Notifier, opts ...Option) *Service {
	s := &Service{
		db:       db,
		repos:    repos,
		notifier: n,
		timeout:  5 * time.Second,
		now:      time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	if s.notifier == nil {
		s.notifier = notify.Nop
	}

	return s
}

type Option func(s *Service)

// WithTimeout bounds every store operation
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func (s *Service) log(ctx context.Context, admin *model.Admin, component, method string) logger.Logger {
	l := logger.Get(ctx, component)
	if admin != nil {
		l = l.WithAdmin(admin.ID)
	}
	return logger.Logger{Logger: l.With().Str("method", method).Logger()}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// inTx runs fn in a serializable transaction, replaying it on serialization failures and deadlocks
func (s *Service) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !postgres.IsRetryable(err) {
			break
		}
		l := logger.Ctx(ctx)
		l.Debug().Err(err).Int("attempt", attempt).Msg("Transaction conflict, replaying")
	}

	return unavailable(ctx, err)
}

func (s *Service) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("tx begin: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}

	return nil
}

// unavailable marks failures caused by the store timeout
func unavailable(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, apperr.ErrUnavailable) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}

	return err
}

func invalidState(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperr.ErrInvalidState)
}
