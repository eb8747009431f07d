package app

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"savingsdesk/internal/app/config"
	"savingsdesk/internal/app/handler"
	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/notify"
	"savingsdesk/internal/app/service/dispatch"
	"savingsdesk/internal/app/service/savings"
	"savingsdesk/internal/app/session"
	"savingsdesk/internal/app/storage/postgres"
	"savingsdesk/pkg/push"
)

type App struct {
	config   config.Config
	logger   logger.Logger
	db       *sql.DB
	session  session.Reader
	savings  handler.SavingsService
	dispatch *dispatch.Service
	closers  []io.Closer
	stopOnce sync.Once
}

func New(cfg config.Config, l logger.Logger, e embed.FS) (_ *App, err error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	defer func() {
		if err != nil {
			_ = db.Close()
		}
	}()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxOpenConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.StoreTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := applyMigrations(e, db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	repos, err := postgres.NewRepositories(db)
	if err != nil {
		return nil, err
	}

	admins, err := postgres.NewAdminRepository(db)
	if err != nil {
		return nil, fmt.Errorf("admin repository init: %w", err)
	}

	a := &App{
		config: cfg,
		logger: l,
		db:     db,
		session: session.NewJWT(cfg.Auth.SecretKey, admins,
			session.WithIssuer(cfg.Auth.Issuer),
			session.WithTokenLifetime(cfg.Auth.TokenLifetime),
		),
	}

	dispatcher, err := a.newDispatcher(cfg)
	if err != nil {
		return nil, err
	}

	a.dispatch = dispatch.New(dispatcher,
		dispatch.WithLogger(l),
		dispatch.WithWorkers(cfg.Notify.Workers),
		dispatch.WithQueueSize(cfg.Notify.QueueSize),
		dispatch.WithRetry(cfg.Notify.MaxAttempts, cfg.Notify.RetryDelay),
	)
	a.dispatch.Start()

	a.savings = savings.New(db, repos, a.dispatch, savings.WithTimeout(cfg.Database.StoreTimeout))

	return a, nil
}

// newDispatcher builds the configured delivery driver, de-duplicated through Redis when it is set up
func (a *App) newDispatcher(cfg config.Config) (notify.Dispatcher, error) {
	var d notify.Dispatcher

	switch cfg.Notify.Driver {
	case config.NotifyDriverPush:
		ps, err := push.NewService(cfg.Push.RemoteURL,
			push.WithLogger(a.logger.Logger),
			push.WithHTTPClient(&http.Client{Timeout: cfg.Push.Timeout}),
		)
		if err != nil {
			return nil, fmt.Errorf("push client init: %w", err)
		}
		d = notify.NewPushDispatcher(ps)
	case config.NotifyDriverAMQP:
		ad, err := notify.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return nil, fmt.Errorf("amqp init: %w", err)
		}
		a.closers = append(a.closers, ad)
		d = ad
	default:
		d = notify.NewLogDispatcher(a.logger.Logger)
	}

	if cfg.Redis.Addr == "" {
		return d, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	a.closers = append(a.closers, rdb)

	return notify.NewDedupDispatcher(d, rdb, cfg.Redis.DedupTTL, a.logger.Logger), nil
}

// Stop drains notification workers and releases connections
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.logger.Info().Msg("Shutting down application")

		if a.dispatch != nil {
			a.dispatch.Stop()
		}

		for _, c := range a.closers {
			if err := c.Close(); err != nil {
				a.logger.Warn().Err(err).Msg("Close failed")
			}
		}

		if a.db != nil {
			_ = a.db.Close()
		}
	})
}
