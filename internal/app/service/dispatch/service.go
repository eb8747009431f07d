package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/notify"
)

type job struct {
	id      uuid.UUID
	event   notify.Event
	attempt int
}

// Service delivers notifications in background workers.
// Notify never blocks: when the queue is full the event is dropped and logged.
type Service struct {
	logger     logger.Logger
	dispatcher notify.Dispatcher

	jobs   chan job
	stopCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup

	workers     int
	queueSize   int
	maxAttempts int
	retryDelay  time.Duration
	sendTimeout time.Duration
}

var _ notify.Notifier = (*Service)(nil)

func (s *Service) LoggerComponent() string {
	return "Dispatch.Service"
}

func New(d notify.Dispatcher, opts ...Option) *Service {
	s := &Service{
		logger:      logger.Global().Component("Dispatch.Service"),
		dispatcher:  d,
		workers:     2,
		queueSize:   256,
		maxAttempts: 3,
		retryDelay:  2 * time.Second,
		sendTimeout: 30 * time.Second,
		stopCh:      make(chan struct{}),
	}

	for _, o := range opts {
		o(s)
	}
	s.jobs = make(chan job, s.queueSize)

	return s
}

type Option func(s *Service)

func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithRetry sets total delivery attempts per event and the base delay, doubled after each failure
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(s *Service) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		s.retryDelay = delay
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = l.Component(s)
	}
}

func (s *Service) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func(workerID int, l logger.Logger) {
			defer s.wg.Done()
			for {
				select {
				case <-s.stopCh:
					return
				case j := <-s.jobs:
					s.run(l.With().Int("worker_id", workerID).Logger(), j)
				}
			}
		}(i, s.logger)
	}
}

// Stop waits for running deliveries; queued and scheduled retries are dropped
func (s *Service) Stop() {
	s.once.Do(func() {
		s.logger.Debug().Msg("Service shutdown")
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Service) Notify(_ context.Context, e notify.Event) {
	s.enqueue(job{id: uuid.New(), event: e, attempt: 1})
}

func (s *Service) enqueue(j job) {
	select {
	case <-s.stopCh:
		s.logger.Warn().Str("event_id", j.event.ID).Msg("Dispatcher stopped, notification dropped")
		return
	default:
	}

	select {
	case s.jobs <- j:
	default:
		s.logger.Error().
			Str("event_id", j.event.ID).
			Str("type", string(j.event.Type)).
			Msg("Notification queue full, dropped")
	}
}

func (s *Service) run(zl zerolog.Logger, j job) {
	ll := zl.With().
		Str("job_id", j.id.String()).
		Str("event_id", j.event.ID).
		Int("attempt", j.attempt).
		Logger()

	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()
	ctx = ll.WithContext(ctx)

	err := s.dispatcher.Send(ctx, j.event)
	if err == nil {
		ll.Debug().Msg("Notification sent")
		return
	}

	if j.attempt >= s.maxAttempts {
		ll.Error().Err(err).Msg("Notification failed, giving up")
		return
	}

	delay := s.retryDelay << (j.attempt - 1)
	ll.Warn().Err(err).Dur("retry_in", delay).Msg("Notification failed, retrying")

	j.attempt++
	time.AfterFunc(delay, func() {
		s.enqueue(j)
	})
}
