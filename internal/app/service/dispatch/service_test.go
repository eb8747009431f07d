package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/notify"
	"savingsdesk/internal/app/notify/mock"
)

func TestService_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mock.NewMockDispatcher(ctrl)

	done := make(chan struct{})
	e := notify.Event{ID: "e-1", Type: notify.EventGoalReached}
	d.EXPECT().Send(gomock.Any(), e).DoAndReturn(func(context.Context, notify.Event) error {
		close(done)
		return nil
	})

	s := New(d, WithLogger(logger.Nop()))
	s.Start()
	defer s.Stop()

	s.Notify(context.Background(), e)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestService_Retry(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mock.NewMockDispatcher(ctrl)

	done := make(chan struct{})
	e := notify.Event{ID: "e-2"}
	gomock.InOrder(
		d.EXPECT().Send(gomock.Any(), e).Return(errors.New("gateway down")),
		d.EXPECT().Send(gomock.Any(), e).DoAndReturn(func(context.Context, notify.Event) error {
			close(done)
			return nil
		}),
	)

	s := New(d, WithLogger(logger.Nop()), WithRetry(3, time.Millisecond))
	s.Start()
	defer s.Stop()

	s.Notify(context.Background(), e)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notification not retried")
	}
}

func TestService_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mock.NewMockDispatcher(ctrl)

	var calls int32
	d.EXPECT().Send(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(func(context.Context, notify.Event) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("gateway down")
	})

	s := New(d, WithLogger(logger.Nop()), WithRetry(2, time.Millisecond))
	s.Start()

	s.Notify(context.Background(), notify.Event{ID: "e-3"})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 2
	}, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	s.Stop()
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestService_QueueFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mock.NewMockDispatcher(ctrl)

	s := New(d, WithLogger(logger.Nop()), WithQueueSize(1))

	start := time.Now()
	s.Notify(context.Background(), notify.Event{ID: "e-4"})
	s.Notify(context.Background(), notify.Event{ID: "e-5"})

	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Len(t, s.jobs, 1)
}

func TestService_NotifyAfterStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := mock.NewMockDispatcher(ctrl)

	s := New(d, WithLogger(logger.Nop()))
	s.Start()
	s.Stop()

	s.Notify(context.Background(), notify.Event{ID: "e-6"})
	assert.Len(t, s.jobs, 0)
}
