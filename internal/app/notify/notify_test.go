package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savingsdesk/internal/app/model"
	"savingsdesk/pkg/push"
)

func testAccount() *model.Account {
	channelID := int64(7)
	return &model.Account{
		ID:             1,
		AccountNo:      "SAV-0001",
		ChannelID:      &channelID,
		Platform:       "line",
		ExternalUserID: "U123",
		ProductName:    "Rolex",
		TargetAmount:   decimal.NewFromInt(1000),
		CurrentAmount:  decimal.NewFromInt(400),
		Status:         model.AccountStatusActive,
	}
}

func TestDepositEvent(t *testing.T) {
	a := testAccount()

	e := DepositEvent(a, decimal.NewFromInt(300), false)
	assert.Equal(t, EventDepositVerified, e.Type)
	assert.Equal(t, "U123", e.ExternalUserID)
	assert.NotEmpty(t, e.ID)

	p, ok := e.Payload.(DepositVerifiedPayload)
	require.True(t, ok)
	assert.Equal(t, "600", p.RemainingAmount.String())
	assert.Equal(t, "40", p.ProgressPercent.String())
	assert.Equal(t, "300", p.Amount.String())

	a.CurrentAmount = decimal.NewFromInt(1000)
	e = DepositEvent(a, decimal.NewFromInt(600), true)
	assert.Equal(t, EventGoalReached, e.Type)
	g, ok := e.Payload.(GoalReachedPayload)
	require.True(t, ok)
	assert.Equal(t, "Rolex", g.ProductName)
}

type fakePush struct {
	in  *push.SendRequest
	out push.SendResponse
	err error
}

func (f *fakePush) Send(_ context.Context, in *push.SendRequest, out *push.SendResponse) error {
	f.in = in
	*out = f.out
	return f.err
}

func TestPushDispatcher_Send(t *testing.T) {
	f := &fakePush{out: push.SendResponse{Success: true}}
	d := NewPushDispatcher(f)

	e := DepositEvent(testAccount(), decimal.NewFromInt(100), false)
	require.NoError(t, d.Send(context.Background(), e))
	assert.Equal(t, e.ID, f.in.EventID)
	assert.Equal(t, "savings_deposit_verified", f.in.Type)
	assert.Equal(t, int64(7), *f.in.ChannelID)

	f.out = push.SendResponse{Success: false, Error: "blocked"}
	assert.Error(t, d.Send(context.Background(), e))

	f.err = errors.New("boom")
	assert.Error(t, d.Send(context.Background(), e))
}

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return nil
}

func TestAMQPDispatcher_Send(t *testing.T) {
	p := &fakePublisher{}
	d := newAMQPDispatcher(p, DefaultExchange)

	e := DepositEvent(testAccount(), decimal.NewFromInt(100), false)
	require.NoError(t, d.Send(context.Background(), e))

	assert.Equal(t, "savings_events", p.exchange)
	assert.Equal(t, "savings_deposit_verified", p.key)
	assert.Equal(t, e.ID, p.msg.MessageId)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(p.msg.Body, &got))
	assert.Equal(t, "U123", got["external_user_id"])
}

type fakeDedup struct {
	keys   map[string]bool
	setErr error
}

func (f *fakeDedup) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if f.keys[key] {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = true
	return redis.NewBoolResult(true, nil)
}

func (f *fakeDedup) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.keys, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type countingDispatcher struct {
	calls int
	err   error
}

func (c *countingDispatcher) Send(context.Context, Event) error {
	c.calls++
	return c.err
}

func TestDedupDispatcher_Send(t *testing.T) {
	store := &fakeDedup{keys: map[string]bool{}}
	next := &countingDispatcher{}
	d := NewDedupDispatcher(next, store, time.Hour, zerolog.Nop())

	e := Event{ID: "e-1", Type: EventGoalReached}
	require.NoError(t, d.Send(context.Background(), e))
	require.NoError(t, d.Send(context.Background(), e))
	assert.Equal(t, 1, next.calls)
}

func TestDedupDispatcher_ReleasesOnFailure(t *testing.T) {
	store := &fakeDedup{keys: map[string]bool{}}
	next := &countingDispatcher{err: errors.New("gateway down")}
	d := NewDedupDispatcher(next, store, time.Hour, zerolog.Nop())

	e := Event{ID: "e-2", Type: EventGoalReached}
	assert.Error(t, d.Send(context.Background(), e))

	next.err = nil
	require.NoError(t, d.Send(context.Background(), e))
	assert.Equal(t, 2, next.calls)
}

func TestDedupDispatcher_StoreDown(t *testing.T) {
	store := &fakeDedup{keys: map[string]bool{}, setErr: errors.New("connection refused")}
	next := &countingDispatcher{}
	d := NewDedupDispatcher(next, store, time.Hour, zerolog.Nop())

	require.NoError(t, d.Send(context.Background(), Event{ID: "e-3"}))
	assert.Equal(t, 1, next.calls)
}
