package notify

//go:generate mockgen -destination=./mock/notify.go -package=mock savingsdesk/internal/app/notify Dispatcher,Notifier

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"savingsdesk/internal/app/model"
)

type EventType string

const (
	EventDepositVerified EventType = "savings_deposit_verified"
	EventGoalReached     EventType = "savings_goal_reached"
)

// Event is a customer notification about a savings account
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	Platform       string      `json:"platform"`
	ExternalUserID string      `json:"external_user_id"`
	ChannelID      *int64      `json:"channel_id,omitempty"`
	Payload        interface{} `json:"payload"`
}

type DepositVerifiedPayload struct {
	AccountNo       string          `json:"account_no"`
	ProductName     string          `json:"product_name"`
	Amount          decimal.Decimal `json:"amount"`
	SavedAmount     decimal.Decimal `json:"saved_amount"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
}

type GoalReachedPayload struct {
	AccountNo    string          `json:"account_no"`
	ProductName  string          `json:"product_name"`
	SavedAmount  decimal.Decimal `json:"saved_amount"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// NewEvent addressed to the account owner
func NewEvent(t EventType, a *model.Account, payload interface{}) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           t,
		Platform:       a.Platform,
		ExternalUserID: a.ExternalUserID,
		ChannelID:      a.ChannelID,
		Payload:        payload,
	}
}

// DepositEvent picks the event for an approved deposit
func DepositEvent(a *model.Account, amount decimal.Decimal, goalReached bool) Event {
	if goalReached {
		return NewEvent(EventGoalReached, a, GoalReachedPayload{
			AccountNo:    a.AccountNo,
			ProductName:  a.ProductName,
			SavedAmount:  a.CurrentAmount,
			TargetAmount: a.TargetAmount,
		})
	}

	percent, remaining := a.Progress()
	return NewEvent(EventDepositVerified, a, DepositVerifiedPayload{
		AccountNo:       a.AccountNo,
		ProductName:     a.ProductName,
		Amount:          amount,
		SavedAmount:     a.CurrentAmount,
		TargetAmount:    a.TargetAmount,
		RemainingAmount: remaining,
		ProgressPercent: percent,
	})
}

// Dispatcher delivers a single event synchronously
type Dispatcher interface {
	Send(ctx context.Context, e Event) error
}

// Notifier accepts an event for delivery and never blocks the caller
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, e Event)

func (f NotifierFunc) Notify(ctx context.Context, e Event) {
	f(ctx, e)
}

// Nop drops every event
var Nop Notifier = NotifierFunc(func(context.Context, Event) {})
