package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// money goes out as JSON numbers, the admin UI does arithmetic on them
	decimal.MarshalJSONWithoutQuotes = true
}

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusCompleted AccountStatus = "completed"
	AccountStatusCancelled AccountStatus = "cancelled"
	AccountStatusExpired   AccountStatus = "expired"
)

// AccountStatuses in list ordering priority
var AccountStatuses = []AccountStatus{
	AccountStatusActive,
	AccountStatusCompleted,
	AccountStatusCancelled,
	AccountStatusExpired,
}

func (s AccountStatus) Valid() bool {
	for _, v := range AccountStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Account is a customer's goal savings commitment toward a product
type Account struct {
	ID             int64
	AccountNo      string
	CustomerID     *int64
	ChannelID      *int64
	ChannelName    string
	Platform       string
	ExternalUserID string
	ProductRefID   string
	ProductName    string
	TargetAmount   decimal.Decimal
	CurrentAmount  decimal.Decimal
	Status         AccountStatus
	TargetDate     *time.Time
	OrderID        *int64
	AdminNotes     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// Progress of the account toward its target
func (a *Account) Progress() (percent, remaining decimal.Decimal) {
	return Progress(a.CurrentAmount, a.TargetAmount)
}

// Notifiable reports whether the customer can be reached on a chat platform
func (a *Account) Notifiable() bool {
	return a.Platform != "" && a.ExternalUserID != ""
}

// AppendNote adds a line to the admin notes, keeping what was written before
func (a *Account) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if a.AdminNotes == "" {
		a.AdminNotes = note
		return
	}
	a.AdminNotes = a.AdminNotes + "\n" + note
}

// Credit adds amount to the balance and returns the new balance.
// When completeOnGoal is set and the target is reached the account becomes completed.
func (a *Account) Credit(amount decimal.Decimal, completeOnGoal bool, now time.Time) (decimal.Decimal, bool) {
	a.CurrentAmount = a.CurrentAmount.Add(amount)
	a.UpdatedAt = now

	goalReached := a.CurrentAmount.GreaterThanOrEqual(a.TargetAmount)
	if goalReached && completeOnGoal {
		a.MarkCompleted(now)
	}

	return a.CurrentAmount, goalReached
}

func (a *Account) MarkCompleted(now time.Time) {
	a.Status = AccountStatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
}

// AccountSummary is a list row
type AccountSummary struct {
	Account
	PendingCount  int
	PendingAmount decimal.Decimal
}

type AccountFilter struct {
	Status      AccountStatus
	Platform    string
	Search      string
	PendingOnly bool
	Limit       int
	Offset      int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Normalize applies pagination defaults and bounds
func (f AccountFilter) Normalize() AccountFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

type AccountPage struct {
	Accounts []*AccountSummary
	Total    int
	Limit    int
	Offset   int
}

func (p *AccountPage) HasMore() bool {
	return p.Offset+p.Limit < p.Total
}

// AccountDetail is an account with its history and linked records
type AccountDetail struct {
	Account      *Account
	Transactions []*Transaction
	Case         *Case
	Order        *Order
}

type Stats struct {
	Total           int
	Active          int
	TotalAmount     decimal.Decimal
	NearDue         int
	Overdue         int
	PendingDeposits int
	PendingAmount   decimal.Decimal
}
