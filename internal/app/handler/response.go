package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"savingsdesk/internal/app/model"
)

const dateLayout = "2006-01-02"

type accountResponse struct {
	ID              int64               `json:"id"`
	AccountNo       string              `json:"account_no"`
	CustomerID      *int64              `json:"customer_id"`
	ChannelID       *int64              `json:"channel_id"`
	ChannelName     string              `json:"channel_name,omitempty"`
	Platform        string              `json:"platform"`
	ExternalUserID  string              `json:"external_user_id"`
	ProductRefID    string              `json:"product_ref_id"`
	ProductName     string              `json:"product_name"`
	TargetAmount    decimal.Decimal     `json:"target_amount"`
	CurrentAmount   decimal.Decimal     `json:"current_amount"`
	ProgressPercent decimal.Decimal     `json:"progress_percent"`
	RemainingAmount decimal.Decimal     `json:"remaining_amount"`
	Status          model.AccountStatus `json:"status"`
	TargetDate      *string             `json:"target_date"`
	OrderID         *int64              `json:"order_id"`
	AdminNotes      *string             `json:"admin_notes"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	CompletedAt     *time.Time          `json:"completed_at"`
}

func newAccountResponse(a *model.Account) accountResponse {
	percent, remaining := a.Progress()

	res := accountResponse{
		ID:              a.ID,
		AccountNo:       a.AccountNo,
		CustomerID:      a.CustomerID,
		ChannelID:       a.ChannelID,
		ChannelName:     a.ChannelName,
		Platform:        a.Platform,
		ExternalUserID:  a.ExternalUserID,
		ProductRefID:    a.ProductRefID,
		ProductName:     a.ProductName,
		TargetAmount:    a.TargetAmount,
		CurrentAmount:   a.CurrentAmount,
		ProgressPercent: percent,
		RemainingAmount: remaining,
		Status:          a.Status,
		OrderID:         a.OrderID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		CompletedAt:     a.CompletedAt,
	}

	if a.TargetDate != nil {
		d := a.TargetDate.Format(dateLayout)
		res.TargetDate = &d
	}

	if a.AdminNotes != "" {
		notes := a.AdminNotes
		res.AdminNotes = &notes
	}

	return res
}

type accountSummaryResponse struct {
	accountResponse
	PendingCount  int             `json:"pending_count"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

type transactionResponse struct {
	ID              int64                   `json:"id"`
	TransactionNo   string                  `json:"transaction_no"`
	Type            model.TransactionType   `json:"transaction_type"`
	Amount          decimal.Decimal         `json:"amount"`
	BalanceAfter    decimal.NullDecimal     `json:"balance_after"`
	PaymentID       *int64                  `json:"payment_id"`
	Status          model.TransactionStatus `json:"status"`
	VerifiedBy      *int64                  `json:"verified_by"`
	VerifiedAt      *time.Time              `json:"verified_at"`
	RejectionReason string                  `json:"rejection_reason,omitempty"`
	Notes           string                  `json:"notes,omitempty"`
	SlipImageURL    string                  `json:"slip_image_url,omitempty"`
	SlipVerifiedAt  *time.Time              `json:"slip_verified_at"`
	CreatedAt       time.Time               `json:"created_at"`
}

func newTransactionResponse(t *model.Transaction) transactionResponse {
	return transactionResponse{
		ID:              t.ID,
		TransactionNo:   t.TransactionNo,
		Type:            t.Type,
		Amount:          t.Amount,
		BalanceAfter:    t.BalanceAfter,
		PaymentID:       t.PaymentID,
		Status:          t.Status,
		VerifiedBy:      t.VerifiedBy,
		VerifiedAt:      t.VerifiedAt,
		RejectionReason: t.RejectionReason,
		Notes:           t.Notes,
		SlipImageURL:    t.SlipImageURL,
		SlipVerifiedAt:  t.SlipVerifiedAt,
		CreatedAt:       t.CreatedAt,
	}
}

type accountDetailResponse struct {
	accountResponse
	Transactions []transactionResponse `json:"transactions"`
	Case         *model.Case           `json:"case"`
	Order        *model.Order          `json:"order"`
}

func newAccountDetailResponse(d *model.AccountDetail) accountDetailResponse {
	res := accountDetailResponse{
		accountResponse: newAccountResponse(d.Account),
		Transactions:    make([]transactionResponse, 0, len(d.Transactions)),
		Case:            d.Case,
		Order:           d.Order,
	}

	for _, t := range d.Transactions {
		res.Transactions = append(res.Transactions, newTransactionResponse(t))
	}

	return res
}

type approvalResponse struct {
	SavingsID       int64               `json:"savings_id"`
	TransactionID   int64               `json:"transaction_id"`
	Amount          decimal.Decimal     `json:"amount"`
	NewBalance      decimal.Decimal     `json:"new_balance"`
	TargetAmount    decimal.Decimal     `json:"target_amount"`
	ProgressPercent decimal.Decimal     `json:"progress_percent"`
	RemainingAmount decimal.Decimal     `json:"remaining_amount"`
	GoalReached     bool                `json:"goal_reached"`
	Status          model.AccountStatus `json:"status"`
}

func newApprovalResponse(r *model.ApprovalResult) approvalResponse {
	return approvalResponse{
		SavingsID:       r.AccountID,
		TransactionID:   r.TransactionID,
		Amount:          r.Amount,
		NewBalance:      r.NewBalance,
		TargetAmount:    r.TargetAmount,
		ProgressPercent: r.ProgressPercent,
		RemainingAmount: r.RemainingAmount,
		GoalReached:     r.GoalReached,
		Status:          r.Status,
	}
}

type statsResponse struct {
	Total           int             `json:"total"`
	Active          int             `json:"active"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	NearDue         int             `json:"near_due"`
	Overdue         int             `json:"overdue"`
	PendingDeposits int             `json:"pending_deposits"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
}
