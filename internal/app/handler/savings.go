package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"savingsdesk/internal/app/logger"
	"savingsdesk/internal/app/model"
)

type SavingsHandler struct {
	savings SavingsService
}

func NewSavingsHandler(savings SavingsService) *SavingsHandler {
	return &SavingsHandler{
		savings: savings,
	}
}

// List accounts, or the book statistics when stats=1
func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("stats") == "1" {
		h.Stats(w, r)
		return
	}

	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.List")

	page, err := h.savings.ListAccounts(ctx, model.AccountFilter{
		Status:      model.AccountStatus(q.Get("status")),
		Platform:    q.Get("platform"),
		Search:      q.Get("search"),
		PendingOnly: q.Get("pending_deposits") == "1",
		Limit:       queryInt(q.Get("limit")),
		Offset:      queryInt(q.Get("offset")),
	})
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	rows := make([]accountSummaryResponse, 0, len(page.Accounts))
	for _, a := range page.Accounts {
		rows = append(rows, accountSummaryResponse{
			accountResponse: newAccountResponse(&a.Account),
			PendingCount:    a.PendingCount,
			PendingAmount:   a.PendingAmount,
		})
	}

	WriteResponse(w, &Response{
		Success: true,
		Data:    rows,
		Pagination: &Pagination{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.HasMore(),
		},
	}, http.StatusOK)
}

func (h *SavingsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.Stats")

	s, err := h.savings.GetStats(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{
		Success: true,
		Data: statsResponse{
			Total:           s.Total,
			Active:          s.Active,
			TotalAmount:     s.TotalAmount,
			NearDue:         s.NearDue,
			Overdue:         s.Overdue,
			PendingDeposits: s.PendingDeposits,
			PendingAmount:   s.PendingAmount,
		},
	}, http.StatusOK)
}

func (h *SavingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.Get")

	id, ok := pathID(chi.URLParam(r, "savingsID"))
	if !ok {
		WriteError(w, "Invalid savings id", http.StatusBadRequest)
		return
	}

	d, err := h.savings.GetAccountDetail(ctx, id)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	l.Debug().Msgf("response json: %s", jsonString(d.Account))

	WriteResponse(w, &Response{Success: true, Data: newAccountDetailResponse(d)}, http.StatusOK)
}

func (h *SavingsHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.ApproveDeposit")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	id, ok := pathID(chi.URLParam(r, "savingsID"))
	if !ok {
		WriteError(w, "Invalid savings id", http.StatusBadRequest)
		return
	}

	in := struct {
		TransactionID int64 `json:"transaction_id" validate:"required,gt=0"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	res, err := h.savings.ApproveDeposit(ctx, admin, id, in.TransactionID)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	msg := "Deposit approved successfully"
	if res.GoalReached {
		msg = "Deposit approved. Savings completed!"
	}

	WriteResponse(w, &Response{Success: true, Message: msg, Data: newApprovalResponse(res)}, http.StatusOK)
}

func (h *SavingsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.Cancel")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	id, ok := pathID(chi.URLParam(r, "savingsID"))
	if !ok {
		WriteError(w, "Invalid savings id", http.StatusBadRequest)
		return
	}

	in := struct {
		Reason string `json:"reason" validate:"max=1000"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	res, err := h.savings.Cancel(ctx, admin, id, in.Reason)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{
		Success: true,
		Message: "Savings account cancelled",
		Data: struct {
			SavingsID             int64               `json:"savings_id"`
			Status                model.AccountStatus `json:"status"`
			RefundAmount          decimal.Decimal     `json:"refund_amount"`
			CancelledTransactions int64               `json:"cancelled_transactions"`
			Note                  string              `json:"note"`
		}{
			SavingsID:             res.Account.ID,
			Status:                res.Account.Status,
			RefundAmount:          res.RefundAmount,
			CancelledTransactions: res.CancelledTransactions,
			Note:                  "Any verified deposits may need to be refunded manually",
		},
	}, http.StatusOK)
}

func (h *SavingsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.Complete")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	id, ok := pathID(chi.URLParam(r, "savingsID"))
	if !ok {
		WriteError(w, "Invalid savings id", http.StatusBadRequest)
		return
	}

	in := struct {
		Notes string `json:"notes" validate:"max=2000"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	a, err := h.savings.Complete(ctx, admin, id, in.Notes)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{
		Success: true,
		Message: "Savings marked as completed",
		Data: struct {
			SavingsID     int64               `json:"savings_id"`
			Status        model.AccountStatus `json:"status"`
			CurrentAmount decimal.Decimal     `json:"current_amount"`
			TargetAmount  decimal.Decimal     `json:"target_amount"`
		}{a.ID, a.Status, a.CurrentAmount, a.TargetAmount},
	}, http.StatusOK)
}

// UpdateStatus accepts either numeric id or account number in the path
func (h *SavingsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.UpdateStatus")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	key, err := model.ParseAccountKey(chi.URLParam(r, "savingsID"))
	if err != nil {
		WriteError(w, "Invalid savings id", http.StatusBadRequest)
		return
	}

	in := struct {
		Status string `json:"status" validate:"required,oneof=active completed cancelled expired"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	a, err := h.savings.UpdateStatus(ctx, admin, key, model.AccountStatus(strings.TrimSpace(in.Status)))
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{
		Success: true,
		Message: "Status updated",
		Data: struct {
			SavingsID int64               `json:"savings_id"`
			AccountNo string              `json:"account_no"`
			Status    model.AccountStatus `json:"status"`
		}{a.ID, a.AccountNo, a.Status},
	}, http.StatusOK)
}

// Deposit records a manual deposit, by numeric id or account number
func (h *SavingsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Savings.Deposit")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	key, err := model.ParseAccountKey(chi.URLParam(r, "savingsID"))
	if err != nil {
		WriteError(w, "Invalid savings id", http.StatusBadRequest)
		return
	}

	in := struct {
		Amount decimal.Decimal `json:"amount"`
		Notes  string          `json:"notes" validate:"max=2000"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	res, err := h.savings.ManualDeposit(ctx, admin, key, in.Amount, in.Notes)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{
		Success: true,
		Message: "Deposit recorded",
		Data: struct {
			SavingsID     int64           `json:"savings_id"`
			TransactionID string          `json:"transaction_id"`
			Amount        decimal.Decimal `json:"amount"`
			NewBalance    decimal.Decimal `json:"new_balance"`
		}{res.Account.ID, res.Transaction.TransactionNo, res.Transaction.Amount, res.Account.CurrentAmount},
	}, http.StatusOK)
}
