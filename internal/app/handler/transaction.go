package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"savingsdesk/internal/app/logger"
)

// TransactionHandler serves the routes addressing a deposit by its own id
type TransactionHandler struct {
	savings SavingsService
}

func NewTransactionHandler(savings SavingsService) *TransactionHandler {
	return &TransactionHandler{
		savings: savings,
	}
}

func (h *TransactionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Transaction.Approve")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	id, ok := pathID(chi.URLParam(r, "transactionID"))
	if !ok {
		WriteError(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}

	res, err := h.savings.ApproveTransaction(ctx, admin, id)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{Success: true, Message: "อนุมัติรายการสำเร็จ", Data: newApprovalResponse(res)}, http.StatusOK)
}

func (h *TransactionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Transaction.Reject")

	admin, err := ReadContextAdmin(ctx)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	id, ok := pathID(chi.URLParam(r, "transactionID"))
	if !ok {
		WriteError(w, "Invalid transaction id", http.StatusBadRequest)
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

	t, err := h.savings.RejectTransaction(ctx, admin, id, in.Reason)
	if err != nil {
		WriteAppError(w, l.Logger, err)
		return
	}

	WriteResponse(w, &Response{
		Success: true,
		Message: "ปฏิเสธรายการสำเร็จ",
		Data: struct {
			TransactionID int64  `json:"transaction_id"`
			Reason        string `json:"reason"`
		}{t.ID, t.RejectionReason},
	}, http.StatusOK)
}
