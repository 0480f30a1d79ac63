package payrollhandler

import (
	"net/http"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.ListPayments(r.Context(), shared.Query(r, "payrollId"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list payments")
		return
	}
	api.Success(w, payments)
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.Service.GetPayment(r.Context(), shared.PathOrBody(r, "paymentID", ""))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load payment")
		return
	}
	api.Success(w, payment)
}

// handleCreatePayment records a payment and marks its payroll PAID.
func (h *Handler) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Payment
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("payrollId", payload.PayrollID)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	payment, err := h.Service.CreatePayment(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create payment")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionPay, "payroll", payment.PayrollID, payment)
	api.Created(w, payment)
}
