package payrollhandler

import (
	"fmt"
	"net/http"
	"strconv"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

func (h *Handler) handleListPayrolls(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := payroll.Filter{
		EmpID:    shared.Query(r, "empId"),
		Status:   shared.Query(r, "status"),
		MonthNum: shared.QueryInt(r, "monthNum", v),
		YearNum:  shared.QueryInt(r, "yearNum", v),
	}
	v.Enum("status", filter.Status, payroll.Statuses)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	payrolls, err := h.Service.ListPayrolls(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list payrolls")
		return
	}
	api.Success(w, payrolls)
}

func (h *Handler) handleGetPayroll(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetPayroll(r.Context(), shared.PathOrBody(r, "payrollID", ""))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load payroll")
		return
	}
	api.Success(w, p)
}

// handleCalculate recomputes a month. With ?async=true the run is queued and
// the job can be polled at /api/jobs/{jobId}.
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculationRequest
	if !shared.Decode(w, r, &req) {
		return
	}
	v := shared.NewValidator()
	v.Period(req.MonthNum, req.YearNum)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	if async, _ := strconv.ParseBool(shared.Query(r, "async")); async {
		run, err := h.Jobs.Enqueue(jobs.JobPayrollCalculation, h.Runner.Job(r.Context(), req))
		if err != nil {
			shared.WriteError(w, r, err, "failed to queue payroll calculation")
			return
		}
		w.Header().Set("Location", "/api/jobs/"+run.ID)
		api.Accepted(w, run)
		return
	}

	result, err := h.Runner.Run(r.Context(), req)
	if err != nil {
		shared.WriteError(w, r, err, fmt.Sprintf("payroll calculation failed after %d rows", result.Calculated))
		return
	}
	api.Success(w, result)
}

func (h *Handler) handleInsuranceTax(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculationRequest
	if !shared.DecodeOptional(w, r, &req) {
		return
	}
	err := h.Service.CalculateInsuranceTax(r.Context(), req.MonthNum, req.YearNum)
	if err != nil {
		shared.WriteError(w, r, err, "insurance and tax calculation failed")
		return
	}
	api.Success(w, map[string]string{"message": "insurance and tax calculated"})
}

func (h *Handler) handleDeletePayroll(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PayrollID string `json:"payrollId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "payrollID", payload.PayrollID)
	v := shared.NewValidator()
	v.Required("payrollId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeletePayroll(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete payroll")
		return
	}
	if !found {
		shared.NotFound(w, r, "payroll")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "payroll", id, nil)
	api.Deleted(w)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	id := shared.PathOrBody(r, "payrollID", "")
	pdf, err := h.Service.RenderPayslip(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to render payslip")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payslip-"+id+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
