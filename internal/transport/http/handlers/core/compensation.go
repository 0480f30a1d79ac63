package corehandler

import (
	"net/http"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

func validateContract(v *shared.Validator, c core.Contract) {
	v.Required("empId", c.EmpID)
	v.RequiredDate("startDate", c.StartDate)
	v.DateOrder("startDate", &c.StartDate, "endDate", c.EndDate)
	v.NotNegative("salaryFactor", c.SalaryFactor)
	v.NotNegative("baseSalary", c.BaseSalary)
	v.NotNegative("offerSalary", c.OfferSalary)
}

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Service.ListContracts(r.Context(), shared.Query(r, "empId"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list contracts")
		return
	}
	api.Success(w, contracts)
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	contract, err := h.Service.GetContract(r.Context(), shared.PathOrBody(r, "contractID", ""))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load contract")
		return
	}
	api.Success(w, contract)
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	var payload core.Contract
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	validateContract(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	contract, err := h.Service.CreateContract(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create contract")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "contract", contract.ContractID, contract)
	api.Created(w, contract)
}

func (h *Handler) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	var payload core.Contract
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.ContractID = shared.PathOrBody(r, "contractID", payload.ContractID)
	v := shared.NewValidator()
	v.Required("contractId", payload.ContractID)
	validateContract(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	contract, found, err := h.Service.UpdateContract(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update contract")
		return
	}
	if !found {
		shared.NotFound(w, r, "contract")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "contract", contract.ContractID, contract)
	api.Success(w, contract)
}

func (h *Handler) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ContractID string `json:"contractId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "contractID", payload.ContractID)
	v := shared.NewValidator()
	v.Required("contractId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteContract(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete contract")
		return
	}
	if !found {
		shared.NotFound(w, r, "contract")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "contract", id, nil)
	api.Deleted(w)
}

func (h *Handler) handleListSalaryFactors(w http.ResponseWriter, r *http.Request) {
	factors, err := h.Service.ListSalaryFactors(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "failed to list salary factors")
		return
	}
	api.Success(w, factors)
}

func (h *Handler) handleCreateSalaryFactor(w http.ResponseWriter, r *http.Request) {
	var payload core.SalaryFactor
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	if !payload.Value.IsPositive() {
		v.Add("value", "must be positive")
	}
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	factor, err := h.Service.CreateSalaryFactor(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create salary factor")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "salary_factor", factor.FactorID, factor)
	api.Created(w, factor)
}

func validateAllowance(v *shared.Validator, a core.Allowance) {
	v.NonZero("amount", a.Amount)
	v.DateOrder("startDate", a.StartDate, "endDate", a.EndDate)
}

func (h *Handler) handleListAllowances(w http.ResponseWriter, r *http.Request) {
	allowances, err := h.Service.ListAllowances(r.Context(), shared.Query(r, "empId"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list allowances")
		return
	}
	api.Success(w, allowances)
}

func (h *Handler) handleCreateAllowance(w http.ResponseWriter, r *http.Request) {
	var payload core.Allowance
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("empId", payload.EmpID)
	validateAllowance(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	allowance, err := h.Service.CreateAllowance(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create allowance")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "allowance", allowance.AllowanceID, allowance)
	api.Created(w, allowance)
}

func (h *Handler) handleUpdateAllowance(w http.ResponseWriter, r *http.Request) {
	var payload core.Allowance
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.AllowanceID = shared.PathOrBody(r, "allowanceID", payload.AllowanceID)
	v := shared.NewValidator()
	v.Required("allowanceId", payload.AllowanceID)
	validateAllowance(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	allowance, found, err := h.Service.UpdateAllowance(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update allowance")
		return
	}
	if !found {
		shared.NotFound(w, r, "allowance")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "allowance", allowance.AllowanceID, allowance)
	api.Success(w, allowance)
}

func (h *Handler) handleDeleteAllowance(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AllowanceID string `json:"allowanceId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "allowanceID", payload.AllowanceID)
	v := shared.NewValidator()
	v.Required("allowanceId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteAllowance(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete allowance")
		return
	}
	if !found {
		shared.NotFound(w, r, "allowance")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "allowance", id, nil)
	api.Deleted(w)
}
