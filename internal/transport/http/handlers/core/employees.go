package corehandler

import (
	"net/http"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

func validateEmployee(v *shared.Validator, e core.Employee) {
	v.Required("fullName", e.FullName)
	v.Enum("status", e.Status, core.EmployeeStatuses)
	validateGender(v, e.Gender)
}

func validateGender(v *shared.Validator, gender *int) {
	if gender != nil && *gender != 0 && *gender != 1 {
		v.Add("gender", "must be 1 (male) or 0 (female)")
	}
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := core.EmployeeFilter{
		DeptID: shared.Query(r, "deptId"),
		Status: shared.Query(r, "status"),
	}
	employees, err := h.Service.ListEmployees(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list employees")
		return
	}
	api.Success(w, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.GetEmployee(r.Context(), shared.PathOrBody(r, "empID", ""))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load employee")
		return
	}
	api.Success(w, emp)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload core.Employee
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	validateEmployee(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create employee")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "employee", emp.EmpID, emp)
	api.Created(w, emp)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload core.Employee
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.EmpID = shared.PathOrBody(r, "empID", payload.EmpID)
	v := shared.NewValidator()
	v.Required("empId", payload.EmpID)
	validateEmployee(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	emp, found, err := h.Service.UpdateEmployee(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update employee")
		return
	}
	if !found {
		shared.NotFound(w, r, "employee")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "employee", emp.EmpID, emp)
	api.Success(w, emp)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmpID string `json:"empId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "empID", payload.EmpID)
	v := shared.NewValidator()
	v.Required("empId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteEmployee(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete employee")
		return
	}
	if !found {
		shared.NotFound(w, r, "employee")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "employee", id, nil)
	api.Deleted(w)
}

func (h *Handler) handleListDependents(w http.ResponseWriter, r *http.Request) {
	empCode := shared.Query(r, "empCode")
	v := shared.NewValidator()
	v.Required("empCode", empCode)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	deps, err := h.Service.ListDependents(r.Context(), empCode)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list dependents")
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		core.FilterDependentFields(deps, user)
	}
	api.Success(w, deps)
}

func (h *Handler) handleCreateDependent(w http.ResponseWriter, r *http.Request) {
	var payload core.Dependent
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("empId", payload.EmpID)
	v.Required("fullName", payload.FullName)
	validateGender(v, payload.Gender)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	dep, err := h.Service.CreateDependent(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create dependent")
		return
	}
	// idNumber stays out of the audit trail.
	h.Changes.Changed(r.Context(), audit.ActionCreate, "dependent", dep.DependentID, map[string]string{"empId": dep.EmpID})
	api.Created(w, dep)
}

func (h *Handler) handleUpdateDependent(w http.ResponseWriter, r *http.Request) {
	var payload core.Dependent
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.DependentID = shared.PathOrBody(r, "dependentID", payload.DependentID)
	v := shared.NewValidator()
	v.Required("dependentId", payload.DependentID)
	v.Required("fullName", payload.FullName)
	validateGender(v, payload.Gender)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	dep, found, err := h.Service.UpdateDependent(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update dependent")
		return
	}
	if !found {
		shared.NotFound(w, r, "dependent")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "dependent", dep.DependentID, nil)
	api.Success(w, dep)
}

func (h *Handler) handleDeleteDependent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DependentID string `json:"dependentId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "dependentID", payload.DependentID)
	v := shared.NewValidator()
	v.Required("dependentId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteDependent(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete dependent")
		return
	}
	if !found {
		shared.NotFound(w, r, "dependent")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "dependent", id, nil)
	api.Deleted(w)
}
