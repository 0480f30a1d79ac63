package corehandler

import (
	"net/http"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "failed to list departments")
		return
	}
	api.Success(w, depts)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	dept, err := h.Service.GetDepartment(r.Context(), shared.PathOrBody(r, "deptID", ""))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load department")
		return
	}
	api.Success(w, dept)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload core.Department
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("deptName", payload.DeptName)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	dept, err := h.Service.CreateDepartment(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create department")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "department", dept.DeptID, dept)
	api.Created(w, dept)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var payload core.Department
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.DeptID = shared.PathOrBody(r, "deptID", payload.DeptID)
	v := shared.NewValidator()
	v.Required("deptId", payload.DeptID)
	v.Required("deptName", payload.DeptName)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	dept, found, err := h.Service.UpdateDepartment(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update department")
		return
	}
	if !found {
		shared.NotFound(w, r, "department")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "department", dept.DeptID, dept)
	api.Success(w, dept)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DeptID string `json:"deptId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "deptID", payload.DeptID)
	v := shared.NewValidator()
	v.Required("deptId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteDepartment(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete department")
		return
	}
	if !found {
		shared.NotFound(w, r, "department")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "department", id, nil)
	api.Deleted(w)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Service.ListPositions(r.Context())
	if err != nil {
		shared.WriteError(w, r, err, "failed to list positions")
		return
	}
	api.Success(w, positions)
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	pos, err := h.Service.GetPosition(r.Context(), shared.PathOrBody(r, "positionID", ""))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load position")
		return
	}
	api.Success(w, pos)
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var payload core.Position
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("positionName", payload.PositionName)
	v.NotNegative("baseSalary", payload.BaseSalary)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	pos, err := h.Service.CreatePosition(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create position")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "position", pos.PositionID, pos)
	api.Created(w, pos)
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	var payload core.Position
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.PositionID = shared.PathOrBody(r, "positionID", payload.PositionID)
	v := shared.NewValidator()
	v.Required("positionId", payload.PositionID)
	v.Required("positionName", payload.PositionName)
	v.NotNegative("baseSalary", payload.BaseSalary)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	pos, found, err := h.Service.UpdatePosition(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update position")
		return
	}
	if !found {
		shared.NotFound(w, r, "position")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "position", pos.PositionID, pos)
	api.Success(w, pos)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PositionID string `json:"positionId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "positionID", payload.PositionID)
	v := shared.NewValidator()
	v.Required("positionId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeletePosition(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete position")
		return
	}
	if !found {
		shared.NotFound(w, r, "position")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "position", id, nil)
	api.Deleted(w)
}
