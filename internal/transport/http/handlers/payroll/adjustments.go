package payrollhandler

import (
	"net/http"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

func (h *Handler) handleListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.Service.ListRewards(r.Context(), shared.Query(r, "empId"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list rewards")
		return
	}
	api.Success(w, rewards)
}

func validateReward(v *shared.Validator, rw payroll.Reward) {
	v.NonZero("amount", rw.Amount)
	if rw.EmpID == "" && rw.DeptID == "" {
		v.Add("empId", "empId or deptId is required")
	}
}

func (h *Handler) handleCreateReward(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Reward
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	validateReward(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	reward, err := h.Service.CreateReward(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create reward")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "reward", reward.RewardID, reward)
	api.Created(w, reward)
}

func (h *Handler) handleUpdateReward(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Reward
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.RewardID = shared.PathOrBody(r, "rewardID", payload.RewardID)
	v := shared.NewValidator()
	v.Required("rewardId", payload.RewardID)
	validateReward(v, payload)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	reward, found, err := h.Service.UpdateReward(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update reward")
		return
	}
	if !found {
		shared.NotFound(w, r, "reward")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "reward", reward.RewardID, reward)
	api.Success(w, reward)
}

func (h *Handler) handleDeleteReward(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RewardID string `json:"rewardId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "rewardID", payload.RewardID)
	v := shared.NewValidator()
	v.Required("rewardId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteReward(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete reward")
		return
	}
	if !found {
		shared.NotFound(w, r, "reward")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "reward", id, nil)
	api.Deleted(w)
}

func (h *Handler) handleListPenalties(w http.ResponseWriter, r *http.Request) {
	penalties, err := h.Service.ListPenalties(r.Context(), shared.Query(r, "empId"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to list penalties")
		return
	}
	api.Success(w, penalties)
}

func (h *Handler) handleCreatePenalty(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Penalty
	if !shared.Decode(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("empId", payload.EmpID)
	v.NonZero("amount", payload.Amount)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	penalty, err := h.Service.CreatePenalty(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create penalty")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "penalty", penalty.PenaltyID, penalty)
	api.Created(w, penalty)
}

func (h *Handler) handleUpdatePenalty(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Penalty
	if !shared.Decode(w, r, &payload) {
		return
	}
	payload.PenaltyID = shared.PathOrBody(r, "penaltyID", payload.PenaltyID)
	v := shared.NewValidator()
	v.Required("penaltyId", payload.PenaltyID)
	v.NonZero("amount", payload.Amount)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	penalty, found, err := h.Service.UpdatePenalty(r.Context(), payload)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update penalty")
		return
	}
	if !found {
		shared.NotFound(w, r, "penalty")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "penalty", penalty.PenaltyID, penalty)
	api.Success(w, penalty)
}

func (h *Handler) handleDeletePenalty(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PenaltyID string `json:"penaltyId"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	id := shared.PathOrBody(r, "penaltyID", payload.PenaltyID)
	v := shared.NewValidator()
	v.Required("penaltyId", id)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeletePenalty(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete penalty")
		return
	}
	if !found {
		shared.NotFound(w, r, "penalty")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "penalty", id, nil)
	api.Deleted(w)
}
