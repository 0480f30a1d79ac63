package attendancehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/audit"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Changes *shared.ChangeLog
}

func NewHandler(service *attendance.Service, changes *shared.ChangeLog) *Handler {
	return &Handler{Service: service, Changes: changes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendances", func(r chi.Router) {
		r.Get("/", h.handleListSummaries)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDeleteMonth)
		r.Get("/records", h.handleListRecords)
		r.Get("/{attendID}", h.handleGetSummary)
		r.Put("/{attendID}", h.handleUpdate)
	})
}

// recordPayload is a daily record, or a monthly summary when attendanceDate
// is absent and any summary field is set.
type recordPayload struct {
	attendance.Record
	IsWorkingDay *bool `json:"isWorkingDay"`
	MonthNum     *int  `json:"monthNum"`
	YearNum      *int  `json:"yearNum"`
	WorkDays     *int  `json:"workDays"`
	LeaveDays    *int  `json:"leaveDays"`
}

func (p recordPayload) isSummary() bool {
	return p.AttendanceDate.IsZero() &&
		(p.MonthNum != nil || p.YearNum != nil || p.WorkDays != nil || p.LeaveDays != nil)
}

// record defaults an omitted isWorkingDay to true; updates restore the
// stored value instead.
func (p recordPayload) record() attendance.Record {
	rec := p.Record
	rec.IsWorkingDay = p.IsWorkingDay == nil || *p.IsWorkingDay
	return rec
}

func validateRecord(v *shared.Validator, rec attendance.Record) {
	v.Required("empId", rec.EmpID)
	v.RequiredDate("attendanceDate", rec.AttendanceDate)
	v.NotNegative("workingHours", rec.WorkingHours)
	v.NotNegative("otHours", rec.OTHours)
	if rec.CheckInTime != nil && rec.CheckOutTime != nil && rec.CheckOutTime.Before(*rec.CheckInTime) {
		v.Add("checkOutTime", "must be after checkInTime")
	}
}

func filterFrom(r *http.Request, v *shared.Validator) attendance.Filter {
	return attendance.Filter{
		EmpID:    shared.Query(r, "empId"),
		MonthNum: shared.QueryInt(r, "monthNum", v),
		YearNum:  shared.QueryInt(r, "yearNum", v),
	}
}

func (h *Handler) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := filterFrom(r, v)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	summaries, err := h.Service.ListSummaries(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list attendance")
		return
	}
	api.Success(w, summaries)
}

func (h *Handler) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.GetSummary(r.Context(), chi.URLParam(r, "attendID"))
	if err != nil {
		shared.WriteError(w, r, err, "failed to load attendance")
		return
	}
	api.Success(w, summary)
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	filter := filterFrom(r, v)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	records, err := h.Service.ListRecords(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, r, err, "failed to list attendance records")
		return
	}
	api.Success(w, records)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if !shared.Decode(w, r, &payload) {
		return
	}
	if payload.isSummary() {
		v := shared.NewValidator()
		v.Required("empId", payload.EmpID)
		if v.Reject(w, requestctx.GetRequestID(r.Context())) {
			return
		}
		err := h.Service.ImportSummary(r.Context(), attendance.Summary{EmpID: payload.EmpID})
		shared.WriteError(w, r, err, "failed to import attendance")
		return
	}

	rec := payload.record()
	v := shared.NewValidator()
	validateRecord(v, rec)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateRecord(r.Context(), rec)
	if err != nil {
		shared.WriteError(w, r, err, "failed to create attendance")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionCreate, "attendance", created.AttendID, created)
	api.Created(w, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if !shared.Decode(w, r, &payload) {
		return
	}
	rec := payload.record()
	rec.AttendID = shared.PathOrBody(r, "attendID", rec.AttendID)
	v := shared.NewValidator()
	v.Required("attendId", rec.AttendID)
	validateRecord(v, rec)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	if payload.IsWorkingDay == nil {
		stored, err := h.Service.GetRecord(r.Context(), rec.AttendID)
		if errors.Is(err, attendance.ErrNotFound) {
			shared.NotFound(w, r, "attendance record")
			return
		}
		if err != nil {
			shared.WriteError(w, r, err, "failed to update attendance")
			return
		}
		rec.IsWorkingDay = stored.IsWorkingDay
	}

	updated, found, err := h.Service.UpdateRecord(r.Context(), rec)
	if err != nil {
		shared.WriteError(w, r, err, "failed to update attendance")
		return
	}
	if !found {
		shared.NotFound(w, r, "attendance record")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionUpdate, "attendance", updated.AttendID, updated)
	api.Success(w, updated)
}

func (h *Handler) handleDeleteMonth(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmpID    string `json:"empId"`
		MonthNum int    `json:"monthNum"`
		YearNum  int    `json:"yearNum"`
	}
	if !shared.DecodeOptional(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	if payload.EmpID == "" {
		payload.EmpID = shared.Query(r, "empId")
	}
	if payload.MonthNum == 0 {
		payload.MonthNum = shared.QueryInt(r, "monthNum", v)
	}
	if payload.YearNum == 0 {
		payload.YearNum = shared.QueryInt(r, "yearNum", v)
	}
	v.Required("empId", payload.EmpID)
	v.Period(payload.MonthNum, payload.YearNum)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}

	found, err := h.Service.DeleteMonth(r.Context(), payload.EmpID, payload.YearNum, payload.MonthNum)
	if err != nil {
		shared.WriteError(w, r, err, "failed to delete attendance")
		return
	}
	if !found {
		shared.NotFound(w, r, "attendance")
		return
	}
	h.Changes.Changed(r.Context(), audit.ActionDelete, "attendance", payload.EmpID, map[string]int{
		"monthNum": payload.MonthNum,
		"yearNum":  payload.YearNum,
	})
	api.Deleted(w)
}
