package reportshandler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrpay/internal/domain/reports"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	"hrpay/internal/transport/http/shared"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports", h.handleReport)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	t, err := reports.ParseType(shared.Query(r, "type"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
		return
	}

	v := shared.NewValidator()
	filter := reports.Filter{
		YearNum:  shared.QueryInt(r, "yearNum", v),
		MonthNum: shared.QueryInt(r, "monthNum", v),
		EmpCode:  shared.Query(r, "empCode"),
		DeptID:   shared.Query(r, "deptId"),
	}
	format := strings.ToLower(shared.Query(r, "format"))
	v.Enum("format", format, []string{"json", "csv", "xlsx"})
	if v.Reject(w, reqID) {
		return
	}

	if format == "" || format == "json" {
		payload, err := h.Service.JSON(r.Context(), t, filter)
		if err != nil {
			shared.WriteError(w, r, err, "failed to generate report")
			return
		}
		api.WriteRaw(w, http.StatusOK, payload)
		return
	}

	report, err := h.Service.Generate(r.Context(), t, filter)
	if err != nil {
		shared.WriteError(w, r, err, "failed to generate report")
		return
	}
	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = contentTypeXLSX
		err = reports.WriteXLSX(&buf, report)
	} else {
		err = reports.WriteCSV(&buf, report)
	}
	if err != nil {
		shared.WriteError(w, r, err, "failed to export report")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reports.FileName(t, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
