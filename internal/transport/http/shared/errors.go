package shared

import (
	"context"
	"errors"
	"net/http"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/reports"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{core.ErrNotFound, http.StatusNotFound, "not_found"},
	{attendance.ErrNotFound, http.StatusNotFound, "not_found"},
	{payroll.ErrPayrollNotFound, http.StatusNotFound, "not_found"},
	{payroll.ErrPaymentNotFound, http.StatusNotFound, "not_found"},
	{payroll.ErrNoEligibleEmployee, http.StatusNotFound, "not_found"},
	{core.ErrReferenceNotFound, http.StatusBadRequest, "invalid_reference"},
	{core.ErrUnknownSalaryFactor, http.StatusBadRequest, "invalid_reference"},
	{payroll.ErrInvalidPeriod, http.StatusBadRequest, "validation_error"},
	{reports.ErrTypeRequired, http.StatusBadRequest, "validation_error"},
	{reports.ErrInvalidType, http.StatusBadRequest, "validation_error"},
	{core.ErrInUse, http.StatusConflict, "in_use"},
	{core.ErrDuplicate, http.StatusConflict, "duplicate"},
	{payroll.ErrAlreadyPaid, http.StatusConflict, "already_paid"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{auth.ErrAuthDisabled, http.StatusNotFound, "auth_disabled"},
	{jobs.ErrQueueFull, http.StatusServiceUnavailable, "queue_full"},
	{attendance.ErrSummaryImportUnsupported, http.StatusNotImplemented, "not_implemented"},
	{payroll.ErrInsuranceTaxUnsupported, http.StatusNotImplemented, "not_implemented"},
}

// WriteError maps domain errors to HTTP responses. Unrecognized errors are
// logged and reported as a generic 500 carrying failure as the message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	ctx := r.Context()
	reqID := requestctx.GetRequestID(ctx)
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			api.Fail(w, m.status, m.code, m.target.Error(), reqID)
			return
		}
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn(ctx, err, failure)
		return
	}
	logger.Error(ctx, err, failure)
	api.Fail(w, http.StatusInternalServerError, "internal_error", failure, reqID)
}

// NotFound answers 404 for an update or delete that matched no row.
func NotFound(w http.ResponseWriter, r *http.Request, what string) {
	api.Fail(w, http.StatusNotFound, "not_found", what+" not found", requestctx.GetRequestID(r.Context()))
}
