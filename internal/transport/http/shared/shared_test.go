package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
)

func TestWriteErrorStatuses(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{core.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("get payroll: %w", payroll.ErrPayrollNotFound), http.StatusNotFound},
		{core.ErrReferenceNotFound, http.StatusBadRequest},
		{core.ErrInUse, http.StatusConflict},
		{payroll.ErrAlreadyPaid, http.StatusConflict},
		{attendance.ErrSummaryImportUnsupported, http.StatusNotImplemented},
		{payroll.ErrInsuranceTaxUnsupported, http.StatusNotImplemented},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, "request failed")
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"), "failed to list employees")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to list employees", body["error"])
	assert.Equal(t, "internal_error", body["code"])
}

func TestValidatorRejectsWithFieldDetails(t *testing.T) {
	v := NewValidator()
	v.Required("fullName", "  ")
	v.Enum("status", "retired", core.EmployeeStatuses)
	v.Period(13, 2024)

	rec := httptest.NewRecorder()
	require.True(t, v.Reject(rec, "req-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string `json:"code"`
		Details struct {
			Fields []ValidationIssue `json:"fields"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Code)
	require.Len(t, body.Details.Fields, 3)
	assert.Equal(t, "fullName", body.Details.Fields[0].Field)
	assert.Equal(t, "monthNum", body.Details.Fields[1].Field)
	assert.Equal(t, "status", body.Details.Fields[2].Field)
}

func TestDecodeOptionalAcceptsEmptyBody(t *testing.T) {
	var payload struct {
		DeptID string `json:"deptId"`
	}
	req := httptest.NewRequest(http.MethodDelete, "/api/departments/D01", nil)
	assert.True(t, DecodeOptional(httptest.NewRecorder(), req, &payload))

	req = httptest.NewRequest(http.MethodDelete, "/api/departments", strings.NewReader(`{"deptId":"D02"}`))
	assert.True(t, DecodeOptional(httptest.NewRecorder(), req, &payload))
	assert.Equal(t, "D02", payload.DeptID)

	rec := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/departments", strings.NewReader(`{"deptId":`))
	assert.False(t, DecodeOptional(rec, req, &payload))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
