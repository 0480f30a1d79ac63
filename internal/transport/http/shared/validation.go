package shared

import (
	"net/http"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
	"hrpay/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{
		Field:  field,
		Reason: reason,
	})
}

func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

// RequiredDate flags a missing calendar date.
func (v *Validator) RequiredDate(field string, value calendar.Date) {
	if value.IsZero() {
		v.Add(field, "is required")
	}
}

func (v *Validator) NonZero(field string, value decimal.Decimal) {
	if value.IsZero() {
		v.Add(field, "is required and must not be zero")
	}
}

func (v *Validator) NotNegative(field string, value decimal.Decimal) {
	if value.IsNegative() {
		v.Add(field, "must not be negative")
	}
}

// Enum accepts an empty value; pair it with Required when the field is mandatory.
func (v *Validator) Enum(field, value string, allowed []string) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if strings.EqualFold(normalized, candidate) {
			return
		}
	}
	v.Add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (v *Validator) DateOrder(startField string, start *calendar.Date, endField string, end *calendar.Date) {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start.Time) {
		v.Add(startField, "must be on or before "+endField)
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) Period(monthNum, yearNum int) {
	if monthNum < 1 || monthNum > 12 {
		v.Add("monthNum", "must be between 1 and 12")
	}
	if yearNum <= 0 {
		v.Add("yearNum", "is required")
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}
