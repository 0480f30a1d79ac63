package attendance

import (
	"context"
	"strings"

	"hrpay/internal/domain/core"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListSummaries(ctx context.Context, filter Filter) ([]Summary, error) {
	filter.EmpID = strings.TrimSpace(filter.EmpID)
	return s.store.ListAttendanceSummaries(ctx, filter)
}

func (s *Service) GetSummary(ctx context.Context, attendID string) (Summary, error) {
	return s.store.GetAttendanceSummary(ctx, strings.TrimSpace(attendID))
}

func (s *Service) ListRecords(ctx context.Context, filter Filter) ([]Record, error) {
	filter.EmpID = strings.TrimSpace(filter.EmpID)
	return s.store.ListAttendanceRecords(ctx, filter)
}

func (s *Service) GetRecord(ctx context.Context, attendID string) (Record, error) {
	return s.store.GetAttendanceRecord(ctx, strings.TrimSpace(attendID))
}

func (s *Service) CreateRecord(ctx context.Context, r Record) (Record, error) {
	r = normalize(r)
	r.AttendID = core.NewID(r.AttendID)
	return r, s.store.CreateAttendanceRecord(ctx, r)
}

func (s *Service) UpdateRecord(ctx context.Context, r Record) (Record, bool, error) {
	r = normalize(r)
	found, err := s.store.UpdateAttendanceRecord(ctx, r)
	return r, found, err
}

// ImportSummary always fails: summaries are derived from daily records and
// bulk expansion is owned by the database procedure.
func (s *Service) ImportSummary(_ context.Context, _ Summary) error {
	return ErrSummaryImportUnsupported
}

func (s *Service) DeleteMonth(ctx context.Context, empID string, yearNum, monthNum int) (bool, error) {
	n, err := s.store.DeleteAttendanceMonth(ctx, strings.TrimSpace(empID), yearNum, monthNum)
	return n > 0, err
}

func normalize(r Record) Record {
	r.AttendID = strings.TrimSpace(r.AttendID)
	r.EmpID = strings.TrimSpace(r.EmpID)
	if r.WorkingHours.IsZero() && r.IsWorkingDay {
		r.WorkingHours = WorkedHours(r.CheckInTime, r.CheckOutTime)
	}
	return r
}
