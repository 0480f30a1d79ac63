package memstore

import (
	"context"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
)

func (s *Store) records(filter attendance.Filter) []attendance.Record {
	out := values(s.attendance, filter.Matches)
	return sorted(out, func(a, b attendance.Record) bool {
		if !a.AttendanceDate.Equal(b.AttendanceDate.Time) {
			return a.AttendanceDate.Before(b.AttendanceDate.Time)
		}
		if a.EmpID != b.EmpID {
			return a.EmpID < b.EmpID
		}
		return a.AttendID < b.AttendID
	})
}

func (s *Store) ListAttendanceSummaries(ctx context.Context, filter attendance.Filter) ([]attendance.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := attendance.Summarize(s.records(filter))
	return sorted(out, func(a, b attendance.Summary) bool {
		if a.YearNum != b.YearNum {
			return a.YearNum > b.YearNum
		}
		if a.MonthNum != b.MonthNum {
			return a.MonthNum > b.MonthNum
		}
		return a.EmpID < b.EmpID
	}), nil
}

// GetAttendanceSummary returns the month that contains the given record.
func (s *Store) GetAttendanceSummary(ctx context.Context, attendID string) (attendance.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.attendance[attendID]
	if !ok {
		return attendance.Summary{}, attendance.ErrNotFound
	}
	summaries := attendance.Summarize(s.records(attendance.Filter{
		EmpID:    r.EmpID,
		MonthNum: int(r.AttendanceDate.Month()),
		YearNum:  r.AttendanceDate.Year(),
	}))
	return summaries[0], nil
}

func (s *Store) ListAttendanceRecords(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records(filter), nil
}

func (s *Store) GetAttendanceRecord(ctx context.Context, attendID string) (attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.attendance[attendID]
	if !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return r, nil
}

func (s *Store) CreateAttendanceRecord(ctx context.Context, r attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attendance[r.AttendID]; ok {
		return core.ErrDuplicate
	}
	if _, ok := s.employees[r.EmpID]; !ok {
		return core.ErrReferenceNotFound
	}
	s.attendance[r.AttendID] = r
	return nil
}

func (s *Store) UpdateAttendanceRecord(ctx context.Context, r attendance.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attendance[r.AttendID]; !ok {
		return false, nil
	}
	if _, ok := s.employees[r.EmpID]; !ok {
		return false, core.ErrReferenceNotFound
	}
	s.attendance[r.AttendID] = r
	return true, nil
}

func (s *Store) DeleteAttendanceMonth(ctx context.Context, empID string, yearNum, monthNum int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter := attendance.Filter{EmpID: empID, YearNum: yearNum, MonthNum: monthNum}
	var n int64
	for id, r := range s.attendance {
		if filter.Matches(r) {
			delete(s.attendance, id)
			n++
		}
	}
	return n, nil
}
