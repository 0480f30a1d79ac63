package memstore

import (
	"context"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/reports"
)

func (s *Store) reportEmployee(empID string, f reports.Filter) (core.Employee, bool) {
	e, ok := s.employees[empID]
	if !ok {
		return core.Employee{}, false
	}
	if f.EmpCode != "" && e.EmpID != f.EmpCode {
		return core.Employee{}, false
	}
	if f.DeptID != "" && e.DeptID != f.DeptID {
		return core.Employee{}, false
	}
	return e, true
}

// nameBefore orders employees by full name, then code. Callers hold s.mu.
func (s *Store) nameBefore(a, b string) bool {
	na, nb := s.employees[a].FullName, s.employees[b].FullName
	if na != nb {
		return na < nb
	}
	return a < b
}

type summaryKey struct {
	empID    string
	yearNum  int
	monthNum int
}

func distinctDays(records []attendance.Record) map[summaryKey]map[string]struct{} {
	out := make(map[summaryKey]map[string]struct{})
	for _, r := range records {
		k := summaryKey{r.EmpID, r.AttendanceDate.Year(), int(r.AttendanceDate.Month())}
		if out[k] == nil {
			out[k] = make(map[string]struct{})
		}
		out[k][r.AttendanceDate.String()] = struct{}{}
	}
	return out
}

func periodMatches(f reports.Filter, yearNum, monthNum int) bool {
	return (f.YearNum == 0 || f.YearNum == yearNum) && (f.MonthNum == 0 || f.MonthNum == monthNum)
}

func (s *Store) SalaryReport(ctx context.Context, f reports.Filter) ([]reports.SalaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payrolls := sorted(values(s.payrolls, func(p payroll.Payroll) bool {
		return periodMatches(f, p.YearNum, p.MonthNum)
	}), func(a, b payroll.Payroll) bool {
		if a.YearNum != b.YearNum {
			return a.YearNum > b.YearNum
		}
		if a.MonthNum != b.MonthNum {
			return a.MonthNum > b.MonthNum
		}
		return s.nameBefore(a.EmpID, b.EmpID)
	})

	out := make([]reports.SalaryRow, 0, len(payrolls))
	for _, p := range payrolls {
		e, ok := s.reportEmployee(p.EmpID, f)
		if !ok {
			continue
		}
		out = append(out, reports.SalaryRow{
			PayrollID:     p.PayrollID,
			EmpID:         p.EmpID,
			EmpName:       e.FullName,
			DeptName:      s.departments[e.DeptID].DeptName,
			PositionName:  s.positions[e.PositionID].PositionName,
			MonthNum:      p.MonthNum,
			YearNum:       p.YearNum,
			BasicSalary:   p.BasicSalary,
			Allowance:     p.Allowance,
			RewardAmount:  p.RewardAmount,
			PenaltyAmount: p.PenaltyAmount,
			OTSalary:      p.OTSalary,
			TotalSalary:   p.TotalSalary,
			Status:        p.Status,
		})
	}
	return out, nil
}

func (s *Store) AttendanceReport(ctx context.Context, f reports.Filter) ([]reports.AttendanceRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records(attendance.Filter{
		EmpID:    f.EmpCode,
		MonthNum: f.MonthNum,
		YearNum:  f.YearNum,
	})
	summaries := attendance.Summarize(records)
	days := distinctDays(records)
	summaries = sorted(summaries, func(a, b attendance.Summary) bool {
		if a.YearNum != b.YearNum {
			return a.YearNum > b.YearNum
		}
		if a.MonthNum != b.MonthNum {
			return a.MonthNum > b.MonthNum
		}
		return s.nameBefore(a.EmpID, b.EmpID)
	})

	out := make([]reports.AttendanceRow, 0, len(summaries))
	for _, sm := range summaries {
		e, ok := s.reportEmployee(sm.EmpID, f)
		if !ok {
			continue
		}
		out = append(out, reports.AttendanceRow{
			EmpID:     sm.EmpID,
			EmpName:   e.FullName,
			DeptName:  s.departments[e.DeptID].DeptName,
			MonthNum:  sm.MonthNum,
			YearNum:   sm.YearNum,
			WorkDays:  sm.WorkDays,
			LeaveDays: sm.LeaveDays,
			OTHours:   sm.OTHours,
			TotalDays: len(days[summaryKey{sm.EmpID, sm.YearNum, sm.MonthNum}]),
		})
	}
	return out, nil
}

func (s *Store) PaymentReport(ctx context.Context, f reports.Filter) ([]reports.PaymentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payments := sorted(values(s.payments, nil), func(a, b payroll.Payment) bool {
		if !a.PaymentDate.Equal(b.PaymentDate.Time) {
			return a.PaymentDate.After(b.PaymentDate.Time)
		}
		pa, pb := s.payrolls[a.PayrollID], s.payrolls[b.PayrollID]
		if pa.EmpID != pb.EmpID {
			return s.nameBefore(pa.EmpID, pb.EmpID)
		}
		return a.PaymentID < b.PaymentID
	})

	out := make([]reports.PaymentRow, 0, len(payments))
	for _, pay := range payments {
		p, ok := s.payrolls[pay.PayrollID]
		if !ok || !periodMatches(f, p.YearNum, p.MonthNum) {
			continue
		}
		e, ok := s.reportEmployee(p.EmpID, f)
		if !ok {
			continue
		}
		out = append(out, reports.PaymentRow{
			PaymentID:   pay.PaymentID,
			PayrollID:   pay.PayrollID,
			EmpID:       p.EmpID,
			EmpName:     e.FullName,
			DeptName:    s.departments[e.DeptID].DeptName,
			MonthNum:    p.MonthNum,
			YearNum:     p.YearNum,
			TotalSalary: p.TotalSalary,
			PaymentDate: pay.PaymentDate,
			ApprovedBy:  pay.ApprovedBy,
			Note:        pay.Note,
		})
	}
	return out, nil
}
