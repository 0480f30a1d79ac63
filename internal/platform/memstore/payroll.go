package memstore

import (
	"context"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
)

func (s *Store) ListRewards(ctx context.Context, empID string) ([]payroll.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.rewards, func(r payroll.Reward) bool { return empID == "" || r.EmpID == empID })
	return sorted(out, func(a, b payroll.Reward) bool {
		if !a.RewardDate.Equal(b.RewardDate.Time) {
			return a.RewardDate.After(b.RewardDate.Time)
		}
		return a.RewardID < b.RewardID
	}), nil
}

func (s *Store) rewardRefs(r payroll.Reward) error {
	if r.EmpID == "" && r.DeptID == "" {
		return core.ErrReferenceNotFound
	}
	if !ref(s.employees, r.EmpID) || !ref(s.departments, r.DeptID) {
		return core.ErrReferenceNotFound
	}
	return nil
}

func (s *Store) CreateReward(ctx context.Context, r payroll.Reward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rewards[r.RewardID]; ok {
		return core.ErrDuplicate
	}
	if err := s.rewardRefs(r); err != nil {
		return err
	}
	s.rewards[r.RewardID] = r
	return nil
}

func (s *Store) UpdateReward(ctx context.Context, r payroll.Reward) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rewards[r.RewardID]; !ok {
		return false, nil
	}
	if err := s.rewardRefs(r); err != nil {
		return false, err
	}
	s.rewards[r.RewardID] = r
	return true, nil
}

func (s *Store) DeleteReward(ctx context.Context, rewardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rewards[rewardID]; !ok {
		return false, nil
	}
	delete(s.rewards, rewardID)
	return true, nil
}

func (s *Store) ListPenalties(ctx context.Context, empID string) ([]payroll.Penalty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.penalties, func(p payroll.Penalty) bool { return empID == "" || p.EmpID == empID })
	return sorted(out, func(a, b payroll.Penalty) bool {
		if !a.PenaltyDate.Equal(b.PenaltyDate.Time) {
			return a.PenaltyDate.After(b.PenaltyDate.Time)
		}
		return a.PenaltyID < b.PenaltyID
	}), nil
}

func (s *Store) CreatePenalty(ctx context.Context, p payroll.Penalty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.penalties[p.PenaltyID]; ok {
		return core.ErrDuplicate
	}
	if _, ok := s.employees[p.EmpID]; !ok {
		return core.ErrReferenceNotFound
	}
	s.penalties[p.PenaltyID] = p
	return nil
}

func (s *Store) UpdatePenalty(ctx context.Context, p payroll.Penalty) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.penalties[p.PenaltyID]; !ok {
		return false, nil
	}
	if _, ok := s.employees[p.EmpID]; !ok {
		return false, core.ErrReferenceNotFound
	}
	s.penalties[p.PenaltyID] = p
	return true, nil
}

func (s *Store) DeletePenalty(ctx context.Context, penaltyID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.penalties[penaltyID]; !ok {
		return false, nil
	}
	delete(s.penalties, penaltyID)
	return true, nil
}

func contractMonthly(c core.Contract) decimal.Decimal {
	factor := c.SalaryFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}
	return c.BaseSalary.Mul(factor)
}

func inMonth(d calendar.Date, period int) bool {
	return d.MonthIndex() == period
}

// PayrollComponents mirrors the aggregate query of the PostgreSQL store.
func (s *Store) PayrollComponents(ctx context.Context, yearNum, monthNum int, empID string) ([]payroll.Components, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	period := calendar.MonthIndex(yearNum, monthNum)
	emps := values(s.employees, func(e core.Employee) bool {
		return e.Status == core.StatusActive && (empID == "" || e.EmpID == empID)
	})
	emps = sorted(emps, func(a, b core.Employee) bool { return a.EmpID < b.EmpID })

	out := make([]payroll.Components, 0, len(emps))
	for _, e := range emps {
		c := payroll.Components{EmpID: e.EmpID}

		var covering, latest *core.Contract
		for _, ct := range s.contracts {
			if ct.EmpID != e.EmpID || ct.Status != core.StatusActive {
				continue
			}
			ct := ct
			if latest == nil || ct.StartDate.After(latest.StartDate.Time) {
				latest = &ct
			}
			if ct.Covers(yearNum, monthNum) && (covering == nil || ct.StartDate.After(covering.StartDate.Time)) {
				covering = &ct
			}
		}
		if covering != nil {
			c.BasicSalary = contractMonthly(*covering)
		}
		if latest != nil {
			c.OTMonthlyBase = contractMonthly(*latest)
		}

		for _, a := range s.allowances {
			if a.EmpID == e.EmpID && a.AppliesTo(yearNum, monthNum) {
				c.Allowance = c.Allowance.Add(a.Amount)
			}
		}
		for _, r := range s.rewards {
			named := r.EmpID == e.EmpID || (r.DeptID != "" && r.DeptID == e.DeptID)
			if named && inMonth(r.RewardDate, period) {
				c.RewardAmount = c.RewardAmount.Add(r.Amount)
			}
		}
		for _, p := range s.penalties {
			if p.EmpID == e.EmpID && inMonth(p.PenaltyDate, period) {
				c.PenaltyAmount = c.PenaltyAmount.Add(p.Amount)
			}
		}
		for _, r := range s.attendance {
			if r.EmpID == e.EmpID && inMonth(r.AttendanceDate, period) {
				c.OTHours = c.OTHours.Add(r.OTHours)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) UpsertPayroll(ctx context.Context, p payroll.Payroll) (payroll.Payroll, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[p.EmpID]; !ok {
		return payroll.Payroll{}, false, core.ErrReferenceNotFound
	}
	for id, existing := range s.payrolls {
		if existing.EmpID != p.EmpID || existing.MonthNum != p.MonthNum || existing.YearNum != p.YearNum {
			continue
		}
		if existing.Status == payroll.StatusPaid {
			return payroll.Payroll{}, false, nil
		}
		p.PayrollID = id
		break
	}
	p.Status = payroll.StatusUnpaid
	s.payrolls[p.PayrollID] = p
	return p, true, nil
}

func (s *Store) ListPayrolls(ctx context.Context, filter payroll.Filter) ([]payroll.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(values(s.payrolls, filter.Matches), payrollOrder), nil
}

func payrollOrder(a, b payroll.Payroll) bool {
	if a.YearNum != b.YearNum {
		return a.YearNum > b.YearNum
	}
	if a.MonthNum != b.MonthNum {
		return a.MonthNum > b.MonthNum
	}
	return a.EmpID < b.EmpID
}

func (s *Store) GetPayroll(ctx context.Context, payrollID string) (payroll.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payrolls[payrollID]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (s *Store) DeletePayroll(ctx context.Context, payrollID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payrolls[payrollID]; !ok {
		return false, nil
	}
	for _, pay := range s.payments {
		if pay.PayrollID == payrollID {
			return false, core.ErrInUse
		}
	}
	delete(s.payrolls, payrollID)
	return true, nil
}

func (s *Store) PayslipData(ctx context.Context, payrollID string) (payroll.Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payrolls[payrollID]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayrollNotFound
	}
	slip := payroll.Payslip{Payroll: p}
	if e, ok := s.employees[p.EmpID]; ok {
		slip.FullName = e.FullName
		slip.DeptName = s.departments[e.DeptID].DeptName
		slip.PositionName = s.positions[e.PositionID].PositionName
	}
	for _, pay := range s.payments {
		if pay.PayrollID != payrollID {
			continue
		}
		if slip.Payment == nil || pay.PaymentDate.After(slip.Payment.PaymentDate.Time) {
			pay := pay
			slip.Payment = &pay
		}
	}
	return slip, nil
}

func (s *Store) ListPayments(ctx context.Context, payrollID string) ([]payroll.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.payments, func(p payroll.Payment) bool { return payrollID == "" || p.PayrollID == payrollID })
	return sorted(out, func(a, b payroll.Payment) bool {
		if !a.PaymentDate.Equal(b.PaymentDate.Time) {
			return a.PaymentDate.After(b.PaymentDate.Time)
		}
		return a.PaymentID < b.PaymentID
	}), nil
}

func (s *Store) GetPayment(ctx context.Context, paymentID string) (payroll.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	return p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p payroll.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.payrolls[p.PayrollID]
	if !ok {
		return payroll.ErrPayrollNotFound
	}
	if pr.Status == payroll.StatusPaid {
		return payroll.ErrAlreadyPaid
	}
	if _, ok := s.payments[p.PaymentID]; ok {
		return core.ErrDuplicate
	}
	pr.Status = payroll.StatusPaid
	s.payrolls[p.PayrollID] = pr
	s.payments[p.PaymentID] = p
	return nil
}
