package payroll

import (
	"context"
	"fmt"
	"strings"

	"hrpay/internal/domain/calendar"
	"hrpay/internal/domain/core"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Store() StoreAPI {
	return s.store
}

// Calculate recomputes the period for every ACTIVE employee, or only
// req.EmpID. Rows written before a failure are kept and counted in the
// returned result.
func (s *Service) Calculate(ctx context.Context, req CalculationRequest) (CalculationResult, error) {
	req.EmpID = strings.TrimSpace(req.EmpID)
	if !ValidPeriod(req.MonthNum, req.YearNum) {
		return CalculationResult{}, ErrInvalidPeriod
	}

	components, err := s.store.PayrollComponents(ctx, req.YearNum, req.MonthNum, req.EmpID)
	if err != nil {
		return CalculationResult{}, err
	}
	if req.EmpID != "" && len(components) == 0 {
		return CalculationResult{}, ErrNoEligibleEmployee
	}

	result := CalculationResult{
		MonthNum: req.MonthNum,
		YearNum:  req.YearNum,
		Payrolls: make([]Payroll, 0, len(components)),
	}
	for _, c := range components {
		p := Compute(c, req.MonthNum, req.YearNum)
		p.PayrollID = core.NewID("")
		saved, written, err := s.store.UpsertPayroll(ctx, p)
		if err != nil {
			return result, fmt.Errorf("calculate payroll for %s: %w", c.EmpID, err)
		}
		if !written {
			result.Skipped++
			continue
		}
		result.Calculated++
		result.Payrolls = append(result.Payrolls, saved)
	}
	result.Message = fmt.Sprintf("Payroll calculated for %02d/%d: %d calculated, %d skipped (already paid)",
		req.MonthNum, req.YearNum, result.Calculated, result.Skipped)
	return result, nil
}

// CalculateInsuranceTax is served by a database procedure this backend does
// not provide.
func (s *Service) CalculateInsuranceTax(ctx context.Context, monthNum, yearNum int) error {
	return ErrInsuranceTaxUnsupported
}

func (s *Service) ListPayrolls(ctx context.Context, filter Filter) ([]Payroll, error) {
	filter.EmpID = strings.TrimSpace(filter.EmpID)
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	return s.store.ListPayrolls(ctx, filter)
}

func (s *Service) GetPayroll(ctx context.Context, payrollID string) (Payroll, error) {
	return s.store.GetPayroll(ctx, strings.TrimSpace(payrollID))
}

func (s *Service) DeletePayroll(ctx context.Context, payrollID string) (bool, error) {
	return s.store.DeletePayroll(ctx, strings.TrimSpace(payrollID))
}

func (s *Service) ListRewards(ctx context.Context, empID string) ([]Reward, error) {
	return s.store.ListRewards(ctx, strings.TrimSpace(empID))
}

func (s *Service) CreateReward(ctx context.Context, r Reward) (Reward, error) {
	r = normalizeReward(r)
	r.RewardID = core.NewID(r.RewardID)
	return r, s.store.CreateReward(ctx, r)
}

func (s *Service) UpdateReward(ctx context.Context, r Reward) (Reward, bool, error) {
	r = normalizeReward(r)
	found, err := s.store.UpdateReward(ctx, r)
	return r, found, err
}

func (s *Service) DeleteReward(ctx context.Context, rewardID string) (bool, error) {
	return s.store.DeleteReward(ctx, strings.TrimSpace(rewardID))
}

func normalizeReward(r Reward) Reward {
	r.RewardID = strings.TrimSpace(r.RewardID)
	r.EmpID = strings.TrimSpace(r.EmpID)
	r.DeptID = strings.TrimSpace(r.DeptID)
	r.RewardType = strings.TrimSpace(r.RewardType)
	if r.RewardDate.IsZero() {
		r.RewardDate = calendar.Today()
	}
	return r
}

func (s *Service) ListPenalties(ctx context.Context, empID string) ([]Penalty, error) {
	return s.store.ListPenalties(ctx, strings.TrimSpace(empID))
}

func (s *Service) CreatePenalty(ctx context.Context, p Penalty) (Penalty, error) {
	p = normalizePenalty(p)
	p.PenaltyID = core.NewID(p.PenaltyID)
	return p, s.store.CreatePenalty(ctx, p)
}

func (s *Service) UpdatePenalty(ctx context.Context, p Penalty) (Penalty, bool, error) {
	p = normalizePenalty(p)
	found, err := s.store.UpdatePenalty(ctx, p)
	return p, found, err
}

func (s *Service) DeletePenalty(ctx context.Context, penaltyID string) (bool, error) {
	return s.store.DeletePenalty(ctx, strings.TrimSpace(penaltyID))
}

func normalizePenalty(p Penalty) Penalty {
	p.PenaltyID = strings.TrimSpace(p.PenaltyID)
	p.EmpID = strings.TrimSpace(p.EmpID)
	p.PenaltyType = strings.TrimSpace(p.PenaltyType)
	if p.PenaltyDate.IsZero() {
		p.PenaltyDate = calendar.Today()
	}
	return p
}

func (s *Service) ListPayments(ctx context.Context, payrollID string) ([]Payment, error) {
	return s.store.ListPayments(ctx, strings.TrimSpace(payrollID))
}

func (s *Service) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	return s.store.GetPayment(ctx, strings.TrimSpace(paymentID))
}

func (s *Service) CreatePayment(ctx context.Context, p Payment) (Payment, error) {
	p.PayrollID = strings.TrimSpace(p.PayrollID)
	p.PaymentID = core.NewID(p.PaymentID)
	p.ApprovedBy = strings.TrimSpace(p.ApprovedBy)
	if p.PaymentDate.IsZero() {
		p.PaymentDate = calendar.Today()
	}
	return p, s.store.CreatePayment(ctx, p)
}
