package payroll

import "context"

type StoreAPI interface {
	ListRewards(ctx context.Context, empID string) ([]Reward, error)
	CreateReward(ctx context.Context, reward Reward) error
	UpdateReward(ctx context.Context, reward Reward) (bool, error)
	DeleteReward(ctx context.Context, rewardID string) (bool, error)

	ListPenalties(ctx context.Context, empID string) ([]Penalty, error)
	CreatePenalty(ctx context.Context, penalty Penalty) error
	UpdatePenalty(ctx context.Context, penalty Penalty) (bool, error)
	DeletePenalty(ctx context.Context, penaltyID string) (bool, error)

	// PayrollComponents returns one entry per ACTIVE employee, narrowed to
	// empID when it is set.
	PayrollComponents(ctx context.Context, yearNum, monthNum int, empID string) ([]Components, error)
	// UpsertPayroll writes the row for (empId, monthNum, yearNum). It reports
	// false without writing when the existing row is PAID.
	UpsertPayroll(ctx context.Context, p Payroll) (Payroll, bool, error)
	ListPayrolls(ctx context.Context, filter Filter) ([]Payroll, error)
	GetPayroll(ctx context.Context, payrollID string) (Payroll, error)
	DeletePayroll(ctx context.Context, payrollID string) (bool, error)
	PayslipData(ctx context.Context, payrollID string) (Payslip, error)

	ListPayments(ctx context.Context, payrollID string) ([]Payment, error)
	GetPayment(ctx context.Context, paymentID string) (Payment, error)
	// CreatePayment records the payment and marks its payroll PAID atomically.
	CreatePayment(ctx context.Context, payment Payment) error
}
