package payroll

import (
	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
)

type Reward struct {
	RewardID    string          `json:"rewardId"`
	EmpID       string          `json:"empId,omitempty"`
	DeptID      string          `json:"deptId,omitempty"`
	RewardType  string          `json:"rewardType"`
	RewardDate  calendar.Date   `json:"rewardDate"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ApprovedBy  string          `json:"approvedBy"`
}

type Penalty struct {
	PenaltyID   string          `json:"penaltyId"`
	EmpID       string          `json:"empId"`
	PenaltyType string          `json:"penaltyType"`
	PenaltyDate calendar.Date   `json:"penaltyDate"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

type Payroll struct {
	PayrollID     string          `json:"payrollId"`
	EmpID         string          `json:"empId"`
	MonthNum      int             `json:"monthNum"`
	YearNum       int             `json:"yearNum"`
	BasicSalary   decimal.Decimal `json:"basicSalary"`
	Allowance     decimal.Decimal `json:"allowance"`
	RewardAmount  decimal.Decimal `json:"rewardAmount"`
	PenaltyAmount decimal.Decimal `json:"penaltyAmount"`
	OTSalary      decimal.Decimal `json:"otSalary"`
	TotalSalary   decimal.Decimal `json:"totalSalary"`
	Status        string          `json:"status"`
}

type Filter struct {
	EmpID    string
	Status   string
	MonthNum int
	YearNum  int
}

func (f Filter) Matches(p Payroll) bool {
	return (f.EmpID == "" || p.EmpID == f.EmpID) &&
		(f.Status == "" || p.Status == f.Status) &&
		(f.MonthNum == 0 || p.MonthNum == f.MonthNum) &&
		(f.YearNum == 0 || p.YearNum == f.YearNum)
}

type Payment struct {
	PaymentID   string        `json:"paymentId"`
	PayrollID   string        `json:"payrollId"`
	PaymentDate calendar.Date `json:"paymentDate"`
	ApprovedBy  string        `json:"approvedBy"`
	Note        string        `json:"note"`
}

// Components is one employee's aggregate inputs for a pay period, as read by
// the store before any pay arithmetic is applied.
type Components struct {
	EmpID         string
	BasicSalary   decimal.Decimal
	Allowance     decimal.Decimal
	RewardAmount  decimal.Decimal
	PenaltyAmount decimal.Decimal
	OTHours       decimal.Decimal
	// OTMonthlyBase is base salary x factor of the employee's latest active
	// contract, regardless of period.
	OTMonthlyBase decimal.Decimal
}

type CalculationRequest struct {
	MonthNum int    `json:"monthNum"`
	YearNum  int    `json:"yearNum"`
	EmpID    string `json:"empId,omitempty"`
}

type CalculationResult struct {
	Message    string    `json:"message"`
	MonthNum   int       `json:"monthNum"`
	YearNum    int       `json:"yearNum"`
	Calculated int       `json:"calculated"`
	Skipped    int       `json:"skipped"`
	Payrolls   []Payroll `json:"payrolls"`
}

type Payslip struct {
	Payroll      Payroll
	FullName     string
	DeptName     string
	PositionName string
	Payment      *Payment
}
