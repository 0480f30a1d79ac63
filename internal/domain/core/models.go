package core

import (
	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
)

type Department struct {
	DeptID   string `json:"deptId"`
	DeptName string `json:"deptName"`
	Location string `json:"location"`
}

type Position struct {
	PositionID   string          `json:"positionId"`
	PositionName string          `json:"positionName"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
}

type Employee struct {
	EmpID      string         `json:"empId"`
	FullName   string         `json:"fullName"`
	BirthDate  *calendar.Date `json:"birthDate,omitempty"`
	Gender     *int           `json:"gender,omitempty"`
	DeptID     string         `json:"deptId,omitempty"`
	PositionID string         `json:"positionId,omitempty"`
	JoinDate   *calendar.Date `json:"joinDate,omitempty"`
	Status     string         `json:"status"`
}

type EmployeeFilter struct {
	DeptID string
	Status string
}

type Dependent struct {
	DependentID  string         `json:"dependentId"`
	EmpID        string         `json:"empId"`
	FullName     string         `json:"fullName"`
	Relationship string         `json:"relationship"`
	BirthDate    *calendar.Date `json:"birthDate,omitempty"`
	Gender       *int           `json:"gender,omitempty"`
	IDNumber     string         `json:"idNumber,omitempty"`
}

type SalaryFactor struct {
	FactorID string          `json:"factorId"`
	Value    decimal.Decimal `json:"value"`
}

type Contract struct {
	ContractID   string          `json:"contractId"`
	EmpID        string          `json:"empId"`
	StartDate    calendar.Date   `json:"startDate"`
	EndDate      *calendar.Date  `json:"endDate,omitempty"`
	SalaryFactor decimal.Decimal `json:"salaryFactor"`
	FactorID     string          `json:"factorId,omitempty"`
	ContractType string          `json:"contractType"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
	OfferSalary  decimal.Decimal `json:"offerSalary"`
	SalaryType   string          `json:"salaryType"`
	Status       string          `json:"status"`
}

// Covers reports whether the contract's month span includes the given month.
func (c Contract) Covers(year, month int) bool {
	period := calendar.MonthIndex(year, month)
	if period < c.StartDate.MonthIndex() {
		return false
	}
	return c.EndDate == nil || period <= c.EndDate.MonthIndex()
}

type Allowance struct {
	AllowanceID   string          `json:"allowanceId"`
	EmpID         string          `json:"empId"`
	AllowanceType string          `json:"allowanceType"`
	Amount        decimal.Decimal `json:"amount"`
	StartDate     *calendar.Date  `json:"startDate,omitempty"`
	EndDate       *calendar.Date  `json:"endDate,omitempty"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
}

// AppliesTo reports whether an ACTIVE allowance is payable in the given month.
// A missing start date always applies.
func (a Allowance) AppliesTo(year, month int) bool {
	if a.Status != StatusActive {
		return false
	}
	period := calendar.MonthIndex(year, month)
	if a.StartDate != nil && period < a.StartDate.MonthIndex() {
		return false
	}
	return a.EndDate == nil || period <= a.EndDate.MonthIndex()
}
