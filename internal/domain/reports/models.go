package reports

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
)

type Type string

const (
	TypeSalary     Type = "salary"
	TypeAttendance Type = "attendance"
	TypePayment    Type = "payment"
)

var (
	ErrTypeRequired = errors.New("report type is required")
	ErrInvalidType  = errors.New("invalid report type")
)

func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(raw))); t {
	case "":
		return "", ErrTypeRequired
	case TypeSalary, TypeAttendance, TypePayment:
		return t, nil
	}
	return "", ErrInvalidType
}

// Filter narrows a report; zero values mean "any".
type Filter struct {
	YearNum  int
	MonthNum int
	EmpCode  string
	DeptID   string
}

func (f Filter) key() string {
	return strings.Join([]string{
		strconv.Itoa(f.YearNum),
		strconv.Itoa(f.MonthNum),
		f.EmpCode,
		f.DeptID,
	}, "|")
}

type SalaryRow struct {
	PayrollID     string          `json:"payrollId"`
	EmpID         string          `json:"empId"`
	EmpName       string          `json:"empName"`
	DeptName      string          `json:"deptName"`
	PositionName  string          `json:"positionName"`
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

var salaryHeaders = []string{
	"payrollId", "empId", "empName", "deptName", "positionName", "monthNum", "yearNum",
	"basicSalary", "allowance", "rewardAmount", "penaltyAmount", "otSalary", "totalSalary", "status",
}

func (r SalaryRow) Cells() []string {
	return []string{
		r.PayrollID, r.EmpID, r.EmpName, r.DeptName, r.PositionName,
		strconv.Itoa(r.MonthNum), strconv.Itoa(r.YearNum),
		r.BasicSalary.StringFixed(2), r.Allowance.StringFixed(2), r.RewardAmount.StringFixed(2),
		r.PenaltyAmount.StringFixed(2), r.OTSalary.StringFixed(2), r.TotalSalary.StringFixed(2),
		r.Status,
	}
}

type AttendanceRow struct {
	EmpID     string          `json:"empId"`
	EmpName   string          `json:"empName"`
	DeptName  string          `json:"deptName"`
	MonthNum  int             `json:"monthNum"`
	YearNum   int             `json:"yearNum"`
	WorkDays  int             `json:"workDays"`
	LeaveDays int             `json:"leaveDays"`
	OTHours   decimal.Decimal `json:"otHours"`
	// TotalDays counts distinct attendance dates in the month.
	TotalDays int `json:"totalDays"`
}

var attendanceHeaders = []string{
	"empId", "empName", "deptName", "monthNum", "yearNum", "workDays", "leaveDays", "otHours", "totalDays",
}

func (r AttendanceRow) Cells() []string {
	return []string{
		r.EmpID, r.EmpName, r.DeptName,
		strconv.Itoa(r.MonthNum), strconv.Itoa(r.YearNum),
		strconv.Itoa(r.WorkDays), strconv.Itoa(r.LeaveDays),
		r.OTHours.String(), strconv.Itoa(r.TotalDays),
	}
}

type PaymentRow struct {
	PaymentID   string          `json:"paymentId"`
	PayrollID   string          `json:"payrollId"`
	EmpID       string          `json:"empId"`
	EmpName     string          `json:"empName"`
	DeptName    string          `json:"deptName"`
	MonthNum    int             `json:"monthNum"`
	YearNum     int             `json:"yearNum"`
	TotalSalary decimal.Decimal `json:"totalSalary"`
	PaymentDate calendar.Date   `json:"paymentDate"`
	ApprovedBy  string          `json:"approvedBy"`
	Note        string          `json:"note"`
}

var paymentHeaders = []string{
	"paymentId", "payrollId", "empId", "empName", "deptName", "monthNum", "yearNum",
	"totalSalary", "paymentDate", "approvedBy", "note",
}

func (r PaymentRow) Cells() []string {
	return []string{
		r.PaymentID, r.PayrollID, r.EmpID, r.EmpName, r.DeptName,
		strconv.Itoa(r.MonthNum), strconv.Itoa(r.YearNum),
		r.TotalSalary.StringFixed(2), r.PaymentDate.String(), r.ApprovedBy, r.Note,
	}
}

// Report holds the typed rows for JSON output alongside their tabular form
// for CSV and XLSX.
type Report struct {
	Type    Type
	Headers []string
	Rows    any
	Table   [][]string
}

type row interface {
	Cells() []string
}

func newReport[R row](t Type, headers []string, rows []R) Report {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, r.Cells())
	}
	return Report{Type: t, Headers: headers, Rows: rows, Table: table}
}
