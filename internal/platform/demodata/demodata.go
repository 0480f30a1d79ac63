// Package demodata holds the sample company used by the in-memory backend and
// by `SEED_DEMO_DATA`.
package demodata

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/calendar"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
)

type Dataset struct {
	Departments   []core.Department
	Positions     []core.Position
	Employees     []core.Employee
	Dependents    []core.Dependent
	SalaryFactors []core.SalaryFactor
	Contracts     []core.Contract
	Allowances    []core.Allowance
	Attendance    []attendance.Record
	Rewards       []payroll.Reward
	Penalties     []payroll.Penalty
	Payrolls      []payroll.Payroll
	Payments      []payroll.Payment
}

// DefaultSalaryFactors are seeded into every database.
var DefaultSalaryFactors = []core.SalaryFactor{
	{FactorID: "SF001", Value: decimal.RequireFromString("1.0")},
	{FactorID: "SF002", Value: decimal.RequireFromString("1.2")},
	{FactorID: "SF003", Value: decimal.RequireFromString("1.5")},
	{FactorID: "SF004", Value: decimal.RequireFromString("2.0")},
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

func datePtr(year int, month time.Month, day int) *calendar.Date {
	d := date(year, month, day)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func factorID(value string) string {
	v := decimal.RequireFromString(value)
	for _, f := range DefaultSalaryFactors {
		if f.Value.Equal(v) {
			return f.FactorID
		}
	}
	return ""
}

// Load builds a fresh copy of the sample company.
func Load() Dataset {
	ds := Dataset{
		Departments: []core.Department{
			{DeptID: "DEPT001", DeptName: "Phòng Nhân Sự", Location: "Tầng 3"},
			{DeptID: "DEPT002", DeptName: "Phòng Kế Toán", Location: "Tầng 2"},
			{DeptID: "DEPT003", DeptName: "Phòng IT", Location: "Tầng 4"},
			{DeptID: "DEPT004", DeptName: "Phòng Kinh Doanh", Location: "Tầng 1"},
			{DeptID: "DEPT005", DeptName: "Phòng Marketing", Location: "Tầng 2"},
		},
		Positions: []core.Position{
			{PositionID: "POS001", PositionName: "Giám Đốc", BaseSalary: money(50000000)},
			{PositionID: "POS002", PositionName: "Trưởng Phòng", BaseSalary: money(30000000)},
			{PositionID: "POS003", PositionName: "Phó Phòng", BaseSalary: money(25000000)},
			{PositionID: "POS004", PositionName: "Nhân Viên", BaseSalary: money(15000000)},
			{PositionID: "POS005", PositionName: "Thực Tập Sinh", BaseSalary: money(5000000)},
		},
		Employees: []core.Employee{
			{EmpID: "EMP001", FullName: "Nguyễn Văn A", BirthDate: datePtr(1990, 5, 15), Gender: intPtr(1), DeptID: "DEPT001", PositionID: "POS002", JoinDate: datePtr(2020, 1, 15), Status: core.StatusActive},
			{EmpID: "EMP002", FullName: "Trần Thị B", BirthDate: datePtr(1992, 8, 20), Gender: intPtr(0), DeptID: "DEPT002", PositionID: "POS004", JoinDate: datePtr(2021, 3, 10), Status: core.StatusActive},
			{EmpID: "EMP003", FullName: "Lê Văn C", BirthDate: datePtr(1988, 12, 5), Gender: intPtr(1), DeptID: "DEPT003", PositionID: "POS002", JoinDate: datePtr(2019, 6, 1), Status: core.StatusActive},
			{EmpID: "EMP004", FullName: "Phạm Thị D", BirthDate: datePtr(1995, 3, 25), Gender: intPtr(0), DeptID: "DEPT004", PositionID: "POS004", JoinDate: datePtr(2022, 1, 20), Status: core.StatusActive},
			{EmpID: "EMP005", FullName: "Hoàng Văn E", BirthDate: datePtr(1993, 7, 10), Gender: intPtr(1), DeptID: "DEPT003", PositionID: "POS004", JoinDate: datePtr(2021, 9, 15), Status: core.StatusActive},
		},
		Dependents: []core.Dependent{
			{DependentID: "DP001", EmpID: "EMP001", FullName: "Nguyễn Thị An", Relationship: "Con", BirthDate: datePtr(2018, 4, 2), Gender: intPtr(0)},
			{DependentID: "DP002", EmpID: "EMP003", FullName: "Lê Thị Hoa", Relationship: "Vợ", BirthDate: datePtr(1990, 9, 12), Gender: intPtr(0)},
		},
		SalaryFactors: append([]core.SalaryFactor(nil), DefaultSalaryFactors...),
		Contracts: []core.Contract{
			contract("CT001", "EMP001", date(2020, 1, 15), datePtr(2025, 1, 14), "1.5", "Chính thức", 30000000),
			contract("CT002", "EMP002", date(2021, 3, 10), datePtr(2024, 3, 9), "1.2", "Chính thức", 15000000),
			contract("CT003", "EMP003", date(2019, 6, 1), datePtr(2024, 5, 31), "1.5", "Chính thức", 30000000),
			contract("CT004", "EMP004", date(2022, 1, 20), datePtr(2023, 1, 19), "1.0", "Thử việc", 15000000),
			contract("CT005", "EMP005", date(2021, 9, 15), datePtr(2024, 9, 14), "1.2", "Chính thức", 15000000),
		},
		Allowances: []core.Allowance{
			allowance("AL001", "EMP001", 2000000),
			allowance("AL002", "EMP002", 1000000),
			allowance("AL003", "EMP003", 2000000),
			allowance("AL004", "EMP004", 500000),
			allowance("AL005", "EMP005", 1000000),
		},
		Rewards: []payroll.Reward{
			{RewardID: "RW001", EmpID: "EMP001", RewardType: "Thưởng dự án", RewardDate: date(2024, 11, 15), Amount: money(5000000), Description: "Hoàn thành tốt dự án Q4", ApprovedBy: "Giám đốc Nguyễn Văn X"},
			{RewardID: "RW002", EmpID: "EMP003", RewardType: "Thưởng cá nhân", RewardDate: date(2024, 11, 20), Amount: money(3000000), Description: "Nhân viên xuất sắc tháng 11", ApprovedBy: "Trưởng phòng Lê Văn Y"},
			{RewardID: "RW003", DeptID: "DEPT003", RewardType: "Thưởng phòng ban", RewardDate: date(2024, 11, 25), Amount: money(10000000), Description: "Phòng IT hoàn thành tốt nhiệm vụ", ApprovedBy: "Giám đốc Nguyễn Văn X"},
		},
		Penalties: []payroll.Penalty{
			{PenaltyID: "PN001", EmpID: "EMP002", PenaltyType: "Đi muộn", PenaltyDate: date(2024, 11, 10), Amount: money(200000), Reason: "Đi muộn 3 lần trong tháng"},
			{PenaltyID: "PN002", EmpID: "EMP004", PenaltyType: "Nghỉ không phép", PenaltyDate: date(2024, 11, 18), Amount: money(500000), Reason: "Nghỉ 1 ngày không báo trước"},
		},
		Payrolls: []payroll.Payroll{
			stored("PR001", "EMP001", 45000000, 2000000, 5000000, 0, 3150000, payroll.StatusPaid),
			stored("PR002", "EMP002", 18000000, 1000000, 0, 200000, 1050000, payroll.StatusPaid),
			stored("PR003", "EMP003", 45000000, 2000000, 3000000, 0, 4725000, payroll.StatusUnpaid),
			stored("PR004", "EMP004", 15000000, 500000, 0, 500000, 1400000, payroll.StatusUnpaid),
			stored("PR005", "EMP005", 18000000, 1000000, 0, 0, 2520000, payroll.StatusUnpaid),
		},
		Payments: []payroll.Payment{
			{PaymentID: "PM001", PayrollID: "PR001", PaymentDate: date(2024, 12, 1), ApprovedBy: "Kế toán trưởng Trần Thị Z", Note: "Thanh toán đầy đủ tháng 11/2024"},
			{PaymentID: "PM002", PayrollID: "PR002", PaymentDate: date(2024, 12, 1), ApprovedBy: "Kế toán trưởng Trần Thị Z", Note: "Thanh toán đầy đủ tháng 11/2024"},
		},
	}

	months := []struct {
		id        string
		emp       string
		workDays  int
		leaveDays int
		otHours   string
	}{
		{"ATT001", "EMP001", 22, 2, "10.5"},
		{"ATT002", "EMP002", 20, 4, "5"},
		{"ATT003", "EMP003", 23, 1, "15"},
		{"ATT004", "EMP004", 21, 3, "8"},
		{"ATT005", "EMP005", 22, 2, "12"},
	}
	for _, m := range months {
		ds.Attendance = append(ds.Attendance, monthOfRecords(m.id, m.emp, 2024, time.November, m.workDays, m.leaveDays, decimal.RequireFromString(m.otHours))...)
	}
	return ds
}

func contract(id, emp string, start calendar.Date, end *calendar.Date, factor, kind string, base int64) core.Contract {
	return core.Contract{
		ContractID:   id,
		EmpID:        emp,
		StartDate:    start,
		EndDate:      end,
		SalaryFactor: decimal.RequireFromString(factor),
		FactorID:     factorID(factor),
		ContractType: kind,
		BaseSalary:   money(base),
		OfferSalary:  money(base),
		SalaryType:   "MONTHLY",
		Status:       core.StatusActive,
	}
}

func allowance(id, emp string, amount int64) core.Allowance {
	return core.Allowance{
		AllowanceID:   id,
		EmpID:         emp,
		AllowanceType: "Phụ cấp ăn trưa",
		Amount:        money(amount),
		StartDate:     datePtr(2024, 1, 1),
		Status:        core.StatusActive,
	}
}

func stored(id, emp string, basic, allow, reward, penalty, ot int64, status string) payroll.Payroll {
	p := payroll.Payroll{
		PayrollID:     id,
		EmpID:         emp,
		MonthNum:      11,
		YearNum:       2024,
		BasicSalary:   money(basic),
		Allowance:     money(allow),
		RewardAmount:  money(reward),
		PenaltyAmount: money(penalty),
		OTSalary:      money(ot),
		Status:        status,
	}
	p.TotalSalary = payroll.Total(p)
	return p
}

// monthOfRecords expands a monthly summary into daily records: working days
// first, then leave days, with all overtime on the first day. The first
// record takes the summary id so the regrouped summary keeps it.
func monthOfRecords(id, emp string, year int, month time.Month, workDays, leaveDays int, ot decimal.Decimal) []attendance.Record {
	out := make([]attendance.Record, 0, workDays+leaveDays)
	for day := 1; day <= workDays+leaveDays; day++ {
		rec := attendance.Record{
			AttendID:       fmt.Sprintf("%s-%02d", id, day),
			EmpID:          emp,
			AttendanceDate: date(year, month, day),
			IsWorkingDay:   day <= workDays,
		}
		if day == 1 {
			rec.AttendID = id
			rec.OTHours = ot
		}
		if rec.IsWorkingDay {
			in := time.Date(year, month, day, 8, 0, 0, 0, time.UTC)
			checkOut := in.Add(9 * time.Hour)
			rec.CheckInTime = &in
			rec.CheckOutTime = &checkOut
			rec.WorkingHours = decimal.NewFromInt(8)
		}
		out = append(out, rec)
	}
	return out
}
