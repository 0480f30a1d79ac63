package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/calendar"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/reports"
)

func dec(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func byEmp(result payroll.CalculationResult) map[string]payroll.Payroll {
	out := make(map[string]payroll.Payroll, len(result.Payrolls))
	for _, p := range result.Payrolls {
		out[p.EmpID] = p
	}
	return out
}

func TestCalculateSkipsPaidRows(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()
	svc := payroll.NewService(store)

	result, err := svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024})
	require.NoError(t, err)
	require.Equal(t, 3, result.Calculated)
	require.Equal(t, 2, result.Skipped)

	rows := byEmp(result)
	emp3 := rows["EMP003"]
	require.Equal(t, "PR003", emp3.PayrollID)
	require.True(t, emp3.BasicSalary.IsZero(), "contract ended before the period")
	require.True(t, emp3.Allowance.Equal(dec("2000000")))
	require.True(t, emp3.RewardAmount.Equal(dec("13000000")), "personal and department rewards")
	require.True(t, emp3.OTSalary.Equal(dec("5752840.91")))
	require.True(t, emp3.TotalSalary.Equal(dec("20752840.91")))
	require.Equal(t, payroll.StatusUnpaid, emp3.Status)

	paid, err := store.GetPayroll(ctx, "PR001")
	require.NoError(t, err)
	require.Equal(t, payroll.StatusPaid, paid.Status)
	require.True(t, paid.TotalSalary.Equal(dec("55150000")), "paid rows are never rewritten")
}

func TestCalculateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()
	svc := payroll.NewService(store)
	req := payroll.CalculationRequest{MonthNum: 12, YearNum: 2024}

	first, err := svc.Calculate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 5, first.Calculated)

	second, err := svc.Calculate(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 5, second.Calculated)

	a, b := byEmp(first), byEmp(second)
	for emp, p := range a {
		require.Equal(t, p.PayrollID, b[emp].PayrollID)
		require.True(t, p.TotalSalary.Equal(b[emp].TotalSalary))
	}

	list, err := store.ListPayrolls(ctx, payroll.Filter{MonthNum: 12, YearNum: 2024})
	require.NoError(t, err)
	require.Len(t, list, 5)

	emp1 := a["EMP001"]
	require.True(t, emp1.BasicSalary.Equal(dec("45000000")))
	require.True(t, emp1.TotalSalary.Equal(dec("47000000")))
}

func TestCalculateTotalMatchesComponents(t *testing.T) {
	ctx := context.Background()
	svc := payroll.NewService(NewSeeded())

	result, err := svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024})
	require.NoError(t, err)
	for _, p := range result.Payrolls {
		sum := p.BasicSalary.Add(p.Allowance).Add(p.RewardAmount).Sub(p.PenaltyAmount).Add(p.OTSalary)
		require.True(t, p.TotalSalary.Equal(sum), p.EmpID)
	}
}

func TestCalculateSingleEmployee(t *testing.T) {
	ctx := context.Background()
	svc := payroll.NewService(NewSeeded())

	result, err := svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024, EmpID: "EMP005"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Calculated)
	p := result.Payrolls[0]
	require.True(t, p.OTSalary.Equal(dec("1840909.09")))
	require.True(t, p.TotalSalary.Equal(dec("12840909.09")))

	_, err = svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024, EmpID: "EMP999"})
	require.ErrorIs(t, err, payroll.ErrNoEligibleEmployee)

	_, err = svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 13, YearNum: 2024})
	require.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestCreatePaymentMarksPaid(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()
	svc := payroll.NewService(store)

	pay, err := svc.CreatePayment(ctx, payroll.Payment{PayrollID: "PR003", ApprovedBy: "Kế toán"})
	require.NoError(t, err)
	require.NotEmpty(t, pay.PaymentID)
	require.False(t, pay.PaymentDate.IsZero())

	p, err := store.GetPayroll(ctx, "PR003")
	require.NoError(t, err)
	require.Equal(t, payroll.StatusPaid, p.Status)

	_, err = svc.CreatePayment(ctx, payroll.Payment{PayrollID: "PR003"})
	require.ErrorIs(t, err, payroll.ErrAlreadyPaid)
	_, err = svc.CreatePayment(ctx, payroll.Payment{PayrollID: "PR404"})
	require.ErrorIs(t, err, payroll.ErrPayrollNotFound)

	_, err = store.DeletePayroll(ctx, "PR003")
	require.ErrorIs(t, err, core.ErrInUse)

	result, err := svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024})
	require.NoError(t, err)
	require.Equal(t, 3, result.Skipped)
}

func TestDeleteEmployeeReferences(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()

	_, err := store.DeleteEmployee(ctx, "EMP001")
	require.ErrorIs(t, err, core.ErrInUse)

	emp := core.Employee{EmpID: "EMP100", FullName: "Đỗ Văn F", DeptID: "DEPT005", Status: core.StatusActive}
	require.NoError(t, store.CreateEmployee(ctx, emp))
	require.NoError(t, store.CreateDependent(ctx, core.Dependent{DependentID: "DP100", EmpID: "EMP100", FullName: "Đỗ Thị G"}))
	require.NoError(t, store.CreateAllowance(ctx, core.Allowance{AllowanceID: "AL100", EmpID: "EMP100", Amount: dec("100000"), Status: core.StatusActive}))
	require.NoError(t, store.CreateAttendanceRecord(ctx, attendance.Record{AttendID: "ATT100", EmpID: "EMP100", AttendanceDate: calendar.NewDate(2024, 11, 4), IsWorkingDay: true}))

	found, err := store.DeleteEmployee(ctx, "EMP100")
	require.NoError(t, err)
	require.True(t, found)

	deps, err := store.ListDependents(ctx, "EMP100")
	require.NoError(t, err)
	require.Empty(t, deps)
	allowances, err := store.ListAllowances(ctx, "EMP100")
	require.NoError(t, err)
	require.Empty(t, allowances)
	records, err := store.ListAttendanceRecords(ctx, attendance.Filter{EmpID: "EMP100"})
	require.NoError(t, err)
	require.Empty(t, records)

	found, err = store.DeleteEmployee(ctx, "EMP100")
	require.NoError(t, err)
	require.False(t, found)
}

func TestReferenceChecks(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()

	err := store.CreateEmployee(ctx, core.Employee{EmpID: "EMP200", FullName: "X", DeptID: "DEPT999"})
	require.ErrorIs(t, err, core.ErrReferenceNotFound)

	err = store.CreateDepartment(ctx, core.Department{DeptID: "DEPT001", DeptName: "dup"})
	require.ErrorIs(t, err, core.ErrDuplicate)

	_, err = store.DeleteDepartment(ctx, "DEPT003")
	require.ErrorIs(t, err, core.ErrInUse)

	found, err := store.DeleteDepartment(ctx, "DEPT005")
	require.NoError(t, err)
	require.True(t, found)

	err = store.CreateSalaryFactor(ctx, core.SalaryFactor{FactorID: "SF-NEW", Value: dec("1.50")})
	require.ErrorIs(t, err, core.ErrDuplicate)

	err = store.CreateReward(ctx, payroll.Reward{RewardID: "RW100", Amount: dec("1")})
	require.ErrorIs(t, err, core.ErrReferenceNotFound)
}

func TestAttendanceSummaries(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()

	summaries, err := store.ListAttendanceSummaries(ctx, attendance.Filter{MonthNum: 11, YearNum: 2024})
	require.NoError(t, err)
	require.Len(t, summaries, 5)
	require.Equal(t, "EMP001", summaries[0].EmpID)

	s, err := store.GetAttendanceSummary(ctx, "ATT003-05")
	require.NoError(t, err)
	require.Equal(t, "ATT003", s.AttendID)
	require.Equal(t, 23, s.WorkDays)

	n, err := store.DeleteAttendanceMonth(ctx, "EMP002", 2024, 11)
	require.NoError(t, err)
	require.EqualValues(t, 24, n)

	_, err = store.GetAttendanceSummary(ctx, "ATT002")
	require.ErrorIs(t, err, attendance.ErrNotFound)
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()

	salary, err := store.SalaryReport(ctx, reports.Filter{YearNum: 2024, MonthNum: 11, DeptID: "DEPT003"})
	require.NoError(t, err)
	require.Len(t, salary, 2)
	require.Equal(t, "Phòng IT", salary[0].DeptName)
	// Ordered by full name within the period.
	require.Equal(t, "EMP005", salary[0].EmpID)
	require.Equal(t, "PR005", salary[0].PayrollID)
	require.Equal(t, "Hoàng Văn E", salary[0].EmpName)
	require.Equal(t, "EMP003", salary[1].EmpID)

	payments, err := store.PaymentReport(ctx, reports.Filter{EmpCode: "EMP002"})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, "PM002", payments[0].PaymentID)

	att, err := store.AttendanceReport(ctx, reports.Filter{})
	require.NoError(t, err)
	require.Len(t, att, 5)
	require.Equal(t, "EMP005", att[0].EmpID)
	for _, row := range att {
		require.Equal(t, row.WorkDays+row.LeaveDays, row.TotalDays, row.EmpID)
	}

	require.NoError(t, store.CreateAttendanceRecord(ctx, attendance.Record{
		AttendID: "ATT-DUP", EmpID: "EMP001", AttendanceDate: calendar.NewDate(2024, time.November, 1), IsWorkingDay: true,
	}))
	att, err = store.AttendanceReport(ctx, reports.Filter{EmpCode: "EMP001"})
	require.NoError(t, err)
	require.Len(t, att, 1)
	require.Equal(t, 25, att[0].WorkDays+att[0].LeaveDays)
	require.Equal(t, 24, att[0].TotalDays)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewSeeded()
	svc := payroll.NewService(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.CreateDepartment(ctx, core.Department{DeptID: fmt.Sprintf("DEPT-%02d", i), DeptName: "Load"})
			_, _ = svc.Calculate(ctx, payroll.CalculationRequest{MonthNum: 10, YearNum: 2024})
			_, _ = store.ListDepartments(ctx)
		}(i)
	}
	wg.Wait()

	depts, err := store.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 25)

	list, err := store.ListPayrolls(ctx, payroll.Filter{MonthNum: 10, YearNum: 2024})
	require.NoError(t, err)
	require.Len(t, list, 5, "one row per employee and period")
}
