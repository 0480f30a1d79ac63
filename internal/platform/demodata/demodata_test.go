package demodata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/attendance"
)

func TestLoadAttendanceSummaries(t *testing.T) {
	ds := Load()
	summaries := attendance.Summarize(ds.Attendance)
	require.Len(t, summaries, 5)

	first := summaries[0]
	require.Equal(t, "ATT001", first.AttendID)
	require.Equal(t, "EMP001", first.EmpID)
	require.Equal(t, 22, first.WorkDays)
	require.Equal(t, 2, first.LeaveDays)
	require.Equal(t, "10.5", first.OTHours.String())
}

func TestLoadPayrollTotals(t *testing.T) {
	ds := Load()
	require.Len(t, ds.Payrolls, 5)
	require.Equal(t, "55150000", ds.Payrolls[0].TotalSalary.String())
	require.Equal(t, "18800000", ds.Payrolls[1].TotalSalary.String())
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	a := Load()
	a.Departments[0].DeptName = "changed"
	b := Load()
	require.Equal(t, "Phòng Nhân Sự", b.Departments[0].DeptName)
}

func TestContractsReferenceDefaultFactors(t *testing.T) {
	for _, c := range Load().Contracts {
		require.NotEmpty(t, c.FactorID, c.ContractID)
	}
}
