package reports

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() Report {
	return newReport(TypeAttendance, attendanceHeaders, []AttendanceRow{
		{EmpID: "EMP001", EmpName: "Nguyễn Văn A", DeptName: "Phòng Nhân Sự", MonthNum: 11, YearNum: 2024, WorkDays: 22, LeaveDays: 2, OTHours: decimal.RequireFromString("10.5"), TotalDays: 24},
		{EmpID: "EMP002", EmpName: "Trần Thị B", DeptName: "Phòng Kế Toán", MonthNum: 11, YearNum: 2024, WorkDays: 20, LeaveDays: 4, OTHours: decimal.NewFromInt(5), TotalDays: 24},
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, attendanceHeaders, records[0])
	require.Equal(t, []string{"EMP001", "Nguyễn Văn A", "Phòng Nhân Sự", "11", "2024", "22", "2", "10.5", "24"}, records[1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "otHours", rows[0][7])
	require.Equal(t, "EMP002", rows[2][0])
	require.Equal(t, "5", rows[2][7])
	require.Equal(t, "totalDays", rows[0][8])
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" Salary ")
	require.NoError(t, err)
	require.Equal(t, TypeSalary, typ)

	_, err = ParseType("")
	require.ErrorIs(t, err, ErrTypeRequired)

	_, err = ParseType("bonus")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestHeadersMatchCells(t *testing.T) {
	require.Len(t, SalaryRow{}.Cells(), len(salaryHeaders))
	require.Len(t, AttendanceRow{}.Cells(), len(attendanceHeaders))
	require.Len(t, PaymentRow{}.Cells(), len(paymentHeaders))
	require.Equal(t, []string{"payrollId", "empId", "empName"}, salaryHeaders[:3])
}
