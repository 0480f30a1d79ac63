package payroll

import (
	"bytes"
	"testing"

	"hrpay/internal/domain/calendar"
)

func TestPayslipPDF(t *testing.T) {
	slip := Payslip{
		Payroll: Compute(Components{
			EmpID:         "EMP001",
			BasicSalary:   d("45000000"),
			Allowance:     d("2000000"),
			OTHours:       d("10.5"),
			OTMonthlyBase: d("45000000"),
		}, 11, 2024),
		FullName:     "Nguyễn Văn A",
		DeptName:     "Phòng Nhân Sự",
		PositionName: "Trưởng phòng",
		Payment: &Payment{
			PaymentID:   "PM001",
			PaymentDate: calendar.NewDate(2024, 12, 1),
			ApprovedBy:  "EMP001",
		},
	}

	out, err := PayslipPDF(slip)
	if err != nil {
		t.Fatalf("render payslip: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output, got %q", out[:min(len(out), 8)])
	}
}
