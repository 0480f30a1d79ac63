package payroll

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderPayslip builds the PDF payslip for one payroll row.
func (s *Service) RenderPayslip(ctx context.Context, payrollID string) ([]byte, error) {
	slip, err := s.store.PayslipData(ctx, strings.TrimSpace(payrollID))
	if err != nil {
		return nil, err
	}
	return PayslipPDF(slip)
}

func PayslipPDF(slip Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	p := slip.Payroll
	pdf.SetFont("Helvetica", "", 12)
	line := func(text string) {
		pdf.Cell(0, 8, tr(text))
		pdf.Ln(7)
	}
	line(fmt.Sprintf("Employee: %s (%s)", slip.FullName, p.EmpID))
	if slip.DeptName != "" {
		line("Department: " + slip.DeptName)
	}
	if slip.PositionName != "" {
		line("Position: " + slip.PositionName)
	}
	line(fmt.Sprintf("Period: %02d/%d", p.MonthNum, p.YearNum))
	pdf.Ln(3)

	amounts := []struct {
		label string
		value decimal.Decimal
	}{
		{"Basic salary", p.BasicSalary},
		{"Allowance", p.Allowance},
		{"Reward", p.RewardAmount},
		{"Penalty", p.PenaltyAmount.Neg()},
		{"Overtime", p.OTSalary},
	}
	for _, a := range amounts {
		pdf.CellFormat(60, 8, a.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, a.value.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, p.TotalSalary.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	status := "Status: " + p.Status
	if slip.Payment != nil {
		status += fmt.Sprintf(" on %s", slip.Payment.PaymentDate)
		if slip.Payment.ApprovedBy != "" {
			status += ", approved by " + slip.Payment.ApprovedBy
		}
	}
	line(status)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
