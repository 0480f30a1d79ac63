package payroll

import "github.com/shopspring/decimal"

var (
	hoursPerMonth = decimal.NewFromInt(StandardMonthlyHours)
	otMultiplier  = decimal.RequireFromString(overtimeMultiplier)
)

// OvertimePay is hours x (monthlyBase / 176) x 1.5, rounded to cents.
func OvertimePay(hours, monthlyBase decimal.Decimal) decimal.Decimal {
	if hours.Sign() <= 0 || monthlyBase.Sign() <= 0 {
		return decimal.Zero
	}
	return hours.Mul(monthlyBase).Mul(otMultiplier).Div(hoursPerMonth).Round(2)
}

// Total is basicSalary + allowance + rewardAmount - penaltyAmount + otSalary.
func Total(p Payroll) decimal.Decimal {
	return p.BasicSalary.
		Add(p.Allowance).
		Add(p.RewardAmount).
		Sub(p.PenaltyAmount).
		Add(p.OTSalary)
}

// Compute builds an UNPAID payroll row for the period from aggregated inputs.
func Compute(c Components, monthNum, yearNum int) Payroll {
	p := Payroll{
		EmpID:         c.EmpID,
		MonthNum:      monthNum,
		YearNum:       yearNum,
		BasicSalary:   c.BasicSalary.Round(2),
		Allowance:     c.Allowance.Round(2),
		RewardAmount:  c.RewardAmount.Round(2),
		PenaltyAmount: c.PenaltyAmount.Round(2),
		OTSalary:      OvertimePay(c.OTHours, c.OTMonthlyBase),
		Status:        StatusUnpaid,
	}
	p.TotalSalary = Total(p)
	return p
}

func ValidPeriod(monthNum, yearNum int) bool {
	return monthNum >= 1 && monthNum <= 12 && yearNum > 0
}
