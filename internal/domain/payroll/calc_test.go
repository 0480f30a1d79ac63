package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func TestOvertimePay(t *testing.T) {
	got := OvertimePay(d("10.5"), d("45000000"))
	if !got.Equal(d("4026988.64")) {
		t.Fatalf("expected 4026988.64, got %s", got)
	}
	if !OvertimePay(decimal.Zero, d("45000000")).IsZero() {
		t.Fatal("expected zero pay without overtime hours")
	}
	if !OvertimePay(d("8"), decimal.Zero).IsZero() {
		t.Fatal("expected zero pay without a contract base")
	}
}

func TestComputeTotalInvariant(t *testing.T) {
	cases := []struct {
		name string
		in   Components
		want string
	}{
		{
			name: "all components",
			in: Components{
				EmpID:         "EMP001",
				BasicSalary:   d("45000000"),
				Allowance:     d("2000000"),
				RewardAmount:  d("5000000"),
				PenaltyAmount: d("200000"),
				OTHours:       d("10.5"),
				OTMonthlyBase: d("45000000"),
			},
			want: "55826988.64",
		},
		{
			name: "no contract",
			in: Components{
				EmpID:         "EMP009",
				RewardAmount:  d("10000000"),
				PenaltyAmount: d("500000"),
			},
			want: "9500000",
		},
		{
			name: "empty",
			in:   Components{EmpID: "EMP010"},
			want: "0",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := Compute(tc.in, 11, 2024)
			if p.Status != StatusUnpaid {
				t.Fatalf("expected UNPAID, got %s", p.Status)
			}
			if p.MonthNum != 11 || p.YearNum != 2024 || p.EmpID != tc.in.EmpID {
				t.Fatalf("unexpected period fields: %+v", p)
			}
			sum := p.BasicSalary.Add(p.Allowance).Add(p.RewardAmount).Sub(p.PenaltyAmount).Add(p.OTSalary)
			if !p.TotalSalary.Equal(sum) {
				t.Fatalf("total %s does not match components %s", p.TotalSalary, sum)
			}
			if !p.TotalSalary.Equal(d(tc.want)) {
				t.Fatalf("expected total %s, got %s", tc.want, p.TotalSalary)
			}
		})
	}
}

func TestValidPeriod(t *testing.T) {
	if !ValidPeriod(1, 2024) || !ValidPeriod(12, 2024) {
		t.Fatal("expected months 1 and 12 to be valid")
	}
	if ValidPeriod(0, 2024) || ValidPeriod(13, 2024) || ValidPeriod(5, 0) {
		t.Fatal("expected out-of-range periods to be rejected")
	}
}
