package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
)

// Record is one employee-day of attendance.
type Record struct {
	AttendID       string          `json:"attendId"`
	EmpID          string          `json:"empId"`
	AttendanceDate calendar.Date   `json:"attendanceDate"`
	CheckInTime    *time.Time      `json:"checkInTime,omitempty"`
	CheckOutTime   *time.Time      `json:"checkOutTime,omitempty"`
	IsWorkingDay   bool            `json:"isWorkingDay"`
	WorkingHours   decimal.Decimal `json:"workingHours"`
	OTHours        decimal.Decimal `json:"otHours"`
}

// Summary aggregates one employee's records for a month.
type Summary struct {
	AttendID  string          `json:"attendId"`
	EmpID     string          `json:"empId"`
	MonthNum  int             `json:"monthNum"`
	YearNum   int             `json:"yearNum"`
	WorkDays  int             `json:"workDays"`
	LeaveDays int             `json:"leaveDays"`
	OTHours   decimal.Decimal `json:"otHours"`
}

type Filter struct {
	EmpID    string
	MonthNum int
	YearNum  int
}

func (f Filter) Matches(r Record) bool {
	if f.EmpID != "" && r.EmpID != f.EmpID {
		return false
	}
	if f.MonthNum != 0 && int(r.AttendanceDate.Month()) != f.MonthNum {
		return false
	}
	return f.YearNum == 0 || r.AttendanceDate.Year() == f.YearNum
}

// Summarize groups records by employee and month. The summary id is the
// smallest record id of its group.
func Summarize(records []Record) []Summary {
	type key struct {
		emp   string
		year  int
		month int
	}
	index := make(map[key]int)
	out := make([]Summary, 0)
	for _, r := range records {
		k := key{emp: r.EmpID, year: r.AttendanceDate.Year(), month: int(r.AttendanceDate.Month())}
		i, ok := index[k]
		if !ok {
			out = append(out, Summary{AttendID: r.AttendID, EmpID: k.emp, YearNum: k.year, MonthNum: k.month})
			i = len(out) - 1
			index[k] = i
		}
		s := &out[i]
		if r.AttendID < s.AttendID {
			s.AttendID = r.AttendID
		}
		if r.IsWorkingDay {
			s.WorkDays++
		} else {
			s.LeaveDays++
		}
		s.OTHours = s.OTHours.Add(r.OTHours)
	}
	return out
}

// WorkedHours derives working hours from check-in and check-out times.
func WorkedHours(in, out *time.Time) decimal.Decimal {
	if in == nil || out == nil || !out.After(*in) {
		return decimal.Zero
	}
	minutes := int64(out.Sub(*in) / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2)
}
