package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/calendar"
)

func day(d int) calendar.Date {
	return calendar.NewDate(2024, time.November, d)
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{AttendID: "b", EmpID: "EMP001", AttendanceDate: day(1), IsWorkingDay: true, OTHours: decimal.RequireFromString("2.5")},
		{AttendID: "a", EmpID: "EMP001", AttendanceDate: day(2), IsWorkingDay: true, OTHours: decimal.NewFromInt(1)},
		{AttendID: "c", EmpID: "EMP001", AttendanceDate: day(3), IsWorkingDay: false},
		{AttendID: "d", EmpID: "EMP002", AttendanceDate: day(3), IsWorkingDay: true},
		{AttendID: "e", EmpID: "EMP001", AttendanceDate: calendar.NewDate(2024, time.December, 2), IsWorkingDay: true},
	}

	summaries := Summarize(records)
	require.Len(t, summaries, 3)

	nov := summaries[0]
	assert.Equal(t, "a", nov.AttendID)
	assert.Equal(t, "EMP001", nov.EmpID)
	assert.Equal(t, 11, nov.MonthNum)
	assert.Equal(t, 2024, nov.YearNum)
	assert.Equal(t, 2, nov.WorkDays)
	assert.Equal(t, 1, nov.LeaveDays)
	assert.True(t, decimal.RequireFromString("3.5").Equal(nov.OTHours))

	assert.Equal(t, "EMP002", summaries[1].EmpID)
	assert.Equal(t, 12, summaries[2].MonthNum)
}

func TestSummarizeEmpty(t *testing.T) {
	out := Summarize(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFilterMatches(t *testing.T) {
	r := Record{EmpID: "EMP001", AttendanceDate: day(15)}
	assert.True(t, Filter{}.Matches(r))
	assert.True(t, Filter{EmpID: "EMP001", MonthNum: 11, YearNum: 2024}.Matches(r))
	assert.False(t, Filter{EmpID: "EMP002"}.Matches(r))
	assert.False(t, Filter{MonthNum: 10}.Matches(r))
	assert.False(t, Filter{YearNum: 2023}.Matches(r))
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC)
	out := time.Date(2024, 11, 1, 17, 30, 0, 0, time.UTC)
	assert.True(t, decimal.RequireFromString("9.5").Equal(WorkedHours(&in, &out)))
	assert.True(t, WorkedHours(&out, &in).IsZero())
	assert.True(t, WorkedHours(nil, &out).IsZero())
}
