package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-11-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.November, 15), d)

	d, err = Parse("2024-11-15T23:10:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-11-15", d.String())

	d, err = Parse("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = Parse("15/11/2024")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	type row struct {
		Start Date  `json:"startDate"`
		End   *Date `json:"endDate,omitempty"`
	}

	var in row
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2020-01-15","endDate":null}`), &in))
	assert.Equal(t, 2020, in.Start.Year())
	assert.Nil(t, in.End)

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"startDate":"2020-01-15"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"startDate":20200115}`), &in))
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 2024*12+11, NewDate(2024, time.November, 30).MonthIndex())
	assert.Less(t, MonthIndex(2024, 12), MonthIndex(2025, 1))
}

func TestPtrAndTimePtr(t *testing.T) {
	assert.Nil(t, Ptr(nil))
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	p := Ptr(&now)
	require.NotNil(t, p)
	assert.Equal(t, "2024-01-02", p.String())

	var missing *Date
	assert.Nil(t, missing.TimePtr())
	assert.Equal(t, NewDate(2024, 1, 2).Time, *p.TimePtr())
}
