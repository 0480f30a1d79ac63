package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrpay/internal/platform/cache"
)

type countingStore struct {
	calls int
	rows  []SalaryRow
}

func (s *countingStore) SalaryReport(ctx context.Context, f Filter) ([]SalaryRow, error) {
	s.calls++
	return s.rows, nil
}

func (s *countingStore) AttendanceReport(ctx context.Context, f Filter) ([]AttendanceRow, error) {
	s.calls++
	return []AttendanceRow{}, nil
}

func (s *countingStore) PaymentReport(ctx context.Context, f Filter) ([]PaymentRow, error) {
	s.calls++
	return []PaymentRow{}, nil
}

func TestJSONCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{rows: []SalaryRow{{EmpID: "EMP001", TotalSalary: decimal.NewFromInt(100), Status: "UNPAID"}}}
	svc := NewService(store, cache.NewMemory(), time.Minute)
	filter := Filter{YearNum: 2024, MonthNum: 11}

	first, err := svc.JSON(ctx, TypeSalary, filter)
	require.NoError(t, err)
	second, err := svc.JSON(ctx, TypeSalary, filter)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, store.calls)

	store.rows[0].Status = "PAID"
	svc.Invalidate(ctx)

	third, err := svc.JSON(ctx, TypeSalary, filter)
	require.NoError(t, err)
	require.Equal(t, 2, store.calls)
	require.Contains(t, string(third), `"status":"PAID"`)
}

func TestJSONWithoutCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{}
	svc := NewService(store, nil, time.Minute)

	payload, err := svc.JSON(ctx, TypePayment, Filter{})
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(payload))

	_, err = svc.JSON(ctx, TypePayment, Filter{})
	require.NoError(t, err)
	require.Equal(t, 2, store.calls)
	svc.Invalidate(ctx)
}
