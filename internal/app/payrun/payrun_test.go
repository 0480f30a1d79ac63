package payrun

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/memstore"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/shared"
)

func newRunner() (*Runner, *audit.Memory) {
	rec := audit.NewMemory(10)
	return &Runner{
		Payroll: payroll.NewService(memstore.NewSeeded()),
		Changes: &shared.ChangeLog{Audit: rec},
		Metrics: metrics.New(),
	}, rec
}

func TestRunRecordsAuditAndMetrics(t *testing.T) {
	r, rec := newRunner()
	ctx := requestctx.WithActor(context.Background(), "hr-admin")

	result, err := r.Run(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Calculated)
	assert.Equal(t, 2, result.Skipped)

	events, err := rec.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionCalculate, events[0].Action)
	assert.Equal(t, "payroll", events[0].EntityType)
	assert.Equal(t, "2024-11", events[0].EntityID)
	assert.Equal(t, "hr-admin", events[0].Actor)

	snap := r.Metrics.Snapshot()
	assert.Equal(t, uint64(3), snap["payrollRowsCalculated"])
	assert.Equal(t, uint64(2), snap["payrollRowsSkippedPaid"])
}

func TestRunInvalidPeriodRecordsNothing(t *testing.T) {
	r, rec := newRunner()

	_, err := r.Run(context.Background(), payroll.CalculationRequest{MonthNum: 0, YearNum: 2024})
	require.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	events, err := rec.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestJobCarriesCallerIdentity(t *testing.T) {
	r, rec := newRunner()
	ctx := requestctx.WithActor(context.Background(), "hr-admin")
	ctx = requestctx.WithRequestID(ctx, "req-42")

	run := r.Job(ctx, payroll.CalculationRequest{MonthNum: 11, YearNum: 2024, EmpID: "EMP003"})
	out, err := run(context.Background())
	require.NoError(t, err)
	result, ok := out.(payroll.CalculationResult)
	require.True(t, ok)
	assert.Equal(t, 1, result.Calculated)

	events, err := rec.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-11/EMP003", events[0].EntityID)
	assert.Equal(t, "hr-admin", events[0].Actor)
	assert.Equal(t, "req-42", events[0].RequestID)
}
