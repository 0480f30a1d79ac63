package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"hrpay/internal/platform/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, svc *Service, id string, status string) Run {
	t.Helper()
	var run Run
	require.Eventually(t, func() bool {
		var ok bool
		run, ok = svc.Get(id)
		return ok && run.Status == status
	}, 2*time.Second, 10*time.Millisecond)
	return run
}

func TestEnqueueRunsJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(metrics.New())
	svc.Start(ctx)
	defer func() {
		cancel()
		svc.Wait()
	}()

	queued, err := svc.Enqueue(JobPayrollCalculation, func(ctx context.Context) (any, error) {
		return map[string]int{"calculated": 3}, nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, queued.ID)

	run := waitFor(t, svc, queued.ID, StatusCompleted)
	require.NotNil(t, run.StartedAt)
	require.NotNil(t, run.CompletedAt)
	require.Equal(t, map[string]int{"calculated": 3}, run.Result)
}

func TestFailedJobIsCounted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := metrics.New()
	svc := New(m)
	svc.Start(ctx)
	defer func() {
		cancel()
		svc.Wait()
	}()

	queued, err := svc.Enqueue(JobPayrollCalculation, func(ctx context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	require.NoError(t, err)

	run := waitFor(t, svc, queued.ID, StatusFailed)
	require.Equal(t, "boom", run.Error)
	require.EqualValues(t, 1, m.Snapshot()["jobsFailedTotal"])
}

func TestRunNowRecoversPanic(t *testing.T) {
	svc := New(nil)
	run, err := svc.RunNow(context.Background(), "explode", func(ctx context.Context) (any, error) {
		panic("bad input")
	})
	require.Error(t, err)
	require.Equal(t, StatusFailed, run.Status)
	require.Contains(t, run.Error, "bad input")
}

func TestQueueFull(t *testing.T) {
	svc := New(nil)
	noop := func(ctx context.Context) (any, error) { return nil, nil }
	for i := 0; i < queueSize; i++ {
		_, err := svc.Enqueue("noop", noop)
		require.NoError(t, err)
	}
	run, err := svc.Enqueue("noop", noop)
	require.ErrorIs(t, err, ErrQueueFull)
	require.Equal(t, StatusFailed, run.Status)
}

func TestScheduledJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(nil)
	ticks := make(chan struct{}, 8)
	svc.Every("tick", 10*time.Millisecond, func(ctx context.Context) (any, error) {
		select {
		case ticks <- struct{}{}:
		default:
		}
		return nil, nil
	})
	svc.Every("disabled", 0, nil)
	svc.Start(ctx)

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job never ran")
	}
	cancel()
	svc.Wait()
}

func TestGetUnknown(t *testing.T) {
	_, ok := New(nil).Get("missing")
	require.False(t, ok)
}
