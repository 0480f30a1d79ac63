package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetails(t *testing.T) {
	require.JSONEq(t, `{"empId":"EMP001"}`, string(Details(map[string]string{"empId": "EMP001"})))
	require.Nil(t, Details(nil))
	require.Nil(t, Details(make(chan int)))
}

func TestLogRecorder(t *testing.T) {
	var rec Recorder = LogRecorder{}
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, Event{Action: ActionCreate, EntityType: "department", EntityID: "DEPT001"}))
	events, err := rec.List(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestMemoryKeepsNewestFirst(t *testing.T) {
	rec := NewMemory(2)
	ctx := context.Background()

	for _, id := range []string{"DEPT001", "DEPT002", "DEPT003"} {
		require.NoError(t, rec.Record(ctx, Event{Action: ActionCreate, EntityType: "department", EntityID: id}))
	}

	events, err := rec.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "DEPT003", events[0].EntityID)
	require.Equal(t, int64(3), events[0].ID)
	require.Equal(t, "DEPT002", events[1].EntityID)
	require.False(t, events[0].CreatedAt.IsZero())

	events, err = rec.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
}
