package attendance

import "context"

type StoreAPI interface {
	ListAttendanceSummaries(ctx context.Context, filter Filter) ([]Summary, error)
	GetAttendanceSummary(ctx context.Context, attendID string) (Summary, error)
	ListAttendanceRecords(ctx context.Context, filter Filter) ([]Record, error)
	GetAttendanceRecord(ctx context.Context, attendID string) (Record, error)
	CreateAttendanceRecord(ctx context.Context, record Record) error
	UpdateAttendanceRecord(ctx context.Context, record Record) (bool, error)
	DeleteAttendanceMonth(ctx context.Context, empID string, yearNum, monthNum int) (int64, error)
}
