package reports

import "context"

type StoreAPI interface {
	SalaryReport(ctx context.Context, filter Filter) ([]SalaryRow, error)
	AttendanceReport(ctx context.Context, filter Filter) ([]AttendanceRow, error)
	PaymentReport(ctx context.Context, filter Filter) ([]PaymentRow, error)
}
