package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/calendar"
	"hrpay/internal/domain/core"
	"hrpay/internal/platform/pgutil"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const summarySelect = `
    SELECT MIN(id), emp_id,
           EXTRACT(YEAR FROM attendance_date)::int AS year_num,
           EXTRACT(MONTH FROM attendance_date)::int AS month_num,
           COUNT(*) FILTER (WHERE is_working_day),
           COUNT(*) FILTER (WHERE NOT is_working_day),
           COALESCE(SUM(ot_hours), 0)
    FROM attendance`

func scanSummaries(rows pgx.Rows) ([]Summary, error) {
	defer rows.Close()
	out := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		var ot pgtype.Numeric
		if err := rows.Scan(&s.AttendID, &s.EmpID, &s.YearNum, &s.MonthNum, &s.WorkDays, &s.LeaveDays, &ot); err != nil {
			return nil, err
		}
		s.OTHours = pgutil.Decimal(ot)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (s *Store) ListAttendanceSummaries(ctx context.Context, filter Filter) ([]Summary, error) {
	rows, err := s.DB.Query(ctx, summarySelect+`
    WHERE ($1 = '' OR emp_id = $1)
      AND ($2::int = 0 OR EXTRACT(MONTH FROM attendance_date) = $2::int)
      AND ($3::int = 0 OR EXTRACT(YEAR FROM attendance_date) = $3::int)
    GROUP BY emp_id, year_num, month_num
    ORDER BY year_num DESC, month_num DESC, emp_id
  `, filter.EmpID, filter.MonthNum, filter.YearNum)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

func (s *Store) GetAttendanceSummary(ctx context.Context, attendID string) (Summary, error) {
	rows, err := s.DB.Query(ctx, summarySelect+`
    WHERE (emp_id, date_trunc('month', attendance_date)) = (
      SELECT emp_id, date_trunc('month', attendance_date) FROM attendance WHERE id = $1
    )
    GROUP BY emp_id, year_num, month_num
  `, attendID)
	if err != nil {
		return Summary{}, err
	}
	summaries, err := scanSummaries(rows)
	if err != nil {
		return Summary{}, err
	}
	if len(summaries) == 0 {
		return Summary{}, ErrNotFound
	}
	return summaries[0], nil
}

const recordSelect = `
    SELECT id, emp_id, attendance_date, check_in_time, check_out_time,
           is_working_day, working_hours, ot_hours
    FROM attendance`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	var day time.Time
	var worked, ot pgtype.Numeric
	if err := row.Scan(&r.AttendID, &r.EmpID, &day, &r.CheckInTime, &r.CheckOutTime, &r.IsWorkingDay, &worked, &ot); err != nil {
		return Record{}, err
	}
	r.AttendanceDate = calendar.FromTime(day)
	r.WorkingHours = pgutil.Decimal(worked)
	r.OTHours = pgutil.Decimal(ot)
	return r, nil
}

func (s *Store) ListAttendanceRecords(ctx context.Context, filter Filter) ([]Record, error) {
	rows, err := s.DB.Query(ctx, recordSelect+`
    WHERE ($1 = '' OR emp_id = $1)
      AND ($2::int = 0 OR EXTRACT(MONTH FROM attendance_date) = $2::int)
      AND ($3::int = 0 OR EXTRACT(YEAR FROM attendance_date) = $3::int)
    ORDER BY attendance_date, emp_id
  `, filter.EmpID, filter.MonthNum, filter.YearNum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetAttendanceRecord(ctx context.Context, attendID string) (Record, error) {
	r, err := scanRecord(s.DB.QueryRow(ctx, recordSelect+` WHERE id = $1`, attendID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *Store) CreateAttendanceRecord(ctx context.Context, r Record) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO attendance (id, emp_id, attendance_date, check_in_time, check_out_time,
                            is_working_day, working_hours, ot_hours, created_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'system')
  `, r.AttendID, r.EmpID, r.AttendanceDate.Time, r.CheckInTime, r.CheckOutTime,
		r.IsWorkingDay, pgutil.Numeric(r.WorkingHours), pgutil.Numeric(r.OTHours))
	return core.WriteError(err)
}

func (s *Store) UpdateAttendanceRecord(ctx context.Context, r Record) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE attendance
    SET emp_id = $2, attendance_date = $3, check_in_time = $4, check_out_time = $5,
        is_working_day = $6, working_hours = $7, ot_hours = $8,
        updated_by = 'system', updated_at = now()
    WHERE id = $1
  `, r.AttendID, r.EmpID, r.AttendanceDate.Time, r.CheckInTime, r.CheckOutTime,
		r.IsWorkingDay, pgutil.Numeric(r.WorkingHours), pgutil.Numeric(r.OTHours))
	if err != nil {
		return false, core.WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) DeleteAttendanceMonth(ctx context.Context, empID string, yearNum, monthNum int) (int64, error) {
	cmd, err := s.DB.Exec(ctx, `
    DELETE FROM attendance
    WHERE emp_id = $1
      AND EXTRACT(YEAR FROM attendance_date) = $2::int
      AND EXTRACT(MONTH FROM attendance_date) = $3::int
  `, empID, yearNum, monthNum)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
