package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/calendar"
	"hrpay/internal/platform/pgutil"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) SalaryReport(ctx context.Context, f Filter) ([]SalaryRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT p.id, p.emp_id, e.full_name, COALESCE(d.dept_name, ''), COALESCE(ps.position_name, ''),
           p.month_num, p.year_num, p.basic_salary, p.allowance, p.reward_amount,
           p.penalty_amount, p.ot_salary, p.total_salary, p.status
    FROM payrolls p
    JOIN employees e ON e.code = p.emp_id
    LEFT JOIN departments d ON d.code = e.dept_id
    LEFT JOIN positions ps ON ps.code = e.position_id
    WHERE ($1::int = 0 OR p.year_num = $1::int)
      AND ($2::int = 0 OR p.month_num = $2::int)
      AND ($3::text = '' OR p.emp_id = $3::text)
      AND ($4::text = '' OR e.dept_id = $4::text)
    ORDER BY p.year_num DESC, p.month_num DESC, e.full_name
  `, f.YearNum, f.MonthNum, f.EmpCode, f.DeptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SalaryRow, 0)
	for rows.Next() {
		var r SalaryRow
		var month int16
		var basic, allowance, reward, penalty, ot, total pgtype.Numeric
		if err := rows.Scan(&r.PayrollID, &r.EmpID, &r.EmpName, &r.DeptName, &r.PositionName, &month, &r.YearNum,
			&basic, &allowance, &reward, &penalty, &ot, &total, &r.Status); err != nil {
			return nil, err
		}
		r.MonthNum = int(month)
		r.BasicSalary = pgutil.Decimal(basic)
		r.Allowance = pgutil.Decimal(allowance)
		r.RewardAmount = pgutil.Decimal(reward)
		r.PenaltyAmount = pgutil.Decimal(penalty)
		r.OTSalary = pgutil.Decimal(ot)
		r.TotalSalary = pgutil.Decimal(total)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) AttendanceReport(ctx context.Context, f Filter) ([]AttendanceRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.emp_id, e.full_name, COALESCE(d.dept_name, ''),
           EXTRACT(MONTH FROM a.attendance_date)::int AS month_num,
           EXTRACT(YEAR FROM a.attendance_date)::int AS year_num,
           COUNT(*) FILTER (WHERE a.is_working_day),
           COUNT(*) FILTER (WHERE NOT a.is_working_day),
           COALESCE(SUM(a.ot_hours), 0),
           COUNT(DISTINCT a.attendance_date)
    FROM attendance a
    JOIN employees e ON e.code = a.emp_id
    LEFT JOIN departments d ON d.code = e.dept_id
    WHERE ($1::int = 0 OR EXTRACT(YEAR FROM a.attendance_date) = $1::int)
      AND ($2::int = 0 OR EXTRACT(MONTH FROM a.attendance_date) = $2::int)
      AND ($3::text = '' OR a.emp_id = $3::text)
      AND ($4::text = '' OR e.dept_id = $4::text)
    GROUP BY a.emp_id, e.full_name, d.dept_name, year_num, month_num
    ORDER BY year_num DESC, month_num DESC, e.full_name
  `, f.YearNum, f.MonthNum, f.EmpCode, f.DeptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AttendanceRow, 0)
	for rows.Next() {
		var r AttendanceRow
		var ot pgtype.Numeric
		if err := rows.Scan(&r.EmpID, &r.EmpName, &r.DeptName, &r.MonthNum, &r.YearNum, &r.WorkDays, &r.LeaveDays, &ot, &r.TotalDays); err != nil {
			return nil, err
		}
		r.OTHours = pgutil.Decimal(ot)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) PaymentReport(ctx context.Context, f Filter) ([]PaymentRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT sp.id, sp.payroll_id, p.emp_id, e.full_name, COALESCE(d.dept_name, ''),
           p.month_num, p.year_num, p.total_salary, sp.payment_date,
           COALESCE(sp.approved_by, ''), COALESCE(sp.note, '')
    FROM salary_payments sp
    JOIN payrolls p ON p.id = sp.payroll_id
    JOIN employees e ON e.code = p.emp_id
    LEFT JOIN departments d ON d.code = e.dept_id
    WHERE ($1::int = 0 OR p.year_num = $1::int)
      AND ($2::int = 0 OR p.month_num = $2::int)
      AND ($3::text = '' OR p.emp_id = $3::text)
      AND ($4::text = '' OR e.dept_id = $4::text)
    ORDER BY sp.payment_date DESC NULLS LAST, e.full_name, sp.id
  `, f.YearNum, f.MonthNum, f.EmpCode, f.DeptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PaymentRow, 0)
	for rows.Next() {
		var r PaymentRow
		var month int16
		var total pgtype.Numeric
		var paid time.Time
		if err := rows.Scan(&r.PaymentID, &r.PayrollID, &r.EmpID, &r.EmpName, &r.DeptName, &month, &r.YearNum,
			&total, &paid, &r.ApprovedBy, &r.Note); err != nil {
			return nil, err
		}
		r.MonthNum = int(month)
		r.TotalSalary = pgutil.Decimal(total)
		r.PaymentDate = calendar.FromTime(paid)
		out = append(out, r)
	}
	return out, rows.Err()
}
