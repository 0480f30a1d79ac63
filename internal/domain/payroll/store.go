package payroll

import (
	"context"
	"errors"
	"fmt"
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

func (s *Store) ListRewards(ctx context.Context, empID string) ([]Reward, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(emp_id, ''), COALESCE(dept_id, ''), COALESCE(reward_type, ''),
           reward_date, amount, COALESCE(description, ''), COALESCE(approved_by, '')
    FROM rewards
    WHERE ($1 = '' OR emp_id = $1)
    ORDER BY reward_date DESC, id
  `, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reward, 0)
	for rows.Next() {
		var r Reward
		var date time.Time
		var amount pgtype.Numeric
		if err := rows.Scan(&r.RewardID, &r.EmpID, &r.DeptID, &r.RewardType, &date, &amount, &r.Description, &r.ApprovedBy); err != nil {
			return nil, err
		}
		r.RewardDate = calendar.FromTime(date)
		r.Amount = pgutil.Decimal(amount)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CreateReward(ctx context.Context, r Reward) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO rewards (id, emp_id, dept_id, reward_type, reward_date, amount, description, approved_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
  `, r.RewardID, pgutil.NullIfEmpty(r.EmpID), pgutil.NullIfEmpty(r.DeptID), r.RewardType, r.RewardDate.Time,
		pgutil.Numeric(r.Amount), r.Description, r.ApprovedBy)
	return core.WriteError(err)
}

func (s *Store) UpdateReward(ctx context.Context, r Reward) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE rewards
    SET emp_id = $2, dept_id = $3, reward_type = $4, reward_date = $5, amount = $6,
        description = $7, approved_by = $8, updated_at = now(), updated_by = 'system'
    WHERE id = $1
  `, r.RewardID, pgutil.NullIfEmpty(r.EmpID), pgutil.NullIfEmpty(r.DeptID), r.RewardType, r.RewardDate.Time,
		pgutil.Numeric(r.Amount), r.Description, r.ApprovedBy)
	if err != nil {
		return false, core.WriteError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteReward(ctx context.Context, rewardID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM rewards WHERE id = $1`, rewardID)
	if err != nil {
		return false, core.WriteError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListPenalties(ctx context.Context, empID string) ([]Penalty, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_id, COALESCE(penalty_type, ''), penalty_date, amount, COALESCE(reason, '')
    FROM penalties
    WHERE ($1 = '' OR emp_id = $1)
    ORDER BY penalty_date DESC, id
  `, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Penalty, 0)
	for rows.Next() {
		var p Penalty
		var date time.Time
		var amount pgtype.Numeric
		if err := rows.Scan(&p.PenaltyID, &p.EmpID, &p.PenaltyType, &date, &amount, &p.Reason); err != nil {
			return nil, err
		}
		p.PenaltyDate = calendar.FromTime(date)
		p.Amount = pgutil.Decimal(amount)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CreatePenalty(ctx context.Context, p Penalty) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO penalties (id, emp_id, penalty_type, penalty_date, amount, reason)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, p.PenaltyID, p.EmpID, p.PenaltyType, p.PenaltyDate.Time, pgutil.Numeric(p.Amount), p.Reason)
	return core.WriteError(err)
}

func (s *Store) UpdatePenalty(ctx context.Context, p Penalty) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE penalties
    SET emp_id = $2, penalty_type = $3, penalty_date = $4, amount = $5, reason = $6,
        updated_at = now(), updated_by = 'system'
    WHERE id = $1
  `, p.PenaltyID, p.EmpID, p.PenaltyType, p.PenaltyDate.Time, pgutil.Numeric(p.Amount), p.Reason)
	if err != nil {
		return false, core.WriteError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeletePenalty(ctx context.Context, penaltyID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM penalties WHERE id = $1`, penaltyID)
	if err != nil {
		return false, core.WriteError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// monthIdx renders year*12+month for a DATE column so spans can be compared by
// month.
func monthIdx(column string) string {
	return fmt.Sprintf("(EXTRACT(YEAR FROM %[1]s)::int * 12 + EXTRACT(MONTH FROM %[1]s)::int)", column)
}

var componentsQuery = `
    WITH period AS (SELECT $1::int * 12 + $2::int AS idx)
    SELECT e.code,
           COALESCE((
             SELECT c.base_salary * COALESCE(f.value, 1)
             FROM contracts c
             LEFT JOIN salary_factor_config f ON f.id = c.factor_id
             WHERE c.emp_id = e.code AND c.status = 'ACTIVE'
               AND ` + monthIdx("c.start_date") + ` <= p.idx
               AND (c.end_date IS NULL OR ` + monthIdx("c.end_date") + ` >= p.idx)
             ORDER BY c.start_date DESC
             LIMIT 1
           ), 0),
           COALESCE((
             SELECT SUM(a.amount)
             FROM employee_allowances a
             WHERE a.emp_id = e.code AND a.status = 'ACTIVE'
               AND (a.start_date IS NULL OR ` + monthIdx("a.start_date") + ` <= p.idx)
               AND (a.end_date IS NULL OR ` + monthIdx("a.end_date") + ` >= p.idx)
           ), 0),
           COALESCE((
             SELECT SUM(r.amount)
             FROM rewards r
             WHERE (r.emp_id = e.code OR r.dept_id = e.dept_id)
               AND ` + monthIdx("r.reward_date") + ` = p.idx
           ), 0),
           COALESCE((
             SELECT SUM(pn.amount)
             FROM penalties pn
             WHERE pn.emp_id = e.code AND ` + monthIdx("pn.penalty_date") + ` = p.idx
           ), 0),
           COALESCE((
             SELECT SUM(att.ot_hours)
             FROM attendance att
             WHERE att.emp_id = e.code AND ` + monthIdx("att.attendance_date") + ` = p.idx
           ), 0),
           COALESCE((
             SELECT c.base_salary * COALESCE(f.value, 1)
             FROM contracts c
             LEFT JOIN salary_factor_config f ON f.id = c.factor_id
             WHERE c.emp_id = e.code AND c.status = 'ACTIVE'
             ORDER BY c.start_date DESC
             LIMIT 1
           ), 0)
    FROM employees e
    CROSS JOIN period p
    WHERE e.status = 'ACTIVE' AND ($3::text = '' OR e.code = $3::text)
    ORDER BY e.code`

func (s *Store) PayrollComponents(ctx context.Context, yearNum, monthNum int, empID string) ([]Components, error) {
	rows, err := s.DB.Query(ctx, componentsQuery, yearNum, monthNum, empID)
	if err != nil {
		return nil, fmt.Errorf("payroll components: %w", err)
	}
	defer rows.Close()

	out := make([]Components, 0)
	for rows.Next() {
		var c Components
		var basic, allowance, reward, penalty, ot, base pgtype.Numeric
		if err := rows.Scan(&c.EmpID, &basic, &allowance, &reward, &penalty, &ot, &base); err != nil {
			return nil, err
		}
		c.BasicSalary = pgutil.Decimal(basic)
		c.Allowance = pgutil.Decimal(allowance)
		c.RewardAmount = pgutil.Decimal(reward)
		c.PenaltyAmount = pgutil.Decimal(penalty)
		c.OTHours = pgutil.Decimal(ot)
		c.OTMonthlyBase = pgutil.Decimal(base)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpsertPayroll(ctx context.Context, p Payroll) (Payroll, bool, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payrolls (id, emp_id, month_num, year_num, basic_salary, allowance, reward_amount,
                          penalty_amount, ot_salary, total_salary, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'UNPAID')
    ON CONFLICT (emp_id, month_num, year_num) DO UPDATE
    SET basic_salary = EXCLUDED.basic_salary,
        allowance = EXCLUDED.allowance,
        reward_amount = EXCLUDED.reward_amount,
        penalty_amount = EXCLUDED.penalty_amount,
        ot_salary = EXCLUDED.ot_salary,
        total_salary = EXCLUDED.total_salary,
        status = 'UNPAID',
        updated_at = now(),
        updated_by = 'system'
    WHERE payrolls.status <> 'PAID'
    RETURNING id
  `, p.PayrollID, p.EmpID, p.MonthNum, p.YearNum,
		pgutil.Numeric(p.BasicSalary), pgutil.Numeric(p.Allowance), pgutil.Numeric(p.RewardAmount),
		pgutil.Numeric(p.PenaltyAmount), pgutil.Numeric(p.OTSalary), pgutil.Numeric(p.TotalSalary),
	).Scan(&p.PayrollID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, false, nil
	}
	if err != nil {
		return Payroll{}, false, core.WriteError(err)
	}
	p.Status = StatusUnpaid
	return p, true, nil
}

const payrollSelect = `
    SELECT id, emp_id, month_num, year_num, basic_salary, allowance, reward_amount,
           penalty_amount, ot_salary, total_salary, status
    FROM payrolls`

func scanPayroll(row pgx.Row) (Payroll, error) {
	var p Payroll
	var basic, allowance, reward, penalty, ot, total pgtype.Numeric
	var month int16
	if err := row.Scan(&p.PayrollID, &p.EmpID, &month, &p.YearNum, &basic, &allowance, &reward, &penalty, &ot, &total, &p.Status); err != nil {
		return Payroll{}, err
	}
	p.MonthNum = int(month)
	p.BasicSalary = pgutil.Decimal(basic)
	p.Allowance = pgutil.Decimal(allowance)
	p.RewardAmount = pgutil.Decimal(reward)
	p.PenaltyAmount = pgutil.Decimal(penalty)
	p.OTSalary = pgutil.Decimal(ot)
	p.TotalSalary = pgutil.Decimal(total)
	return p, nil
}

func (s *Store) ListPayrolls(ctx context.Context, filter Filter) ([]Payroll, error) {
	rows, err := s.DB.Query(ctx, payrollSelect+`
    WHERE ($1 = '' OR emp_id = $1)
      AND ($2 = '' OR status = $2)
      AND ($3::int = 0 OR month_num = $3::int)
      AND ($4::int = 0 OR year_num = $4::int)
    ORDER BY year_num DESC, month_num DESC, emp_id
  `, filter.EmpID, filter.Status, filter.MonthNum, filter.YearNum)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payroll, 0)
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPayroll(ctx context.Context, payrollID string) (Payroll, error) {
	p, err := scanPayroll(s.DB.QueryRow(ctx, payrollSelect+` WHERE id = $1`, payrollID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, ErrPayrollNotFound
	}
	return p, err
}

func (s *Store) DeletePayroll(ctx context.Context, payrollID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, payrollID)
	if err != nil {
		return false, core.WriteError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) PayslipData(ctx context.Context, payrollID string) (Payslip, error) {
	var slip Payslip
	var basic, allowance, reward, penalty, ot, total pgtype.Numeric
	var month int16
	var paymentID, approvedBy, note *string
	var paymentDate *time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT p.id, p.emp_id, p.month_num, p.year_num, p.basic_salary, p.allowance, p.reward_amount,
           p.penalty_amount, p.ot_salary, p.total_salary, p.status,
           e.full_name, COALESCE(d.dept_name, ''), COALESCE(ps.position_name, ''),
           sp.id, sp.payment_date, sp.approved_by, sp.note
    FROM payrolls p
    JOIN employees e ON e.code = p.emp_id
    LEFT JOIN departments d ON d.code = e.dept_id
    LEFT JOIN positions ps ON ps.code = e.position_id
    LEFT JOIN LATERAL (
      SELECT id, payment_date, approved_by, note
      FROM salary_payments
      WHERE payroll_id = p.id
      ORDER BY payment_date DESC
      LIMIT 1
    ) sp ON TRUE
    WHERE p.id = $1
  `, payrollID).Scan(
		&slip.Payroll.PayrollID, &slip.Payroll.EmpID, &month, &slip.Payroll.YearNum,
		&basic, &allowance, &reward, &penalty, &ot, &total, &slip.Payroll.Status,
		&slip.FullName, &slip.DeptName, &slip.PositionName,
		&paymentID, &paymentDate, &approvedBy, &note,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrPayrollNotFound
	}
	if err != nil {
		return Payslip{}, err
	}
	slip.Payroll.MonthNum = int(month)
	slip.Payroll.BasicSalary = pgutil.Decimal(basic)
	slip.Payroll.Allowance = pgutil.Decimal(allowance)
	slip.Payroll.RewardAmount = pgutil.Decimal(reward)
	slip.Payroll.PenaltyAmount = pgutil.Decimal(penalty)
	slip.Payroll.OTSalary = pgutil.Decimal(ot)
	slip.Payroll.TotalSalary = pgutil.Decimal(total)
	if paymentID != nil {
		pay := Payment{PaymentID: *paymentID, PayrollID: slip.Payroll.PayrollID}
		if paymentDate != nil {
			pay.PaymentDate = calendar.FromTime(*paymentDate)
		}
		if approvedBy != nil {
			pay.ApprovedBy = *approvedBy
		}
		if note != nil {
			pay.Note = *note
		}
		slip.Payment = &pay
	}
	return slip, nil
}

const paymentSelect = `
    SELECT id, payroll_id, payment_date, COALESCE(approved_by, ''), COALESCE(note, '')
    FROM salary_payments`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	var date time.Time
	if err := row.Scan(&p.PaymentID, &p.PayrollID, &date, &p.ApprovedBy, &p.Note); err != nil {
		return Payment{}, err
	}
	p.PaymentDate = calendar.FromTime(date)
	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, payrollID string) ([]Payment, error) {
	rows, err := s.DB.Query(ctx, paymentSelect+`
    WHERE ($1 = '' OR payroll_id = $1)
    ORDER BY payment_date DESC, id
  `, payrollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	p, err := scanPayment(s.DB.QueryRow(ctx, paymentSelect+` WHERE id = $1`, paymentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, ErrPaymentNotFound
	}
	return p, err
}

func (s *Store) CreatePayment(ctx context.Context, p Payment) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM payrolls WHERE id = $1 FOR UPDATE`, p.PayrollID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPayrollNotFound
	}
	if err != nil {
		return err
	}
	if status == StatusPaid {
		return ErrAlreadyPaid
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO salary_payments (id, payroll_id, payment_date, approved_by, note)
    VALUES ($1, $2, $3, $4, $5)
  `, p.PaymentID, p.PayrollID, p.PaymentDate.Time, p.ApprovedBy, p.Note); err != nil {
		return core.WriteError(err)
	}
	if _, err := tx.Exec(ctx, `
    UPDATE payrolls
    SET status = 'PAID', updated_at = now(), updated_by = 'system'
    WHERE id = $1
  `, p.PayrollID); err != nil {
		return fmt.Errorf("mark payroll paid: %w", err)
	}
	return tx.Commit(ctx)
}
