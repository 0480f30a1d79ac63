package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/platform/config"
	"hrpay/internal/platform/demodata"
	"hrpay/internal/platform/pgutil"
)

// Seed inserts the default salary factors and, with SEED_DEMO_DATA, the demo
// company. Existing rows are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, f := range demodata.DefaultSalaryFactors {
		if _, err := tx.Exec(ctx, `
      INSERT INTO salary_factor_config (id, value) VALUES ($1, $2)
      ON CONFLICT DO NOTHING
    `, f.FactorID, pgutil.Numeric(f.Value)); err != nil {
			return fmt.Errorf("seed salary factor %s: %w", f.FactorID, err)
		}
	}

	if cfg.SeedDemoData {
		if err := seedDemo(ctx, tx, demodata.Load()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedDemo(ctx context.Context, tx pgx.Tx, ds demodata.Dataset) error {
	exec := func(what, query string, args ...any) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s: %w", what, err)
		}
		return nil
	}

	for _, d := range ds.Departments {
		if err := exec("department "+d.DeptID, `
      INSERT INTO departments (code, dept_name, location) VALUES ($1, $2, $3)
      ON CONFLICT DO NOTHING
    `, d.DeptID, d.DeptName, d.Location); err != nil {
			return err
		}
	}
	for _, p := range ds.Positions {
		if err := exec("position "+p.PositionID, `
      INSERT INTO positions (code, position_name, base_salary) VALUES ($1, $2, $3)
      ON CONFLICT DO NOTHING
    `, p.PositionID, p.PositionName, pgutil.Numeric(p.BaseSalary)); err != nil {
			return err
		}
	}
	for _, e := range ds.Employees {
		var gender *int16
		if e.Gender != nil {
			g := int16(*e.Gender)
			gender = &g
		}
		if err := exec("employee "+e.EmpID, `
      INSERT INTO employees (code, full_name, birth_date, gender, dept_id, position_id, join_date, status)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
      ON CONFLICT DO NOTHING
    `, e.EmpID, e.FullName, e.BirthDate.TimePtr(), gender, pgutil.NullIfEmpty(e.DeptID),
			pgutil.NullIfEmpty(e.PositionID), e.JoinDate.TimePtr(), e.Status); err != nil {
			return err
		}
	}
	for _, d := range ds.Dependents {
		var gender *int16
		if d.Gender != nil {
			g := int16(*d.Gender)
			gender = &g
		}
		if err := exec("dependent "+d.DependentID, `
      INSERT INTO employee_dependents (id, emp_id, full_name, relationship, birth_date, gender)
      VALUES ($1, $2, $3, $4, $5, $6)
      ON CONFLICT DO NOTHING
    `, d.DependentID, d.EmpID, d.FullName, pgutil.NullIfEmpty(d.Relationship), d.BirthDate.TimePtr(), gender); err != nil {
			return err
		}
	}
	for _, c := range ds.Contracts {
		if err := exec("contract "+c.ContractID, `
      INSERT INTO contracts (code, emp_id, start_date, end_date, factor_id, contract_type,
                             base_salary, offer_salary, salary_type, status)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
      ON CONFLICT DO NOTHING
    `, c.ContractID, c.EmpID, c.StartDate.Time, c.EndDate.TimePtr(), pgutil.NullIfEmpty(c.FactorID),
			c.ContractType, pgutil.Numeric(c.BaseSalary), pgutil.Numeric(c.OfferSalary), c.SalaryType, c.Status); err != nil {
			return err
		}
	}
	for _, a := range ds.Allowances {
		if err := exec("allowance "+a.AllowanceID, `
      INSERT INTO employee_allowances (id, emp_id, allowance_type, amount, start_date, end_date, description, status)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
      ON CONFLICT DO NOTHING
    `, a.AllowanceID, a.EmpID, a.AllowanceType, pgutil.Numeric(a.Amount), a.StartDate.TimePtr(),
			a.EndDate.TimePtr(), pgutil.NullIfEmpty(a.Description), a.Status); err != nil {
			return err
		}
	}
	for _, r := range ds.Attendance {
		if err := exec("attendance "+r.AttendID, `
      INSERT INTO attendance (id, emp_id, attendance_date, check_in_time, check_out_time,
                              is_working_day, working_hours, ot_hours)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
      ON CONFLICT DO NOTHING
    `, r.AttendID, r.EmpID, r.AttendanceDate.Time, r.CheckInTime, r.CheckOutTime, r.IsWorkingDay,
			pgutil.Numeric(r.WorkingHours), pgutil.Numeric(r.OTHours)); err != nil {
			return err
		}
	}
	for _, r := range ds.Rewards {
		if err := exec("reward "+r.RewardID, `
      INSERT INTO rewards (id, emp_id, dept_id, reward_type, reward_date, amount, description, approved_by)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
      ON CONFLICT DO NOTHING
    `, r.RewardID, pgutil.NullIfEmpty(r.EmpID), pgutil.NullIfEmpty(r.DeptID), r.RewardType, r.RewardDate.Time,
			pgutil.Numeric(r.Amount), r.Description, r.ApprovedBy); err != nil {
			return err
		}
	}
	for _, p := range ds.Penalties {
		if err := exec("penalty "+p.PenaltyID, `
      INSERT INTO penalties (id, emp_id, penalty_type, penalty_date, amount, reason)
      VALUES ($1, $2, $3, $4, $5, $6)
      ON CONFLICT DO NOTHING
    `, p.PenaltyID, p.EmpID, p.PenaltyType, p.PenaltyDate.Time, pgutil.Numeric(p.Amount), p.Reason); err != nil {
			return err
		}
	}
	for _, p := range ds.Payrolls {
		if err := exec("payroll "+p.PayrollID, `
      INSERT INTO payrolls (id, emp_id, month_num, year_num, basic_salary, allowance, reward_amount,
                            penalty_amount, ot_salary, total_salary, status)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
      ON CONFLICT DO NOTHING
    `, p.PayrollID, p.EmpID, p.MonthNum, p.YearNum, pgutil.Numeric(p.BasicSalary), pgutil.Numeric(p.Allowance),
			pgutil.Numeric(p.RewardAmount), pgutil.Numeric(p.PenaltyAmount), pgutil.Numeric(p.OTSalary),
			pgutil.Numeric(p.TotalSalary), p.Status); err != nil {
			return err
		}
	}
	for _, p := range ds.Payments {
		if err := exec("payment "+p.PaymentID, `
      INSERT INTO salary_payments (id, payroll_id, payment_date, approved_by, note)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT DO NOTHING
    `, p.PaymentID, p.PayrollID, p.PaymentDate.Time, p.ApprovedBy, p.Note); err != nil {
			return err
		}
	}
	return nil
}
