package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"hrpay/internal/domain/calendar"
	"hrpay/internal/platform/pgutil"
)

func (s *Store) ListSalaryFactors(ctx context.Context) ([]SalaryFactor, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, value FROM salary_factor_config ORDER BY value")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SalaryFactor, 0)
	for rows.Next() {
		var f SalaryFactor
		var value pgtype.Numeric
		if err := rows.Scan(&f.FactorID, &value); err != nil {
			return nil, err
		}
		f.Value = pgutil.Decimal(value)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) FindSalaryFactor(ctx context.Context, value decimal.Decimal) (SalaryFactor, error) {
	var f SalaryFactor
	var stored pgtype.Numeric
	err := s.DB.QueryRow(ctx, `
    SELECT id, value
    FROM salary_factor_config
    WHERE value = $1
  `, pgutil.Numeric(value)).Scan(&f.FactorID, &stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryFactor{}, ErrUnknownSalaryFactor
	}
	if err != nil {
		return SalaryFactor{}, err
	}
	f.Value = pgutil.Decimal(stored)
	return f, nil
}

func (s *Store) CreateSalaryFactor(ctx context.Context, factor SalaryFactor) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO salary_factor_config (id, value)
    VALUES ($1, $2)
  `, factor.FactorID, pgutil.Numeric(factor.Value))
	return WriteError(err)
}

const contractColumns = `
    c.code, c.emp_id, c.start_date, c.end_date,
    COALESCE(f.value, 1), COALESCE(c.factor_id, ''),
    COALESCE(c.contract_type, ''), c.base_salary, c.offer_salary,
    COALESCE(c.salary_type, ''), c.status`

func scanContract(row pgx.Row) (Contract, error) {
	var c Contract
	var start time.Time
	var end *time.Time
	var factor, base, offer pgtype.Numeric
	if err := row.Scan(&c.ContractID, &c.EmpID, &start, &end, &factor, &c.FactorID,
		&c.ContractType, &base, &offer, &c.SalaryType, &c.Status); err != nil {
		return Contract{}, err
	}
	c.StartDate = calendar.FromTime(start)
	c.EndDate = calendar.Ptr(end)
	c.SalaryFactor = pgutil.Decimal(factor)
	c.BaseSalary = pgutil.Decimal(base)
	c.OfferSalary = pgutil.Decimal(offer)
	return c, nil
}

func (s *Store) ListContracts(ctx context.Context, empID string) ([]Contract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+contractColumns+`
    FROM contracts c
    LEFT JOIN salary_factor_config f ON c.factor_id = f.id
    WHERE ($1 = '' OR c.emp_id = $1)
    ORDER BY c.emp_id, c.start_date DESC
  `, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetContract(ctx context.Context, contractID string) (Contract, error) {
	c, err := scanContract(s.DB.QueryRow(ctx, `
    SELECT`+contractColumns+`
    FROM contracts c
    LEFT JOIN salary_factor_config f ON c.factor_id = f.id
    WHERE c.code = $1
  `, contractID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, ErrNotFound
	}
	return c, err
}

func (s *Store) CreateContract(ctx context.Context, c Contract) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO contracts (code, emp_id, start_date, end_date, factor_id, contract_type,
                           base_salary, offer_salary, salary_type, status, created_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'system')
  `, c.ContractID, c.EmpID, c.StartDate.Time, c.EndDate.TimePtr(), pgutil.NullIfEmpty(c.FactorID),
		pgutil.NullIfEmpty(c.ContractType), pgutil.Numeric(c.BaseSalary), pgutil.Numeric(c.OfferSalary),
		pgutil.NullIfEmpty(c.SalaryType), c.Status)
	return WriteError(err)
}

func (s *Store) UpdateContract(ctx context.Context, c Contract) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE contracts
    SET emp_id = $2, start_date = $3, end_date = $4, factor_id = $5, contract_type = $6,
        base_salary = $7, offer_salary = $8, salary_type = $9, status = $10,
        updated_by = 'system', updated_at = now()
    WHERE code = $1
  `, c.ContractID, c.EmpID, c.StartDate.Time, c.EndDate.TimePtr(), pgutil.NullIfEmpty(c.FactorID),
		pgutil.NullIfEmpty(c.ContractType), pgutil.Numeric(c.BaseSalary), pgutil.Numeric(c.OfferSalary),
		pgutil.NullIfEmpty(c.SalaryType), c.Status)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) DeleteContract(ctx context.Context, contractID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM contracts WHERE code = $1", contractID)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) ListAllowances(ctx context.Context, empID string) ([]Allowance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_id, COALESCE(allowance_type, ''), amount, start_date, end_date,
           COALESCE(description, ''), status
    FROM employee_allowances
    WHERE ($1 = '' OR emp_id = $1)
    ORDER BY emp_id, id
  `, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Allowance, 0)
	for rows.Next() {
		var a Allowance
		var amount pgtype.Numeric
		var start, end *time.Time
		if err := rows.Scan(&a.AllowanceID, &a.EmpID, &a.AllowanceType, &amount, &start, &end, &a.Description, &a.Status); err != nil {
			return nil, err
		}
		a.Amount = pgutil.Decimal(amount)
		a.StartDate = calendar.Ptr(start)
		a.EndDate = calendar.Ptr(end)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CreateAllowance(ctx context.Context, a Allowance) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_allowances (id, emp_id, allowance_type, amount, start_date, end_date, description, status, created_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'system')
  `, a.AllowanceID, a.EmpID, pgutil.NullIfEmpty(a.AllowanceType), pgutil.Numeric(a.Amount),
		a.StartDate.TimePtr(), a.EndDate.TimePtr(), pgutil.NullIfEmpty(a.Description), a.Status)
	return WriteError(err)
}

func (s *Store) UpdateAllowance(ctx context.Context, a Allowance) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_allowances
    SET allowance_type = $2, amount = $3, start_date = $4, end_date = $5, description = $6,
        status = $7, updated_by = 'system', updated_at = now()
    WHERE id = $1
  `, a.AllowanceID, pgutil.NullIfEmpty(a.AllowanceType), pgutil.Numeric(a.Amount),
		a.StartDate.TimePtr(), a.EndDate.TimePtr(), pgutil.NullIfEmpty(a.Description), a.Status)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) DeleteAllowance(ctx context.Context, allowanceID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employee_allowances WHERE id = $1", allowanceID)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}
