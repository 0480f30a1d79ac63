package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/calendar"
	cryptoutil "hrpay/internal/platform/crypto"
	"hrpay/internal/platform/pgutil"
)

type Store struct {
	DB     *pgxpool.Pool
	Cipher *cryptoutil.Cipher
}

func NewStore(db *pgxpool.Pool, cipher *cryptoutil.Cipher) *Store {
	return &Store{DB: db, Cipher: cipher}
}

// WriteError maps constraint violations raised by a write to the package's
// sentinel errors.
func WriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case pgutil.ForeignKeyOnInsert(err):
		return ErrReferenceNotFound
	case pgutil.IsForeignKeyViolation(err):
		return ErrInUse
	case pgutil.IsUniqueViolation(err):
		return ErrDuplicate
	}
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	var one int
	return s.DB.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT code, dept_name, COALESCE(location, '')
    FROM departments
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Department, 0)
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.DeptID, &d.DeptName, &d.Location); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, deptID string) (Department, error) {
	var d Department
	err := s.DB.QueryRow(ctx, `
    SELECT code, dept_name, COALESCE(location, '')
    FROM departments
    WHERE code = $1
  `, deptID).Scan(&d.DeptID, &d.DeptName, &d.Location)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	return d, err
}

func (s *Store) CreateDepartment(ctx context.Context, dept Department) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO departments (code, dept_name, location, created_by)
    VALUES ($1, $2, $3, 'system')
  `, dept.DeptID, dept.DeptName, pgutil.NullIfEmpty(dept.Location))
	return WriteError(err)
}

func (s *Store) UpdateDepartment(ctx context.Context, dept Department) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET dept_name = $2, location = $3, updated_by = 'system', updated_at = now()
    WHERE code = $1
  `, dept.DeptID, dept.DeptName, pgutil.NullIfEmpty(dept.Location))
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, deptID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE code = $1", deptID)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) ListPositions(ctx context.Context) ([]Position, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT code, position_name, base_salary
    FROM positions
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Position, 0)
	for rows.Next() {
		var p Position
		var base pgtype.Numeric
		if err := rows.Scan(&p.PositionID, &p.PositionName, &base); err != nil {
			return nil, err
		}
		p.BaseSalary = pgutil.Decimal(base)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPosition(ctx context.Context, positionID string) (Position, error) {
	var p Position
	var base pgtype.Numeric
	err := s.DB.QueryRow(ctx, `
    SELECT code, position_name, base_salary
    FROM positions
    WHERE code = $1
  `, positionID).Scan(&p.PositionID, &p.PositionName, &base)
	if errors.Is(err, pgx.ErrNoRows) {
		return Position{}, ErrNotFound
	}
	if err != nil {
		return Position{}, err
	}
	p.BaseSalary = pgutil.Decimal(base)
	return p, nil
}

func (s *Store) CreatePosition(ctx context.Context, pos Position) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO positions (code, position_name, base_salary, created_by)
    VALUES ($1, $2, $3, 'system')
  `, pos.PositionID, pos.PositionName, pgutil.Numeric(pos.BaseSalary))
	return WriteError(err)
}

func (s *Store) UpdatePosition(ctx context.Context, pos Position) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE positions
    SET position_name = $2, base_salary = $3, updated_by = 'system', updated_at = now()
    WHERE code = $1
  `, pos.PositionID, pos.PositionName, pgutil.Numeric(pos.BaseSalary))
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) DeletePosition(ctx context.Context, positionID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM positions WHERE code = $1", positionID)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

const employeeColumns = `
    code, full_name, birth_date, gender,
    COALESCE(dept_id, ''), COALESCE(position_id, ''),
    join_date, status`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	var birth, join *time.Time
	var gender *int16
	if err := row.Scan(&e.EmpID, &e.FullName, &birth, &gender, &e.DeptID, &e.PositionID, &join, &e.Status); err != nil {
		return Employee{}, err
	}
	e.BirthDate = calendar.Ptr(birth)
	e.JoinDate = calendar.Ptr(join)
	e.Gender = intPtr(gender)
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE ($1 = '' OR dept_id = $1) AND ($2 = '' OR status = $2)
    ORDER BY code
  `, filter.DeptID, filter.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, empID string) (Employee, error) {
	e, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE code = $1
  `, empID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (code, full_name, birth_date, gender, dept_id, position_id, join_date, status, created_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'system')
  `, emp.EmpID, emp.FullName, emp.BirthDate.TimePtr(), emp.Gender,
		pgutil.NullIfEmpty(emp.DeptID), pgutil.NullIfEmpty(emp.PositionID), emp.JoinDate.TimePtr(), emp.Status)
	return WriteError(err)
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET full_name = $2, birth_date = $3, gender = $4, dept_id = $5, position_id = $6,
        join_date = $7, status = $8, updated_by = 'system', updated_at = now()
    WHERE code = $1
  `, emp.EmpID, emp.FullName, emp.BirthDate.TimePtr(), emp.Gender,
		pgutil.NullIfEmpty(emp.DeptID), pgutil.NullIfEmpty(emp.PositionID), emp.JoinDate.TimePtr(), emp.Status)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteEmployee cascades to dependents, allowances and attendance; contracts,
// payrolls, rewards and penalties block the delete.
func (s *Store) DeleteEmployee(ctx context.Context, empID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE code = $1", empID)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) ListDependents(ctx context.Context, empID string) ([]Dependent, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_id, full_name, COALESCE(relationship, ''), birth_date, gender, COALESCE(id_number, '')
    FROM employee_dependents
    WHERE emp_id = $1
    ORDER BY full_name, id
  `, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Dependent, 0)
	for rows.Next() {
		var d Dependent
		var birth *time.Time
		var gender *int16
		var idNumber string
		if err := rows.Scan(&d.DependentID, &d.EmpID, &d.FullName, &d.Relationship, &birth, &gender, &idNumber); err != nil {
			return nil, err
		}
		d.BirthDate = calendar.Ptr(birth)
		d.Gender = intPtr(gender)
		plain, err := s.Cipher.Open(idNumber)
		if err != nil {
			return nil, fmt.Errorf("decrypt id number for dependent %s: %w", d.DependentID, err)
		}
		d.IDNumber = plain
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) CreateDependent(ctx context.Context, dep Dependent) error {
	idNumber, err := s.Cipher.Seal(dep.IDNumber)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO employee_dependents (id, emp_id, full_name, relationship, birth_date, gender, id_number, created_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, 'system')
  `, dep.DependentID, dep.EmpID, dep.FullName, pgutil.NullIfEmpty(dep.Relationship),
		dep.BirthDate.TimePtr(), dep.Gender, pgutil.NullIfEmpty(idNumber))
	return WriteError(err)
}

func (s *Store) UpdateDependent(ctx context.Context, dep Dependent) (bool, error) {
	idNumber, err := s.Cipher.Seal(dep.IDNumber)
	if err != nil {
		return false, err
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employee_dependents
    SET full_name = $2, relationship = $3, birth_date = $4, gender = $5, id_number = $6,
        updated_by = 'system', updated_at = now()
    WHERE id = $1
  `, dep.DependentID, dep.FullName, pgutil.NullIfEmpty(dep.Relationship),
		dep.BirthDate.TimePtr(), dep.Gender, pgutil.NullIfEmpty(idNumber))
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) DeleteDependent(ctx context.Context, dependentID string) (bool, error) {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employee_dependents WHERE id = $1", dependentID)
	if err != nil {
		return false, WriteError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func intPtr(v *int16) *int {
	if v == nil {
		return nil
	}
	out := int(*v)
	return &out
}
