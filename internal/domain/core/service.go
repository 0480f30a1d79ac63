package core

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Store() StoreAPI {
	return s.store
}

// NewCode builds a business code such as EMP-1A2B3C4D.
func NewCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// NewID returns the given id trimmed, or a fresh UUID when it is blank.
func NewID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func orCode(id, prefix string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return NewCode(prefix)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) GetDepartment(ctx context.Context, deptID string) (Department, error) {
	return s.store.GetDepartment(ctx, strings.TrimSpace(deptID))
}

func (s *Service) CreateDepartment(ctx context.Context, d Department) (Department, error) {
	d = normalizeDepartment(d)
	d.DeptID = orCode(d.DeptID, prefixDepartment)
	return d, s.store.CreateDepartment(ctx, d)
}

func (s *Service) UpdateDepartment(ctx context.Context, d Department) (Department, bool, error) {
	d = normalizeDepartment(d)
	found, err := s.store.UpdateDepartment(ctx, d)
	return d, found, err
}

func (s *Service) DeleteDepartment(ctx context.Context, deptID string) (bool, error) {
	return s.store.DeleteDepartment(ctx, strings.TrimSpace(deptID))
}

func normalizeDepartment(d Department) Department {
	d.DeptID = strings.TrimSpace(d.DeptID)
	d.DeptName = strings.TrimSpace(d.DeptName)
	d.Location = strings.TrimSpace(d.Location)
	return d
}

func (s *Service) ListPositions(ctx context.Context) ([]Position, error) {
	return s.store.ListPositions(ctx)
}

func (s *Service) GetPosition(ctx context.Context, positionID string) (Position, error) {
	return s.store.GetPosition(ctx, strings.TrimSpace(positionID))
}

func (s *Service) CreatePosition(ctx context.Context, p Position) (Position, error) {
	p.PositionName = strings.TrimSpace(p.PositionName)
	p.PositionID = orCode(p.PositionID, prefixPosition)
	return p, s.store.CreatePosition(ctx, p)
}

func (s *Service) UpdatePosition(ctx context.Context, p Position) (Position, bool, error) {
	p.PositionID = strings.TrimSpace(p.PositionID)
	p.PositionName = strings.TrimSpace(p.PositionName)
	found, err := s.store.UpdatePosition(ctx, p)
	return p, found, err
}

func (s *Service) DeletePosition(ctx context.Context, positionID string) (bool, error) {
	return s.store.DeletePosition(ctx, strings.TrimSpace(positionID))
}

func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	filter.DeptID = strings.TrimSpace(filter.DeptID)
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	return s.store.ListEmployees(ctx, filter)
}

func (s *Service) GetEmployee(ctx context.Context, empID string) (Employee, error) {
	return s.store.GetEmployee(ctx, strings.TrimSpace(empID))
}

func (s *Service) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	e = normalizeEmployee(e)
	e.EmpID = orCode(e.EmpID, prefixEmployee)
	return e, s.store.CreateEmployee(ctx, e)
}

func (s *Service) UpdateEmployee(ctx context.Context, e Employee) (Employee, bool, error) {
	e = normalizeEmployee(e)
	found, err := s.store.UpdateEmployee(ctx, e)
	return e, found, err
}

func (s *Service) DeleteEmployee(ctx context.Context, empID string) (bool, error) {
	return s.store.DeleteEmployee(ctx, strings.TrimSpace(empID))
}

func normalizeEmployee(e Employee) Employee {
	e.EmpID = strings.TrimSpace(e.EmpID)
	e.FullName = strings.TrimSpace(e.FullName)
	e.DeptID = strings.TrimSpace(e.DeptID)
	e.PositionID = strings.TrimSpace(e.PositionID)
	e.Status = strings.ToUpper(strings.TrimSpace(e.Status))
	if e.Status == "" {
		e.Status = StatusActive
	}
	return e
}

func (s *Service) ListDependents(ctx context.Context, empID string) ([]Dependent, error) {
	return s.store.ListDependents(ctx, strings.TrimSpace(empID))
}

func (s *Service) CreateDependent(ctx context.Context, d Dependent) (Dependent, error) {
	d = normalizeDependent(d)
	d.DependentID = NewID(d.DependentID)
	return d, s.store.CreateDependent(ctx, d)
}

func (s *Service) UpdateDependent(ctx context.Context, d Dependent) (Dependent, bool, error) {
	d = normalizeDependent(d)
	found, err := s.store.UpdateDependent(ctx, d)
	return d, found, err
}

func (s *Service) DeleteDependent(ctx context.Context, dependentID string) (bool, error) {
	return s.store.DeleteDependent(ctx, strings.TrimSpace(dependentID))
}

func normalizeDependent(d Dependent) Dependent {
	d.DependentID = strings.TrimSpace(d.DependentID)
	d.EmpID = strings.TrimSpace(d.EmpID)
	d.FullName = strings.TrimSpace(d.FullName)
	d.Relationship = strings.TrimSpace(d.Relationship)
	d.IDNumber = strings.TrimSpace(d.IDNumber)
	return d
}

func (s *Service) ListSalaryFactors(ctx context.Context) ([]SalaryFactor, error) {
	return s.store.ListSalaryFactors(ctx)
}

func (s *Service) CreateSalaryFactor(ctx context.Context, f SalaryFactor) (SalaryFactor, error) {
	f.FactorID = orCode(f.FactorID, prefixFactor)
	return f, s.store.CreateSalaryFactor(ctx, f)
}

func (s *Service) ListContracts(ctx context.Context, empID string) ([]Contract, error) {
	return s.store.ListContracts(ctx, strings.TrimSpace(empID))
}

func (s *Service) GetContract(ctx context.Context, contractID string) (Contract, error) {
	return s.store.GetContract(ctx, strings.TrimSpace(contractID))
}

func (s *Service) CreateContract(ctx context.Context, c Contract) (Contract, error) {
	c, err := s.prepareContract(ctx, c)
	if err != nil {
		return Contract{}, err
	}
	c.ContractID = orCode(c.ContractID, prefixContract)
	return c, s.store.CreateContract(ctx, c)
}

func (s *Service) UpdateContract(ctx context.Context, c Contract) (Contract, bool, error) {
	c, err := s.prepareContract(ctx, c)
	if err != nil {
		return Contract{}, false, err
	}
	found, err := s.store.UpdateContract(ctx, c)
	return c, found, err
}

// prepareContract resolves the salary factor by value and, when no base
// salary was given, takes the base salary of the employee's position.
func (s *Service) prepareContract(ctx context.Context, c Contract) (Contract, error) {
	c.ContractID = strings.TrimSpace(c.ContractID)
	c.EmpID = strings.TrimSpace(c.EmpID)
	c.ContractType = strings.TrimSpace(c.ContractType)
	c.SalaryType = strings.TrimSpace(c.SalaryType)
	c.Status = strings.ToUpper(strings.TrimSpace(c.Status))
	if c.Status == "" {
		c.Status = StatusActive
	}

	c.FactorID = ""
	if c.SalaryFactor.IsZero() {
		c.SalaryFactor = decimal.NewFromInt(1)
	} else {
		factor, err := s.store.FindSalaryFactor(ctx, c.SalaryFactor)
		if err != nil {
			return Contract{}, err
		}
		c.FactorID = factor.FactorID
		c.SalaryFactor = factor.Value
	}

	if c.BaseSalary.IsZero() {
		emp, err := s.store.GetEmployee(ctx, c.EmpID)
		if errors.Is(err, ErrNotFound) {
			return Contract{}, ErrReferenceNotFound
		}
		if err != nil {
			return Contract{}, err
		}
		if emp.PositionID != "" {
			pos, err := s.store.GetPosition(ctx, emp.PositionID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return Contract{}, err
			}
			c.BaseSalary = pos.BaseSalary
		}
	}
	return c, nil
}

func (s *Service) DeleteContract(ctx context.Context, contractID string) (bool, error) {
	return s.store.DeleteContract(ctx, strings.TrimSpace(contractID))
}

func (s *Service) ListAllowances(ctx context.Context, empID string) ([]Allowance, error) {
	return s.store.ListAllowances(ctx, strings.TrimSpace(empID))
}

func (s *Service) CreateAllowance(ctx context.Context, a Allowance) (Allowance, error) {
	a = normalizeAllowance(a)
	a.AllowanceID = NewID(a.AllowanceID)
	return a, s.store.CreateAllowance(ctx, a)
}

func (s *Service) UpdateAllowance(ctx context.Context, a Allowance) (Allowance, bool, error) {
	a = normalizeAllowance(a)
	found, err := s.store.UpdateAllowance(ctx, a)
	return a, found, err
}

func (s *Service) DeleteAllowance(ctx context.Context, allowanceID string) (bool, error) {
	return s.store.DeleteAllowance(ctx, strings.TrimSpace(allowanceID))
}

func normalizeAllowance(a Allowance) Allowance {
	a.AllowanceID = strings.TrimSpace(a.AllowanceID)
	a.EmpID = strings.TrimSpace(a.EmpID)
	a.AllowanceType = strings.TrimSpace(a.AllowanceType)
	a.Description = strings.TrimSpace(a.Description)
	a.Status = strings.ToUpper(strings.TrimSpace(a.Status))
	if a.Status == "" {
		a.Status = StatusActive
	}
	return a
}
