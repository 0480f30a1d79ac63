package memstore

import (
	"context"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/core"
)

func (s *Store) ListDepartments(ctx context.Context) ([]core.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(values(s.departments, nil), func(a, b core.Department) bool { return a.DeptID < b.DeptID }), nil
}

func (s *Store) GetDepartment(ctx context.Context, deptID string) (core.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.departments[deptID]
	if !ok {
		return core.Department{}, core.ErrNotFound
	}
	return d, nil
}

func (s *Store) CreateDepartment(ctx context.Context, d core.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.departments[d.DeptID]; ok {
		return core.ErrDuplicate
	}
	s.departments[d.DeptID] = d
	return nil
}

func (s *Store) UpdateDepartment(ctx context.Context, d core.Department) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.departments[d.DeptID]; !ok {
		return false, nil
	}
	s.departments[d.DeptID] = d
	return true, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, deptID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.departments[deptID]; !ok {
		return false, nil
	}
	for _, e := range s.employees {
		if e.DeptID == deptID {
			return false, core.ErrInUse
		}
	}
	for _, r := range s.rewards {
		if r.DeptID == deptID {
			return false, core.ErrInUse
		}
	}
	delete(s.departments, deptID)
	return true, nil
}

func (s *Store) ListPositions(ctx context.Context) ([]core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(values(s.positions, nil), func(a, b core.Position) bool { return a.PositionID < b.PositionID }), nil
}

func (s *Store) GetPosition(ctx context.Context, positionID string) (core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[positionID]
	if !ok {
		return core.Position{}, core.ErrNotFound
	}
	return p, nil
}

func (s *Store) CreatePosition(ctx context.Context, p core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[p.PositionID]; ok {
		return core.ErrDuplicate
	}
	s.positions[p.PositionID] = p
	return nil
}

func (s *Store) UpdatePosition(ctx context.Context, p core.Position) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[p.PositionID]; !ok {
		return false, nil
	}
	s.positions[p.PositionID] = p
	return true, nil
}

func (s *Store) DeletePosition(ctx context.Context, positionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[positionID]; !ok {
		return false, nil
	}
	for _, e := range s.employees {
		if e.PositionID == positionID {
			return false, core.ErrInUse
		}
	}
	delete(s.positions, positionID)
	return true, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter core.EmployeeFilter) ([]core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.employees, func(e core.Employee) bool {
		return (filter.DeptID == "" || e.DeptID == filter.DeptID) &&
			(filter.Status == "" || e.Status == filter.Status)
	})
	return sorted(out, func(a, b core.Employee) bool { return a.EmpID < b.EmpID }), nil
}

func (s *Store) GetEmployee(ctx context.Context, empID string) (core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[empID]
	if !ok {
		return core.Employee{}, core.ErrNotFound
	}
	return e, nil
}

func (s *Store) employeeRefs(e core.Employee) error {
	if !ref(s.departments, e.DeptID) || !ref(s.positions, e.PositionID) {
		return core.ErrReferenceNotFound
	}
	return nil
}

func (s *Store) CreateEmployee(ctx context.Context, e core.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.EmpID]; ok {
		return core.ErrDuplicate
	}
	if err := s.employeeRefs(e); err != nil {
		return err
	}
	s.employees[e.EmpID] = e
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e core.Employee) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.EmpID]; !ok {
		return false, nil
	}
	if err := s.employeeRefs(e); err != nil {
		return false, err
	}
	s.employees[e.EmpID] = e
	return true, nil
}

// DeleteEmployee removes dependents, allowances and attendance with the
// employee and refuses while contracts, payrolls, rewards or penalties exist.
func (s *Store) DeleteEmployee(ctx context.Context, empID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[empID]; !ok {
		return false, nil
	}
	for _, c := range s.contracts {
		if c.EmpID == empID {
			return false, core.ErrInUse
		}
	}
	for _, p := range s.payrolls {
		if p.EmpID == empID {
			return false, core.ErrInUse
		}
	}
	for _, r := range s.rewards {
		if r.EmpID == empID {
			return false, core.ErrInUse
		}
	}
	for _, p := range s.penalties {
		if p.EmpID == empID {
			return false, core.ErrInUse
		}
	}
	for id, d := range s.dependents {
		if d.EmpID == empID {
			delete(s.dependents, id)
		}
	}
	for id, a := range s.allowances {
		if a.EmpID == empID {
			delete(s.allowances, id)
		}
	}
	for id, r := range s.attendance {
		if r.EmpID == empID {
			delete(s.attendance, id)
		}
	}
	delete(s.employees, empID)
	return true, nil
}

func (s *Store) ListDependents(ctx context.Context, empID string) ([]core.Dependent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.dependents, func(d core.Dependent) bool { return d.EmpID == empID })
	return sorted(out, func(a, b core.Dependent) bool {
		if a.FullName != b.FullName {
			return a.FullName < b.FullName
		}
		return a.DependentID < b.DependentID
	}), nil
}

func (s *Store) CreateDependent(ctx context.Context, d core.Dependent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dependents[d.DependentID]; ok {
		return core.ErrDuplicate
	}
	if _, ok := s.employees[d.EmpID]; !ok {
		return core.ErrReferenceNotFound
	}
	s.dependents[d.DependentID] = d
	return nil
}

// UpdateDependent never moves a dependent to another employee.
func (s *Store) UpdateDependent(ctx context.Context, d core.Dependent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.dependents[d.DependentID]
	if !ok {
		return false, nil
	}
	d.EmpID = current.EmpID
	s.dependents[d.DependentID] = d
	return true, nil
}

func (s *Store) DeleteDependent(ctx context.Context, dependentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dependents[dependentID]; !ok {
		return false, nil
	}
	delete(s.dependents, dependentID)
	return true, nil
}

func (s *Store) ListSalaryFactors(ctx context.Context) ([]core.SalaryFactor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sorted(values(s.factors, nil), func(a, b core.SalaryFactor) bool { return a.Value.LessThan(b.Value) }), nil
}

func (s *Store) FindSalaryFactor(ctx context.Context, value decimal.Decimal) (core.SalaryFactor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.factors {
		if f.Value.Equal(value) {
			return f, nil
		}
	}
	return core.SalaryFactor{}, core.ErrUnknownSalaryFactor
}

func (s *Store) CreateSalaryFactor(ctx context.Context, f core.SalaryFactor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.factors[f.FactorID]; ok {
		return core.ErrDuplicate
	}
	for _, existing := range s.factors {
		if existing.Value.Equal(f.Value) {
			return core.ErrDuplicate
		}
	}
	s.factors[f.FactorID] = f
	return nil
}

func (s *Store) ListContracts(ctx context.Context, empID string) ([]core.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.contracts, func(c core.Contract) bool { return empID == "" || c.EmpID == empID })
	return sorted(out, func(a, b core.Contract) bool {
		if a.EmpID != b.EmpID {
			return a.EmpID < b.EmpID
		}
		return a.StartDate.After(b.StartDate.Time)
	}), nil
}

func (s *Store) GetContract(ctx context.Context, contractID string) (core.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contracts[contractID]
	if !ok {
		return core.Contract{}, core.ErrNotFound
	}
	return c, nil
}

func (s *Store) contractRefs(c core.Contract) error {
	if _, ok := s.employees[c.EmpID]; !ok {
		return core.ErrReferenceNotFound
	}
	if !ref(s.factors, c.FactorID) {
		return core.ErrReferenceNotFound
	}
	return nil
}

func (s *Store) CreateContract(ctx context.Context, c core.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contracts[c.ContractID]; ok {
		return core.ErrDuplicate
	}
	if err := s.contractRefs(c); err != nil {
		return err
	}
	s.contracts[c.ContractID] = c
	return nil
}

func (s *Store) UpdateContract(ctx context.Context, c core.Contract) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contracts[c.ContractID]; !ok {
		return false, nil
	}
	if err := s.contractRefs(c); err != nil {
		return false, err
	}
	s.contracts[c.ContractID] = c
	return true, nil
}

func (s *Store) DeleteContract(ctx context.Context, contractID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contracts[contractID]; !ok {
		return false, nil
	}
	delete(s.contracts, contractID)
	return true, nil
}

func (s *Store) ListAllowances(ctx context.Context, empID string) ([]core.Allowance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := values(s.allowances, func(a core.Allowance) bool { return empID == "" || a.EmpID == empID })
	return sorted(out, func(a, b core.Allowance) bool {
		if a.EmpID != b.EmpID {
			return a.EmpID < b.EmpID
		}
		return a.AllowanceID < b.AllowanceID
	}), nil
}

func (s *Store) CreateAllowance(ctx context.Context, a core.Allowance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.allowances[a.AllowanceID]; ok {
		return core.ErrDuplicate
	}
	if _, ok := s.employees[a.EmpID]; !ok {
		return core.ErrReferenceNotFound
	}
	s.allowances[a.AllowanceID] = a
	return nil
}

// UpdateAllowance never moves an allowance to another employee.
func (s *Store) UpdateAllowance(ctx context.Context, a core.Allowance) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.allowances[a.AllowanceID]
	if !ok {
		return false, nil
	}
	a.EmpID = current.EmpID
	s.allowances[a.AllowanceID] = a
	return true, nil
}

func (s *Store) DeleteAllowance(ctx context.Context, allowanceID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.allowances[allowanceID]; !ok {
		return false, nil
	}
	delete(s.allowances, allowanceID)
	return true, nil
}
