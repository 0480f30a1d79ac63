// Package memstore is the in-process backend used when no database is
// configured. It implements every domain store interface over one mutex.
package memstore

import (
	"context"
	"sort"
	"sync"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/reports"
	"hrpay/internal/platform/demodata"
)

var (
	_ core.StoreAPI       = (*Store)(nil)
	_ attendance.StoreAPI = (*Store)(nil)
	_ payroll.StoreAPI    = (*Store)(nil)
	_ reports.StoreAPI    = (*Store)(nil)
)

type Store struct {
	mu sync.RWMutex

	departments map[string]core.Department
	positions   map[string]core.Position
	employees   map[string]core.Employee
	dependents  map[string]core.Dependent
	factors     map[string]core.SalaryFactor
	contracts   map[string]core.Contract
	allowances  map[string]core.Allowance
	attendance  map[string]attendance.Record
	rewards     map[string]payroll.Reward
	penalties   map[string]payroll.Penalty
	payrolls    map[string]payroll.Payroll
	payments    map[string]payroll.Payment
}

// New returns an empty store.
func New() *Store {
	return &Store{
		departments: make(map[string]core.Department),
		positions:   make(map[string]core.Position),
		employees:   make(map[string]core.Employee),
		dependents:  make(map[string]core.Dependent),
		factors:     make(map[string]core.SalaryFactor),
		contracts:   make(map[string]core.Contract),
		allowances:  make(map[string]core.Allowance),
		attendance:  make(map[string]attendance.Record),
		rewards:     make(map[string]payroll.Reward),
		penalties:   make(map[string]payroll.Penalty),
		payrolls:    make(map[string]payroll.Payroll),
		payments:    make(map[string]payroll.Payment),
	}
}

// NewSeeded returns a store holding the demo company.
func NewSeeded() *Store {
	s := New()
	s.Load(demodata.Load())
	return s
}

// Load adds every row of ds, replacing rows with the same id.
func (s *Store) Load(ds demodata.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range ds.Departments {
		s.departments[v.DeptID] = v
	}
	for _, v := range ds.Positions {
		s.positions[v.PositionID] = v
	}
	for _, v := range ds.Employees {
		s.employees[v.EmpID] = v
	}
	for _, v := range ds.Dependents {
		s.dependents[v.DependentID] = v
	}
	for _, v := range ds.SalaryFactors {
		s.factors[v.FactorID] = v
	}
	for _, v := range ds.Contracts {
		s.contracts[v.ContractID] = v
	}
	for _, v := range ds.Allowances {
		s.allowances[v.AllowanceID] = v
	}
	for _, v := range ds.Attendance {
		s.attendance[v.AttendID] = v
	}
	for _, v := range ds.Rewards {
		s.rewards[v.RewardID] = v
	}
	for _, v := range ds.Penalties {
		s.penalties[v.PenaltyID] = v
	}
	for _, v := range ds.Payrolls {
		s.payrolls[v.PayrollID] = v
	}
	for _, v := range ds.Payments {
		s.payments[v.PaymentID] = v
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func values[K comparable, V any](m map[K]V, keep func(V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func sorted[V any](items []V, less func(a, b V) bool) []V {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items
}

// ref reports whether an optional foreign key is empty or present in m.
func ref[V any](m map[string]V, id string) bool {
	if id == "" {
		return true
	}
	_, ok := m[id]
	return ok
}
