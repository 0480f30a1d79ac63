package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// StoreAPI is implemented by the PostgreSQL Store and by the in-memory store.
// Update and Delete report found=false when no row matched.
type StoreAPI interface {
	Ping(ctx context.Context) error

	ListDepartments(ctx context.Context) ([]Department, error)
	GetDepartment(ctx context.Context, deptID string) (Department, error)
	CreateDepartment(ctx context.Context, dept Department) error
	UpdateDepartment(ctx context.Context, dept Department) (bool, error)
	DeleteDepartment(ctx context.Context, deptID string) (bool, error)

	ListPositions(ctx context.Context) ([]Position, error)
	GetPosition(ctx context.Context, positionID string) (Position, error)
	CreatePosition(ctx context.Context, pos Position) error
	UpdatePosition(ctx context.Context, pos Position) (bool, error)
	DeletePosition(ctx context.Context, positionID string) (bool, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	GetEmployee(ctx context.Context, empID string) (Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) error
	UpdateEmployee(ctx context.Context, emp Employee) (bool, error)
	DeleteEmployee(ctx context.Context, empID string) (bool, error)

	ListDependents(ctx context.Context, empID string) ([]Dependent, error)
	CreateDependent(ctx context.Context, dep Dependent) error
	UpdateDependent(ctx context.Context, dep Dependent) (bool, error)
	DeleteDependent(ctx context.Context, dependentID string) (bool, error)

	ListSalaryFactors(ctx context.Context) ([]SalaryFactor, error)
	FindSalaryFactor(ctx context.Context, value decimal.Decimal) (SalaryFactor, error)
	CreateSalaryFactor(ctx context.Context, factor SalaryFactor) error

	ListContracts(ctx context.Context, empID string) ([]Contract, error)
	GetContract(ctx context.Context, contractID string) (Contract, error)
	CreateContract(ctx context.Context, contract Contract) error
	UpdateContract(ctx context.Context, contract Contract) (bool, error)
	DeleteContract(ctx context.Context, contractID string) (bool, error)

	ListAllowances(ctx context.Context, empID string) ([]Allowance, error)
	CreateAllowance(ctx context.Context, allowance Allowance) error
	UpdateAllowance(ctx context.Context, allowance Allowance) (bool, error)
	DeleteAllowance(ctx context.Context, allowanceID string) (bool, error)
}
