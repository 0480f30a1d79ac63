package core

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

const (
	prefixDepartment = "DEPT"
	prefixPosition   = "POS"
	prefixEmployee   = "EMP"
	prefixContract   = "CT"
	prefixFactor     = "SF"
)

var EmployeeStatuses = []string{StatusActive, StatusInactive}
