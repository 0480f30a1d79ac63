package auth

const (
	RoleHR     = "HR"
	RoleViewer = "Viewer"
)

const (
	PermRead       = "hr.read"
	PermWrite      = "hr.write"
	PermPayrollRun = "payroll.run"
	PermAuditRead  = "audit.read"
)

var DefaultPermissions = []string{
	PermRead,
	PermWrite,
	PermPayrollRun,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleHR: {
		PermRead,
		PermWrite,
		PermPayrollRun,
		PermAuditRead,
	},
	RoleViewer: {
		PermRead,
	},
}

func HasPermission(role, perm string) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
