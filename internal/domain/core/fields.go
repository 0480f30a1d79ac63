package core

import "hrpay/internal/domain/auth"

// FilterDependentFields clears identity numbers for callers that cannot
// write HR data. An empty role means authentication is off.
func FilterDependentFields(deps []Dependent, user auth.UserContext) {
	if user.RoleName == "" || auth.HasPermission(user.RoleName, auth.PermWrite) {
		return
	}
	for i := range deps {
		deps[i].IDNumber = ""
	}
}
