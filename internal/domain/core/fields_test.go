package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrpay/internal/domain/auth"
)

func sampleDependents() []Dependent {
	return []Dependent{
		{DependentID: "DP001", EmpID: "EMP001", IDNumber: "001099001234"},
		{DependentID: "DP002", EmpID: "EMP001", IDNumber: "001099005678"},
	}
}

func TestFilterDependentFieldsHR(t *testing.T) {
	deps := sampleDependents()
	FilterDependentFields(deps, auth.UserContext{Username: "admin", RoleName: auth.RoleHR})
	assert.Equal(t, "001099001234", deps[0].IDNumber)
	assert.Equal(t, "001099005678", deps[1].IDNumber)
}

func TestFilterDependentFieldsViewer(t *testing.T) {
	deps := sampleDependents()
	FilterDependentFields(deps, auth.UserContext{Username: "viewer", RoleName: auth.RoleViewer})
	for _, d := range deps {
		assert.Empty(t, d.IDNumber)
		assert.NotEmpty(t, d.DependentID)
	}
}

func TestFilterDependentFieldsWithoutAuth(t *testing.T) {
	deps := sampleDependents()
	FilterDependentFields(deps, auth.UserContext{})
	assert.Equal(t, "001099001234", deps[0].IDNumber)
}
