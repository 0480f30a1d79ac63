package auth

import "testing"

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestViewerIsReadOnly(t *testing.T) {
	if !HasPermission(RoleViewer, PermRead) {
		t.Fatal("viewer should read")
	}
	if HasPermission(RoleViewer, PermWrite) || HasPermission(RoleViewer, PermPayrollRun) {
		t.Fatal("viewer should not write")
	}
	if !HasPermission(RoleHR, PermWrite) {
		t.Fatal("HR should write")
	}
	if HasPermission("unknown", PermRead) {
		t.Fatal("unknown role should have no permissions")
	}
}
