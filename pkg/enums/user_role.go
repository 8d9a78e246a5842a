package enums

import "fmt"

// UserRole scopes what an authenticated actor may do.
type UserRole string

const (
	UserRoleCustomer   UserRole = "customer"
	UserRoleStoreAdmin UserRole = "store_admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleStoreAdmin,
	UserRoleSuperAdmin,
}

func (u UserRole) String() string { return string(u) }

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role carries store-management rights.
func (u UserRole) IsAdmin() bool {
	return u == UserRoleStoreAdmin || u == UserRoleSuperAdmin
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
