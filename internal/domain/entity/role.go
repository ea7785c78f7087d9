package entity

import (
	"strings"

	domainErrors "inventory-tracker/internal/domain/errors"
)

// Role is one of the three access tiers. Only the canonical lowercase form is stored.
type Role string

const (
	RoleAdmin        Role = "admin"
	RolePrivileged   Role = "privileged"
	RoleUnprivileged Role = "unprivileged"
)

// GetValidRoles returns every role in descending order of privilege.
func GetValidRoles() []Role {
	return []Role{RoleAdmin, RolePrivileged, RoleUnprivileged}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePrivileged, RoleUnprivileged:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole normalizes user input (trim, lowercase) into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", domainErrors.NewValidationError(domainErrors.InvalidRole)
	}
	return r, nil
}
