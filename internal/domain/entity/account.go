package entity

import (
	"strings"

	domainErrors "inventory-tracker/internal/domain/errors"
)

// Default bootstrap credentials seeded into an empty account table.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Account is one row of the accounts table.
// Password is kept in plaintext; the on-disk format has no hashing.
type Account struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// DefaultAdmin returns the account seeded on first start.
func DefaultAdmin() *Account {
	return &Account{
		Username: DefaultAdminUsername,
		Password: DefaultAdminPassword,
		Role:     RoleAdmin,
	}
}

// NewAccount validates raw input. Uniqueness is checked by the caller against the store.
func NewAccount(username, password, role string) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domainErrors.NewValidationError(domainErrors.EmptyUsername)
	}
	if strings.TrimSpace(password) == "" {
		return nil, domainErrors.NewValidationError(domainErrors.EmptyPassword)
	}
	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}
	return &Account{Username: username, Password: password, Role: r}, nil
}
