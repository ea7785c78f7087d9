// Package policy holds the static role → operation capability table.
package policy

import (
	"strings"

	"inventory-tracker/internal/domain/entity"
)

// Operation is an action gated by the policy.
type Operation int

const (
	OpListItems Operation = iota + 1
	OpAddItem
	OpDeleteItem
	OpListAccounts
	OpAddAccount
	OpChangeRole
)

var operationNames = map[Operation]string{
	OpListItems:    "list items",
	OpAddItem:      "add item",
	OpDeleteItem:   "delete item",
	OpListAccounts: "list accounts",
	OpAddAccount:   "add account",
	OpChangeRole:   "change role",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown operation"
}

// allOperations fixes the presentation order for menus and listings.
var allOperations = []Operation{
	OpAddItem,
	OpListItems,
	OpDeleteItem,
	OpListAccounts,
	OpAddAccount,
	OpChangeRole,
}

var rolePermissions = map[entity.Role]map[Operation]bool{
	entity.RoleUnprivileged: {
		OpListItems: true,
	},
	entity.RolePrivileged: {
		OpAddItem:    true,
		OpListItems:  true,
		OpDeleteItem: true,
	},
	entity.RoleAdmin: {
		OpAddItem:      true,
		OpListItems:    true,
		OpDeleteItem:   true,
		OpListAccounts: true,
		OpAddAccount:   true,
		OpChangeRole:   true,
	},
}

// IsPermitted reports whether role may run op. Unknown roles and operations are denied.
func IsPermitted(role entity.Role, op Operation) bool {
	return rolePermissions[role][op]
}

// Operations returns the operations role may run, in menu order.
func Operations(role entity.Role) []Operation {
	var ops []Operation
	for _, op := range allOperations {
		if IsPermitted(role, op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// ParseOperation maps a human name such as "delete item" back to an Operation.
func ParseOperation(s string) (Operation, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, name := range operationNames {
		if name == s {
			return op, true
		}
	}
	return 0, false
}
