package harmony

import (
	"fmt"
	"strings"
)

// Role identifies the author of a message.
type Role string

// Known roles.
const (
	RoleSystem    Role = "system"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleDeveloper, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// String returns the role name as rendered in message headers.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a role name into a Role.
//
// Matching is case-insensitive.
func ParseRole(name string) (Role, error) {
	r := Role(strings.ToLower(name))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, name)
	}
	return r, nil
}
