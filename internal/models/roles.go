package models

import "fmt"

// Role decides which menu a session is offered.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

const (
	roleUserName  = "User"
	roleAdminName = "Administrator"
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdminName
	case RoleUser:
		return roleUserName
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps the string form produced by Role.String back to a Role.
func ParseRole(name string) (Role, error) {
	switch name {
	case roleAdminName:
		return RoleAdmin, nil
	case roleUserName:
		return RoleUser, nil
	default:
		return RoleUser, fmt.Errorf("unknown role %q", name)
	}
}

// RoleFor resolves the role from the admin flag reported by the credential service.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}
