package models

import "time"

// Session binds an authenticated username to the role resolved at login.
type Session struct {
	ID       string
	Username string
	Role     Role
	IssuedAt time.Time
}

// IsAdmin reports whether the session was opened with administrator rights.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
