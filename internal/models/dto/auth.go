package dto

import (
	"errors"
	"strings"
)

// Credentials are held for a single login attempt and never stored.
type Credentials struct {
	Username string
	Password string
}

// NewUserRequest collects what an administrator types to create an account.
type NewUserRequest struct {
	Username string
	Password string
}

// Normalize trims the username; passwords are kept byte for byte.
func (c Credentials) Normalize() Credentials {
	return Credentials{Username: strings.TrimSpace(c.Username), Password: c.Password}
}

// Validate rejects requests the user-creation procedure would choke on.
func (r NewUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
