package storage

import "fmt"

// Operation names used as ServiceError.Op by every Service implementation.
const (
	OpConnect            = "connect"
	OpAuthenticate       = "authenticate"
	OpCheckAdmin         = "check admin"
	OpAddUser            = "add user"
	OpGrantAdmin         = "grant admin"
	OpMoveTopTen         = "move top ten"
	OpPopularByWeekday   = "popular products per day"
	OpAverageCartSize    = "average cart size"
	OpReturningCustomers = "returning customers"
	OpPopularAisles      = "popular aisles"
	OpAisleFavorites     = "popular item per aisle"
)

// ServiceError records which service call failed.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Wrap tags err with the failed operation. A nil err stays nil and an
// existing ServiceError is returned as is.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*ServiceError); ok {
		return se
	}
	return &ServiceError{Op: op, Err: err}
}
