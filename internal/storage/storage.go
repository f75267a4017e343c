package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/grocery-cli/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Authenticator verifies credentials and resolves administrator rights.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
	IsAdmin(ctx context.Context, username string) (bool, error)
}

// UserAdmin covers the account operations reserved for administrators.
type UserAdmin interface {
	AddUser(ctx context.Context, username, password string) error
	GrantAdmin(ctx context.Context, username string) error
}

// Reports exposes the store-wide aggregations offered in the menus.
type Reports interface {
	MoveTopTen(ctx context.Context) error
	PopularByWeekday(ctx context.Context) ([]models.DayFavorite, error)
	AverageCartSize(ctx context.Context) ([]models.CartAverage, error)
	ReturningCustomers(ctx context.Context) (int64, error)
	PopularAisles(ctx context.Context) ([]models.AislePopularity, error)
	AisleFavorites(ctx context.Context) ([]models.AisleFavorite, error)
}

// Service is everything the session gate and menus need from the database.
type Service interface {
	Authenticator
	UserAdmin
	Reports
}
