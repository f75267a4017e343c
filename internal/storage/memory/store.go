package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/grocery-cli/internal/models"
	"github.com/hongminglow/grocery-cli/internal/storage"
)

// Ensure Store satisfies the storage.Service interface at compile time.
var _ storage.Service = (*Store)(nil)

type account struct {
	passwordHash []byte
	admin        bool
}

// ReportData is the canned result of every report.
type ReportData struct {
	DayFavorites       []models.DayFavorite
	CartAverages       []models.CartAverage
	ReturningCustomers int64
	AislePopularity    []models.AislePopularity
	AisleFavorites     []models.AisleFavorite
}

// Store keeps accounts and report results in memory.
type Store struct {
	mu       sync.Mutex
	cost     int
	accounts map[string]*account
	reports  ReportData
	failures map[string]error
	moves    int
}

// NewStore returns an empty store hashing passwords with the given bcrypt cost.
func NewStore(cost int) *Store {
	return &Store{
		cost:     cost,
		accounts: make(map[string]*account),
		failures: make(map[string]error),
	}
}

// SetReports replaces the canned report results.
func (s *Store) SetReports(data ReportData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = data
}

// FailOn makes every later call of op fail with err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// TopTenMoves reports how often MoveTopTen succeeded.
func (s *Store) TopTenMoves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

func (s *Store) failure(op string) error {
	if err, ok := s.failures[op]; ok {
		return storage.Wrap(op, err)
	}
	return nil
}

// Authenticate compares the password with the stored bcrypt hash.
// Unknown users simply fail to authenticate.
func (s *Store) Authenticate(_ context.Context, username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpAuthenticate); err != nil {
		return false, err
	}
	acct, ok := s.accounts[username]
	if !ok {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, storage.Wrap(storage.OpAuthenticate, err)
	}
}

// IsAdmin reports false for unknown users, like check_admin does.
func (s *Store) IsAdmin(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpCheckAdmin); err != nil {
		return false, err
	}
	acct, ok := s.accounts[username]
	return ok && acct.admin, nil
}

// AddUser stores a new non-admin account.
func (s *Store) AddUser(_ context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpAddUser); err != nil {
		return err
	}
	if _, exists := s.accounts[username]; exists {
		return storage.Wrap(storage.OpAddUser, fmt.Errorf("%w: username %q is taken", storage.ErrAlreadyExists, username))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return storage.Wrap(storage.OpAddUser, fmt.Errorf("hash password: %w", err))
	}
	s.accounts[username] = &account{passwordHash: hash}
	return nil
}

// GrantAdmin promotes an existing account.
func (s *Store) GrantAdmin(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpGrantAdmin); err != nil {
		return err
	}
	acct, ok := s.accounts[username]
	if !ok {
		return storage.Wrap(storage.OpGrantAdmin, fmt.Errorf("%w: user %q", storage.ErrNotFound, username))
	}
	acct.admin = true
	return nil
}

// MoveTopTen only counts invocations; there is no shelf layout in memory.
func (s *Store) MoveTopTen(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpMoveTopTen); err != nil {
		return err
	}
	s.moves++
	return nil
}

func (s *Store) PopularByWeekday(context.Context) ([]models.DayFavorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpPopularByWeekday); err != nil {
		return nil, err
	}
	return append([]models.DayFavorite(nil), s.reports.DayFavorites...), nil
}

func (s *Store) AverageCartSize(context.Context) ([]models.CartAverage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpAverageCartSize); err != nil {
		return nil, err
	}
	return append([]models.CartAverage(nil), s.reports.CartAverages...), nil
}

func (s *Store) ReturningCustomers(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpReturningCustomers); err != nil {
		return 0, err
	}
	return s.reports.ReturningCustomers, nil
}

func (s *Store) PopularAisles(context.Context) ([]models.AislePopularity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpPopularAisles); err != nil {
		return nil, err
	}
	return append([]models.AislePopularity(nil), s.reports.AislePopularity...), nil
}

func (s *Store) AisleFavorites(context.Context) ([]models.AisleFavorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure(storage.OpAisleFavorites); err != nil {
		return nil, err
	}
	return append([]models.AisleFavorite(nil), s.reports.AisleFavorites...), nil
}
