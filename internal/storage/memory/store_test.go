package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/grocery-cli/internal/models"
	"github.com/hongminglow/grocery-cli/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(bcrypt.MinCost)
	require.NoError(t, s.AddUser(context.Background(), "alice", "secret"))
	return s
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Authenticate(ctx, "alice", "Secret")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Authenticate(ctx, "mallory", "secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordsAreHashed(t *testing.T) {
	s := newTestStore(t)
	assert.NotEqual(t, "secret", string(s.accounts["alice"].passwordHash))
}

func TestAddUserDuplicate(t *testing.T) {
	s := newTestStore(t)

	err := s.AddUser(context.Background(), "alice", "other")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	var se *storage.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, storage.OpAddUser, se.Op)
}

func TestGrantAdmin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	admin, err := s.IsAdmin(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, admin)

	require.NoError(t, s.GrantAdmin(ctx, "alice"))
	admin, err = s.IsAdmin(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, admin)

	assert.ErrorIs(t, s.GrantAdmin(ctx, "nobody"), storage.ErrNotFound)

	admin, err = s.IsAdmin(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestFailOn(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("connection reset")

	s.FailOn(storage.OpPopularAisles, boom)
	_, err := s.PopularAisles(ctx)
	assert.ErrorIs(t, err, boom)

	s.FailOn(storage.OpPopularAisles, nil)
	_, err = s.PopularAisles(ctx)
	assert.NoError(t, err)
}

func TestReportsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SetReports(ReportData{
		AislePopularity:    []models.AislePopularity{{AisleID: 24, Aisle: "fresh fruits", Visits: 10}},
		ReturningCustomers: 3,
	})

	got, err := s.PopularAisles(ctx)
	require.NoError(t, err)
	got[0].Visits = 0

	again, err := s.PopularAisles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), again[0].Visits)

	n, err := s.ReturningCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, s.MoveTopTen(ctx))
	assert.Equal(t, 1, s.TopTenMoves())
}
