package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/grocery-cli/internal/auth"
	"github.com/hongminglow/grocery-cli/internal/config"
	"github.com/hongminglow/grocery-cli/internal/console"
	"github.com/hongminglow/grocery-cli/internal/logger"
	"github.com/hongminglow/grocery-cli/internal/menu"
	"github.com/hongminglow/grocery-cli/internal/storage"
	"github.com/hongminglow/grocery-cli/internal/storage/memory"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(bcrypt.MinCost)
	require.NoError(t, store.AddUser(ctx, "alice", "secret"))
	require.NoError(t, store.AddUser(ctx, "bob", "hunter2"))
	require.NoError(t, store.GrantAdmin(ctx, "bob"))
	return store
}

func runApp(t *testing.T, store storage.Service, cfg config.Config, input string) (string, string, error) {
	t.Helper()
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	var out bytes.Buffer
	a, err := New(cfg, store, console.New(strings.NewReader(input), &out))
	require.NoError(t, err)
	err = a.Run(context.Background())
	return out.String(), logs.String(), err
}

func TestUserChecksAdminThenQuits(t *testing.T) {
	out, _, err := runApp(t, newStore(t), config.Config{}, "alice\nsecret\nch\nbob\nq\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome User alice")
	assert.Contains(t, out, "bob is an Administrator.\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestAdminGetsAdminMenu(t *testing.T) {
	out, _, err := runApp(t, newStore(t), config.Config{}, "bob\nhunter2\nq\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome Administrator bob")
	assert.Contains(t, out, "(nu)")
	assert.Contains(t, out, "(ma)")
}

func TestLoginFailure(t *testing.T) {
	out, _, err := runApp(t, newStore(t), config.Config{}, "alice\nwrong\nq\n")
	assert.ErrorIs(t, err, auth.ErrAuthFailed)
	assert.True(t, strings.HasSuffix(out, "Login Failed. Goodbye.\n"))
	assert.NotContains(t, out, "What would you like to do?")
}

func TestInvalidOptionEndsSession(t *testing.T) {
	_, _, err := runApp(t, newStore(t), config.Config{}, "alice\nsecret\nnu\n")
	assert.ErrorIs(t, err, menu.ErrInvalidOption)
}

func TestServiceErrorIsGenericOutsideDebug(t *testing.T) {
	store := newStore(t)
	store.FailOn(storage.OpReturningCustomers, errors.New("relation \"user_orders\" does not exist"))

	_, logs, err := runApp(t, store, config.Config{}, "alice\nsecret\nre\n")
	require.Error(t, err)
	assert.Contains(t, logs, genericFailure)
	assert.NotContains(t, logs, "user_orders")
}

func TestServiceErrorIsVerboseInDebug(t *testing.T) {
	store := newStore(t)
	store.FailOn(storage.OpReturningCustomers, errors.New("relation \"user_orders\" does not exist"))

	_, logs, err := runApp(t, store, config.Config{Debug: true}, "alice\nsecret\nre\n")
	require.Error(t, err)
	assert.Contains(t, logs, "returning customers: relation \"user_orders\" does not exist")
}

func TestDescribe(t *testing.T) {
	dup := storage.Wrap(storage.OpAddUser, storage.ErrAlreadyExists)
	assert.Equal(t, "add user: record already exists", Describe(dup, false))

	report := storage.Wrap(storage.OpPopularAisles, errors.New("timeout"))
	assert.Equal(t, genericFailure, Describe(report, false))
	assert.Contains(t, Describe(report, true), "popular aisles: timeout")

	assert.Equal(t, "plain", Describe(errors.New("plain"), false))
}
