package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/grocery-cli/internal/models"
)

func TestTicketRoundTrip(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", "grocery-cli")
	require.NoError(t, err)
	issued := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	ticket, err := tokens.Issue("alice", models.RoleAdmin, issued)
	require.NoError(t, err)

	session, err := tokens.Parse(ticket)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.True(t, session.IsAdmin())
	assert.NotEmpty(t, session.ID)
	assert.True(t, issued.Equal(session.IssuedAt))
}

func TestTicketsHaveDistinctIDs(t *testing.T) {
	tokens, err := NewTokenManager("", "grocery-cli")
	require.NoError(t, err)

	a, err := tokens.Issue("alice", models.RoleUser, time.Now())
	require.NoError(t, err)
	b, err := tokens.Issue("alice", models.RoleUser, time.Now())
	require.NoError(t, err)

	sa, err := tokens.Parse(a)
	require.NoError(t, err)
	sb, err := tokens.Parse(b)
	require.NoError(t, err)
	assert.NotEqual(t, sa.ID, sb.ID)
}

func TestParseRejectsForeignTickets(t *testing.T) {
	mine, err := NewTokenManager("one", "grocery-cli")
	require.NoError(t, err)
	theirs, err := NewTokenManager("two", "grocery-cli")
	require.NoError(t, err)

	ticket, err := theirs.Issue("mallory", models.RoleAdmin, time.Now())
	require.NoError(t, err)

	_, err = mine.Parse(ticket)
	assert.ErrorIs(t, err, ErrInvalidTicket)

	_, err = mine.Parse("not-a-ticket")
	assert.ErrorIs(t, err, ErrInvalidTicket)
}

func TestParseRejectsOtherIssuer(t *testing.T) {
	a, err := NewTokenManager("shared", "grocery-cli")
	require.NoError(t, err)
	b, err := NewTokenManager("shared", "someone-else")
	require.NoError(t, err)

	ticket, err := b.Issue("alice", models.RoleUser, time.Now())
	require.NoError(t, err)
	_, err = a.Parse(ticket)
	assert.ErrorIs(t, err, ErrInvalidTicket)
}
