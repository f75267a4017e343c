package auth

import (
	"context"
	"errors"
	"time"

	"github.com/hongminglow/grocery-cli/internal/console"
	"github.com/hongminglow/grocery-cli/internal/logger"
	"github.com/hongminglow/grocery-cli/internal/models"
	"github.com/hongminglow/grocery-cli/internal/models/dto"
	"github.com/hongminglow/grocery-cli/internal/storage"
)

// ErrAuthFailed means the credential service rejected the username or password.
var ErrAuthFailed = errors.New("login failed")

const rule = "+----------------------------------------------------------------+"

// Gate is the single login attempt that opens a session.
type Gate struct {
	auth    storage.Authenticator
	tokens  *TokenManager
	console *console.Console
	now     func() time.Time
}

// NewGate constructs the gate.
func NewGate(auth storage.Authenticator, tokens *TokenManager, con *console.Console) *Gate {
	return &Gate{auth: auth, tokens: tokens, console: con, now: time.Now}
}

// Login prompts for credentials once and returns a signed session ticket.
// There is no retry: any rejection returns ErrAuthFailed.
func (g *Gate) Login(ctx context.Context) (string, error) {
	creds, err := g.prompt()
	if err != nil {
		return "", err
	}

	ok, err := g.auth.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		logger.Debug("login rejected for %q", creds.Username)
		return "", ErrAuthFailed
	}

	admin, err := g.auth.IsAdmin(ctx, creds.Username)
	if err != nil {
		return "", err
	}
	role := models.RoleFor(admin)

	now := g.now()
	ticket, err := g.tokens.Issue(creds.Username, role, now)
	if err != nil {
		return "", err
	}
	logger.Debug("session opened for %q as %s", creds.Username, role)

	if role == models.RoleAdmin {
		g.console.Printf("Welcome Administrator %s, it is %s\n", creds.Username, now.Format(time.ANSIC))
	} else {
		g.console.Printf("Welcome User %s, it is %s\n", creds.Username, now.Format(time.ANSIC))
	}
	return ticket, nil
}

func (g *Gate) prompt() (dto.Credentials, error) {
	g.console.Println(rule)
	username, err := g.console.ReadLine("\tEnter your username: ")
	if err != nil {
		return dto.Credentials{}, err
	}
	password, err := g.console.ReadPassword("\tEnter your password: ")
	if err != nil {
		return dto.Credentials{}, err
	}
	g.console.Println(rule)
	return dto.Credentials{Username: username, Password: password}.Normalize(), nil
}
