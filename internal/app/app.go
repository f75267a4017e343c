package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/grocery-cli/internal/auth"
	"github.com/hongminglow/grocery-cli/internal/config"
	"github.com/hongminglow/grocery-cli/internal/console"
	"github.com/hongminglow/grocery-cli/internal/logger"
	"github.com/hongminglow/grocery-cli/internal/menu"
	"github.com/hongminglow/grocery-cli/internal/storage"
)

const (
	ticketIssuer   = "grocery-cli"
	genericFailure = "An error occurred, please contact the administrator."
)

// App wires the session gate and the menus around one service.
type App struct {
	cfg     config.Config
	svc     storage.Service
	console *console.Console
	tokens  *auth.TokenManager
}

// New wires up the gate and returns a ready application.
func New(cfg config.Config, svc storage.Service, con *console.Console) (*App, error) {
	tokens, err := auth.NewTokenManager(cfg.SessionSecret, ticketIssuer)
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, svc: svc, console: con, tokens: tokens}, nil
}

// Run performs one login and then serves the menu for the resulting session.
// A nil return means the user quit; anything else should end the process with status 1.
func (a *App) Run(ctx context.Context) error {
	gate := auth.NewGate(a.svc, a.tokens, a.console)
	ticket, err := gate.Login(ctx)
	if err != nil {
		a.report(err)
		return err
	}

	session, err := a.tokens.Parse(ticket)
	if err != nil {
		a.report(err)
		return err
	}

	if err := menu.New(a.svc, a.console, session).Run(ctx); err != nil {
		a.report(err)
		return err
	}
	return nil
}

func (a *App) report(err error) {
	switch {
	case errors.Is(err, auth.ErrAuthFailed):
		a.console.Println("Login Failed. Goodbye.")
	case errors.Is(err, menu.ErrInvalidOption):
		// the menu already told the user
	case errors.Is(err, console.ErrInputClosed):
		a.console.Println()
		a.console.Println("Input closed. Goodbye.")
	default:
		logger.Error("%s", Describe(err, a.cfg.Debug))
	}
}

// Describe returns what the user may see about err. Service failures stay
// generic outside debug mode, except for the administrative account commands
// whose callers are trusted to read the database's own message.
func Describe(err error, debug bool) string {
	var se *storage.ServiceError
	if !errors.As(err, &se) {
		return err.Error()
	}
	if debug {
		return fmt.Sprintf("%v (%T)", err, errors.Unwrap(se))
	}
	switch se.Op {
	case storage.OpAddUser, storage.OpGrantAdmin:
		return err.Error()
	default:
		return genericFailure
	}
}
