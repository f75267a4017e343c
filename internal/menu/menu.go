// Package menu runs the command loop of an authenticated session.
//
// Each role has a fixed token table chosen when the Dispatcher is built. The
// loop reads one token per iteration and runs its action. Quitting ends the
// loop cleanly; an unknown token, closed input or a failed service call ends
// it with an error.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/grocery-cli/internal/console"
	"github.com/hongminglow/grocery-cli/internal/logger"
	"github.com/hongminglow/grocery-cli/internal/models"
	"github.com/hongminglow/grocery-cli/internal/storage"
)

// ErrInvalidOption ends the session when a token is not in the role's table.
var ErrInvalidOption = errors.New("invalid option")

var errQuit = errors.New("quit")

const rule = "+----------------------------------------------------------------+"

type command struct {
	token string
	help  string
	run   func(ctx context.Context) error
}

// Dispatcher maps menu tokens to actions for one session.
type Dispatcher struct {
	svc      storage.Service
	console  *console.Console
	session  models.Session
	commands []command
	index    map[string]command
}

// New builds the dispatcher for session. The token table follows the role the
// session was opened with and is never rebuilt.
func New(svc storage.Service, con *console.Console, session models.Session) *Dispatcher {
	d := &Dispatcher{svc: svc, console: con, session: session}

	var commands []command
	if session.IsAdmin() {
		commands = append(commands,
			command{"nu", "Add a new user", d.newUser},
			command{"ma", "Make a user an administrator", func(ctx context.Context) error { return d.makeAdmin(ctx, "") }},
		)
	}
	commands = append(commands,
		command{"ch", "Check if a user has administrator privileges.", d.checkAdmin},
		command{"tt", "Move top ten popular products to new aisle", d.moveTopTen},
		command{"pp", "Find the most popular products for each day of the week", d.popularByWeekday},
		command{"avg", "Find average number of items in a user cart", d.averageCartSize},
		command{"re", "Number of returning customers", d.returningCustomers},
		command{"po", "Most popular aisles", d.popularAisles},
		command{"pa", "Most popular item per aisle", d.aisleFavorites},
		command{"q", "quit", d.quit},
	)

	d.commands = commands
	d.index = make(map[string]command, len(commands))
	for _, c := range commands {
		d.index[c.token] = c
	}
	return d
}

// Tokens lists the accepted tokens in menu order.
func (d *Dispatcher) Tokens() []string {
	out := make([]string, len(d.commands))
	for i, c := range d.commands {
		out[i] = c.token
	}
	return out
}

// Run loops until the user quits (nil) or the session has to end (error).
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		d.printOptions()
		answer, err := d.console.ReadLine("Enter an option: ")
		if err != nil {
			return err
		}
		token := strings.ToLower(strings.TrimSpace(answer))

		cmd, ok := d.index[token]
		if !ok {
			d.console.Printf("'%s' is an invalid option. Goodbye.\n", token)
			return fmt.Errorf("%w: %q", ErrInvalidOption, token)
		}

		logger.Debug("session %s: %s ran %q", d.session.ID, d.session.Username, token)
		if err := cmd.run(ctx); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

func (d *Dispatcher) printOptions() {
	if d.session.IsAdmin() {
		d.console.Println(rule)
	}
	d.console.Println("What would you like to do?")
	d.console.Println()
	for _, c := range d.commands {
		d.console.Printf("  (%s)\t- %s\n", c.token, c.help)
	}
	d.console.Println()
}

func (d *Dispatcher) quit(context.Context) error {
	d.console.Println("Goodbye!")
	return errQuit
}
