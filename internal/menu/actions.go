package menu

import (
	"context"
	"strings"

	"github.com/hongminglow/grocery-cli/internal/models/dto"
	"github.com/hongminglow/grocery-cli/internal/report"
)

func (d *Dispatcher) checkAdmin(ctx context.Context) error {
	username, err := d.console.ReadLine("User's username: ")
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	admin, err := d.svc.IsAdmin(ctx, username)
	if err != nil {
		return err
	}
	if admin {
		d.console.Printf("%s is an Administrator.\n", username)
	} else {
		d.console.Printf("%s is not an Administrator.\n", username)
	}
	return nil
}

func (d *Dispatcher) newUser(ctx context.Context) error {
	username, err := d.console.ReadLine("New User's username: ")
	if err != nil {
		return err
	}
	password, err := d.console.ReadPassword("New User's password: ")
	if err != nil {
		return err
	}
	req := dto.NewUserRequest{Username: strings.TrimSpace(username), Password: password}
	if err := req.Validate(); err != nil {
		d.console.Printf("Cannot add user: %v.\n", err)
		return nil
	}

	if err := d.svc.AddUser(ctx, req.Username, req.Password); err != nil {
		return err
	}

	answer, err := d.console.ReadLine("Are they going to be an admin? (y) or (n) ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y":
		return d.makeAdmin(ctx, req.Username)
	case "n":
		d.console.Println("OK. Complete.")
	default:
		d.console.Println("Invalid Option. Please try again.")
	}
	return nil
}

// makeAdmin prompts for the username unless the new-user workflow supplied it.
func (d *Dispatcher) makeAdmin(ctx context.Context, username string) error {
	if username == "" {
		answer, err := d.console.ReadLine("User's username: ")
		if err != nil {
			return err
		}
		username = strings.TrimSpace(answer)
	}

	if err := d.svc.GrantAdmin(ctx, username); err != nil {
		return err
	}
	d.console.Printf("Completed! %s is an administrator!\n", username)
	d.console.Println("With great power, comes great responsibility. Use it wisely.")
	return nil
}

func (d *Dispatcher) moveTopTen(ctx context.Context) error {
	if err := d.svc.MoveTopTen(ctx); err != nil {
		return err
	}
	d.console.Println("Move Completed.")
	return nil
}

func (d *Dispatcher) popularByWeekday(ctx context.Context) error {
	report.Divider(d.console.Out())
	rows, err := d.svc.PopularByWeekday(ctx)
	if err != nil {
		return err
	}
	return report.WeekdayFavorites(d.console.Out(), rows)
}

func (d *Dispatcher) averageCartSize(ctx context.Context) error {
	report.Divider(d.console.Out())
	rows, err := d.svc.AverageCartSize(ctx)
	if err != nil {
		return err
	}
	return report.CartAverages(d.console.Out(), rows)
}

func (d *Dispatcher) returningCustomers(ctx context.Context) error {
	report.Divider(d.console.Out())
	n, err := d.svc.ReturningCustomers(ctx)
	if err != nil {
		return err
	}
	return report.ReturningCustomers(d.console.Out(), n)
}

func (d *Dispatcher) popularAisles(ctx context.Context) error {
	report.Divider(d.console.Out())
	rows, err := d.svc.PopularAisles(ctx)
	if err != nil {
		return err
	}
	return report.PopularAisles(d.console.Out(), rows)
}

func (d *Dispatcher) aisleFavorites(ctx context.Context) error {
	report.Divider(d.console.Out())
	rows, err := d.svc.AisleFavorites(ctx)
	if err != nil {
		return err
	}
	return report.AisleFavorites(d.console.Out(), rows)
}
