package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/models"
)

var errUsage = errors.New("invalid arguments")

func formatUser(u models.User) string {
	return fmt.Sprintf("%s  %-20s %-28s %-14s %-8s %s",
		u.ID, u.Name, u.Email, u.Mobile, u.StatusLabel(), u.CreatedAt.Format(time.RFC3339))
}

// List prints every account, newest first.
func (a *App) List(ctx context.Context) error {
	users, err := a.api.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		printlnFn("No users")
		return nil
	}
	for _, u := range users {
		printlnFn(formatUser(u))
	}
	return nil
}

// SetStatus handles "status <id> <0|1>".
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "0" && args[1] != "1") {
		printlnFn("Usage: status <id> <0|1>")
		return errUsage
	}
	status := 0
	if args[1] == "1" {
		status = 1
	}
	if err := a.api.SetStatus(ctx, args[0], status); err != nil {
		return err
	}
	printlnFn("Status updated")
	return nil
}

// Delete handles "delete <id>".
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: delete <id>")
		return errUsage
	}
	if err := a.api.Delete(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Deleted", args[0])
	return nil
}
