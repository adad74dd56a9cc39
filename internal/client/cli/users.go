package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/models"
)

const deleteUserPrompt = "Are you sure you want to delete this user?"

// Users renders the user management table.
func (a *App) Users(ctx context.Context) error {
	a.navigate(routeUsers)

	users, err := a.userService.List(ctx, api.QueryOptions{})
	if err != nil {
		a.fail(ctx, err, "Error loading users")
		return err
	}

	a.title("User Management")
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Name, u.Email, string(u.Role)})
	}
	a.println(renderTable([]string{"ID", "Name", "Email", "Role"}, rows))
	a.hint("user edit <id> | user delete <id> | user promote <id>")
	return nil
}

func (a *App) loadUser(ctx context.Context, id int64, rootMessage string) (models.User, bool) {
	u, err := a.userService.Get(ctx, id)
	if err != nil {
		a.fail(ctx, err, "User not found")
		return models.User{}, false
	}
	if u.Role == models.RoleRoot {
		a.alert(rootMessage)
		return models.User{}, false
	}
	return u, true
}

// EditUser edits name, email and role of user id. Root users are refused.
func (a *App) EditUser(ctx context.Context, id int64) error {
	a.navigate(routeUsers)

	u, ok := a.loadUser(ctx, id, "Root users cannot be edited.")
	if !ok {
		return nil
	}

	form := forms.UserFrom(u)
	var err error
	if form.Name, err = a.ask("Name", form.Name); err != nil {
		return err
	}
	if form.Email, err = a.ask("Email", form.Email); err != nil {
		return err
	}
	if form.Role, err = a.ask("Role (user|admin)", form.Role); err != nil {
		return err
	}

	if _, err := a.userService.Edit(ctx, u, form); err != nil {
		a.fail(ctx, err, "Failed to update user")
		return err
	}
	a.success("User updated")
	return a.Users(ctx)
}

// DeleteUser deletes user id after confirmation. Root users are refused.
func (a *App) DeleteUser(ctx context.Context, id int64) error {
	a.navigate(routeUsers)

	u, ok := a.loadUser(ctx, id, "Root users cannot be deleted.")
	if !ok {
		return nil
	}
	if err := a.confirm(deleteUserPrompt); err != nil {
		return err
	}
	if err := a.userService.Delete(ctx, u); err != nil {
		a.fail(ctx, err, "Failed to delete user")
		return err
	}
	a.success("User %s deleted", u.Email)
	return a.Users(ctx)
}

// PromoteUser toggles user id between user and admin. Root users are refused.
func (a *App) PromoteUser(ctx context.Context, id int64) error {
	a.navigate(routeUsers)

	u, ok := a.loadUser(ctx, id, "Root users cannot be promoted or demoted.")
	if !ok {
		return nil
	}
	updated, err := a.userService.TogglePromotion(ctx, u)
	if err != nil {
		a.fail(ctx, err, "Failed to update user role")
		return err
	}
	a.success("%s is now %s", updated.Email, updated.Role)
	return a.Users(ctx)
}
