package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/forms"
	"github.com/dmitrijs2005/locator/internal/client/models"
	"github.com/dmitrijs2005/locator/internal/common"
)

// UsersAPI is the part of the remote client the user management needs.
type UsersAPI interface {
	Users(ctx context.Context, opts api.QueryOptions) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, in models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserService defines the admin user-management operations.
//
// Root accounts are never changed: Edit, Delete and TogglePromotion return
// common.ErrRootImmutable for them without a request.
type UserService interface {
	List(ctx context.Context, opts api.QueryOptions) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Edit(ctx context.Context, target models.User, form forms.User) (models.User, error)
	Delete(ctx context.Context, target models.User) error
	TogglePromotion(ctx context.Context, target models.User) (models.User, error)
}

type userService struct {
	api UsersAPI
}

// NewUserService constructs a UserService.
func NewUserService(api UsersAPI) UserService {
	return &userService{api: api}
}

func (u *userService) List(ctx context.Context, opts api.QueryOptions) ([]models.User, error) {
	users, err := u.api.Users(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load users error: %w", err)
	}
	return users, nil
}

// Get finds a user in the (cached) user list.
func (u *userService) Get(ctx context.Context, id int64) (models.User, error) {
	users, err := u.List(ctx, api.QueryOptions{})
	if err != nil {
		return models.User{}, err
	}
	for _, usr := range users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (u *userService) Edit(ctx context.Context, target models.User, form forms.User) (models.User, error) {
	if target.Role == models.RoleRoot {
		return models.User{}, common.ErrRootImmutable
	}
	in, err := form.Validate()
	if err != nil {
		return models.User{}, err
	}
	updated, err := u.api.UpdateUser(ctx, target.ID, in)
	if err != nil {
		return models.User{}, fmt.Errorf("update user error: %w", err)
	}
	return updated, nil
}

func (u *userService) Delete(ctx context.Context, target models.User) error {
	if target.Role == models.RoleRoot {
		return common.ErrRootImmutable
	}
	if err := u.api.DeleteUser(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user error: %w", err)
	}
	return nil
}

// TogglePromotion makes a user an admin and an admin a user.
func (u *userService) TogglePromotion(ctx context.Context, target models.User) (models.User, error) {
	if target.Role == models.RoleRoot {
		return models.User{}, common.ErrRootImmutable
	}
	role := models.RoleAdmin
	if target.Role == models.RoleAdmin {
		role = models.RoleUser
	}
	in := models.UserUpdate{Name: target.Name, Email: target.Email, Role: role}
	updated, err := u.api.UpdateUser(ctx, target.ID, in)
	if err != nil {
		return models.User{}, fmt.Errorf("update user role error: %w", err)
	}
	return updated, nil
}
