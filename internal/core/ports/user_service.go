package ports

import (
	"context"

	"github.com/abelab/crms/internal/core/domain"
)

// CreateUserInput carries the admin user-creation form.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	RoleID    int
}

// UpdateUserInput carries the admin user-update form.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	RoleID    int
}

// UpdateLoginUserInput carries the profile fields a user may change on itself.
type UpdateLoginUserInput struct {
	FirstName string
	LastName  string
	Email     string
}

// UserService defines use-case operations on users. callerID is the id
// resolved from the bearer token.
type UserService interface {
	ListUsers(ctx context.Context, callerID string) ([]*domain.User, error)
	CreateUser(ctx context.Context, callerID string, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, callerID, userID string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, callerID, userID string) error

	GetLoginUser(ctx context.Context, callerID string) (*domain.User, error)
	UpdateLoginUser(ctx context.Context, callerID string, input UpdateLoginUserInput) (*domain.User, error)
	UpdateLoginUserPassword(ctx context.Context, callerID, currentPassword, newPassword string) error
}
