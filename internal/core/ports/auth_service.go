package ports

import (
	"context"

	"github.com/abelab/crms/internal/core/domain"
)

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

// TokenResolver turns a bearer token into the calling user.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// AdminGuard fails unless userID belongs to an admin.
type AdminGuard interface {
	RequireAdmin(ctx context.Context, userID string) error
}
