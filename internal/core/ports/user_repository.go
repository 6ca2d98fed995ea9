package ports

import (
	"context"

	"github.com/abelab/crms/internal/core/domain"
)

// UserRepository defines persistence for users. Soft-deleted users are
// invisible to the Select methods, which return domain.ErrNotFoundUser.
type UserRepository interface {
	SelectByID(ctx context.Context, id string) (*domain.User, error)
	SelectByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Insert stores user and assigns its ID. A duplicate active email yields
	// domain.ErrConflictEmail.
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// RoleRegistry resolves caller-supplied role ids.
type RoleRegistry interface {
	// Lookup returns domain.ErrNotFoundRole for an unknown id.
	Lookup(id int) (domain.Role, error)
}
