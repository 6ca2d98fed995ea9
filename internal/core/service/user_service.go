package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

type UserService struct {
	users     ports.UserRepository
	roles     ports.RoleRegistry
	guard     ports.AdminGuard
	passwords *PasswordPolicy
	log       zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRegistry,
	guard ports.AdminGuard,
	passwords *PasswordPolicy,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, roles: roles, guard: guard, passwords: passwords, log: log}
}

func (s *UserService) ListUsers(ctx context.Context, callerID string) ([]*domain.User, error) {
	if err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.users.FindAll(ctx)
}

// CreateUser runs every check before the insert so a rejected request
// leaves no trace.
func (s *UserService) CreateUser(ctx context.Context, callerID string, in ports.CreateUserInput) (*domain.User, error) {
	if err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	role, err := s.roles.Lookup(in.RoleID)
	if err != nil {
		return nil, err
	}
	if err := s.passwords.Validate(in.Password); err != nil {
		return nil, err
	}
	hash, err := s.passwords.Encode(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("created_by", callerID).Stringer("role", role).Msg("user created")
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, callerID, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	role, err := s.roles.Lookup(in.RoleID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.SelectByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = strings.TrimSpace(in.Email)
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("updated_by", callerID).Msg("user updated")
	return user, nil
}

// DeleteUser soft-deletes the target.
func (s *UserService) DeleteUser(ctx context.Context, callerID, userID string) error {
	if err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	user, err := s.users.SelectByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Deleted = true
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("deleted_by", callerID).Msg("user deleted")
	return nil
}

func (s *UserService) GetLoginUser(ctx context.Context, callerID string) (*domain.User, error) {
	return s.users.SelectByID(ctx, callerID)
}

func (s *UserService) UpdateLoginUser(ctx context.Context, callerID string, in ports.UpdateLoginUserInput) (*domain.User, error) {
	user, err := s.users.SelectByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = strings.TrimSpace(in.Email)
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateLoginUserPassword requires the current password before applying the
// policy to the new one.
func (s *UserService) UpdateLoginUserPassword(ctx context.Context, callerID, currentPassword, newPassword string) error {
	user, err := s.users.SelectByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !s.passwords.Verify(currentPassword, user.PasswordHash) {
		return domain.ErrWrongPassword
	}
	if err := s.passwords.Validate(newPassword); err != nil {
		return err
	}
	hash, err := s.passwords.Encode(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}
