package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

// AuthService implements login and self-registration.
type AuthService struct {
	users     ports.UserRepository
	passwords *PasswordPolicy
	tokens    *SessionTokenService
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, passwords *PasswordPolicy, tokens *SessionTokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, passwords: passwords, tokens: tokens, log: log}
}

// Login checks the password of the user registered under email and issues a
// session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.SelectByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		s.log.Info().Str("user_id", user.ID).Msg("login rejected: wrong password")
		return "", domain.ErrWrongPassword
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Register creates a MEMBER account.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
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
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}
