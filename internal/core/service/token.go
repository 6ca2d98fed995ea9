package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

// SessionTokenTTL is the fixed validity window of a session token.
const SessionTokenTTL = 7 * 24 * time.Hour

var sessionSigningMethod = jwt.SigningMethodHS512

// SessionTokenService issues and validates stateless HS512 bearer tokens
// carrying only the issuer and the user id as subject.
type SessionTokenService struct {
	users  ports.UserRepository
	secret []byte
	issuer string
	now    func() time.Time
}

func NewSessionTokenService(users ports.UserRepository, secret, issuer string) *SessionTokenService {
	return &SessionTokenService{
		users:  users,
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Issue signs a token for user valid for SessionTokenTTL from now. Claims
// carry whole seconds, so now is truncated before stamping.
func (s *SessionTokenService) Issue(user *domain.User) (string, error) {
	now := s.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenTTL)),
	}

	signed, err := jwt.NewWithClaims(sessionSigningMethod, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.WrapError(domain.UnexpectedError, err)
	}
	return signed, nil
}

// ParseSubject checks signature and structure, then expiry, and returns the
// subject user id.
func (s *SessionTokenService) ParseSubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{sessionSigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		// jwt/v5 verifies the signature before claims, so ErrTokenExpired
		// only surfaces for an authentic token.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.WrapError(domain.ExpiredAccessToken, err)
		}
		return "", domain.WrapError(domain.InvalidAccessToken, err)
	}

	if claims.Subject == "" {
		return "", domain.ErrInvalidAccessToken
	}
	return claims.Subject, nil
}

// Resolve returns the user a token was issued to. A missing user is reported
// by the repository as-is. The deleted flag and later role changes are not
// consulted; tokens stay valid until they expire.
func (s *SessionTokenService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.ParseSubject(token)
	if err != nil {
		return nil, err
	}
	return s.users.SelectByID(ctx, userID)
}
