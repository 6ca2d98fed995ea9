package service

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/abelab/crms/internal/core/domain"
)

const minPasswordLength = 8

// PasswordPolicy validates, hashes and verifies passwords.
type PasswordPolicy struct {
	cost int
}

// NewPasswordPolicy returns a policy hashing with the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewPasswordPolicy(cost int) *PasswordPolicy {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordPolicy{cost: cost}
}

// Validate requires at least 8 characters, then at least one ASCII upper,
// one ASCII lower and one digit. The length failure wins.
func (p *PasswordPolicy) Validate(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.ErrTooShortPassword
	}

	var upper, lower, digit bool
	for i := 0; i < len(password); i++ {
		switch c := password[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return domain.ErrTooSimplePassword
	}
	return nil
}

// Encode returns a salted bcrypt hash of password.
func (p *PasswordPolicy) Encode(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.WrapError(domain.ValidationError, err)
		}
		return "", domain.WrapError(domain.UnexpectedError, err)
	}
	return string(hash), nil
}

// Verify reports whether password produced hash.
func (p *PasswordPolicy) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
