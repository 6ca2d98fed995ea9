package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/abelab/crms/internal/core/domain"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := NewPasswordPolicy(bcrypt.MinCost)

	cases := []struct {
		password string
		wantErr  error
	}{
		{"", domain.ErrTooShortPassword},
		{"f4BabxE", domain.ErrTooShortPassword},
		{"*******", domain.ErrTooShortPassword},
		{"f4babxer", domain.ErrTooSimplePassword}, // no upper
		{"F4BABXER", domain.ErrTooSimplePassword}, // no lower
		{"fxbabxEr", domain.ErrTooSimplePassword}, // no digit
		{"ａｂｃＤ１２３４", domain.ErrTooSimplePassword},
		{"Passw0rd", nil},
		{"Passw0rd!#$ with spaces", nil},
	}

	for _, tc := range cases {
		err := policy.Validate(tc.password)
		if tc.wantErr == nil {
			if err != nil {
				t.Errorf("password %q: expected valid, got %v", tc.password, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("password %q: expected %v, got %v", tc.password, tc.wantErr, err)
		}
	}
}

func TestPasswordPolicy_Validate_ErrorClass(t *testing.T) {
	policy := NewPasswordPolicy(bcrypt.MinCost)

	err := policy.Validate("short")
	if domain.CodeOf(err).Class() != domain.ClassBadRequest {
		t.Fatalf("expected bad request class, got %s", domain.CodeOf(err).Class())
	}
}

func TestPasswordPolicy_EncodeVerify(t *testing.T) {
	policy := NewPasswordPolicy(bcrypt.MinCost)

	hash, err := policy.Encode("Passw0rd")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if hash == "Passw0rd" {
		t.Fatalf("expected password to be hashed")
	}
	if !policy.Verify("Passw0rd", hash) {
		t.Fatalf("expected exact password to verify")
	}
	for _, other := range []string{"", "passw0rd", "Passw0rd ", "Passw0r"} {
		if policy.Verify(other, hash) {
			t.Errorf("expected %q to be rejected", other)
		}
	}
}

func TestPasswordPolicy_EncodeIsSalted(t *testing.T) {
	policy := NewPasswordPolicy(bcrypt.MinCost)

	a, _ := policy.Encode("Passw0rd")
	b, _ := policy.Encode("Passw0rd")
	if a == b {
		t.Fatalf("expected distinct salted hashes")
	}
}

func TestPasswordPolicy_EncodeTooLong(t *testing.T) {
	policy := NewPasswordPolicy(bcrypt.MinCost)

	_, err := policy.Encode("Aa1" + strings.Repeat("x", 80))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewPasswordPolicy_CostFallback(t *testing.T) {
	if p := NewPasswordPolicy(0); p.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", p.cost)
	}
	if p := NewPasswordPolicy(bcrypt.MinCost); p.cost != bcrypt.MinCost {
		t.Fatalf("expected min cost, got %d", p.cost)
	}
}
