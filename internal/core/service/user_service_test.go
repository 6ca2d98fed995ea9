package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

func newUserSvc(users *stubUserRepo) *UserService {
	return NewUserService(users, domain.DefaultRoleRegistry, NewAccessGuard(users), NewPasswordPolicy(bcrypt.MinCost), zerolog.Nop())
}

func adminAndMember() (*domain.User, *domain.User) {
	return &domain.User{ID: "admin", Email: "admin@example.com", Role: domain.RoleAdmin},
		&domain.User{ID: "member", Email: "member@example.com", Role: domain.RoleMember}
}

func TestUserService_AdminOperationsRejectMembers(t *testing.T) {
	admin, member := adminAndMember()
	users := newStubUserRepo(admin, member)
	svc := newUserSvc(users)
	ctx := context.Background()

	if _, err := svc.ListUsers(ctx, member.ID); !errors.Is(err, domain.ErrUserHasNoPermission) {
		t.Errorf("ListUsers: expected ErrUserHasNoPermission, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, member.ID, ports.CreateUserInput{Email: "x@example.com", Password: "Passw0rd", RoleID: 2}); !errors.Is(err, domain.ErrUserHasNoPermission) {
		t.Errorf("CreateUser: expected ErrUserHasNoPermission, got %v", err)
	}
	if _, err := svc.UpdateUser(ctx, member.ID, admin.ID, ports.UpdateUserInput{RoleID: 2}); !errors.Is(err, domain.ErrUserHasNoPermission) {
		t.Errorf("UpdateUser: expected ErrUserHasNoPermission, got %v", err)
	}
	if err := svc.DeleteUser(ctx, member.ID, admin.ID); !errors.Is(err, domain.ErrUserHasNoPermission) {
		t.Errorf("DeleteUser: expected ErrUserHasNoPermission, got %v", err)
	}
	if users.inserts != 0 || users.updates != 0 {
		t.Fatalf("expected no writes, got %d inserts and %d updates", users.inserts, users.updates)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	admin, member := adminAndMember()
	svc := newUserSvc(newStubUserRepo(admin, member))

	got, err := svc.ListUsers(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
}

func TestUserService_CreateUser(t *testing.T) {
	admin, _ := adminAndMember()
	users := newStubUserRepo(admin)
	svc := newUserSvc(users)

	user, err := svc.CreateUser(context.Background(), admin.ID, ports.CreateUserInput{
		FirstName: "Jiro",
		Email:     "jiro@example.com",
		Password:  "Passw0rd",
		RoleID:    domain.RoleAdmin.ID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", user.Role)
	}
	if users.inserts != 1 {
		t.Fatalf("expected 1 insert, got %d", users.inserts)
	}
}

func TestUserService_CreateUser_ValidationOrder(t *testing.T) {
	admin, _ := adminAndMember()

	cases := []struct {
		name    string
		in      ports.CreateUserInput
		wantErr error
	}{
		{"unknown role", ports.CreateUserInput{Email: "a@example.com", Password: "Passw0rd", RoleID: 99}, domain.ErrNotFoundRole},
		{"unknown role beats weak password", ports.CreateUserInput{Email: "a@example.com", Password: "short", RoleID: 0}, domain.ErrNotFoundRole},
		{"too short", ports.CreateUserInput{Email: "a@example.com", Password: "Pa55", RoleID: 2}, domain.ErrTooShortPassword},
		{"too simple", ports.CreateUserInput{Email: "a@example.com", Password: "password", RoleID: 2}, domain.ErrTooSimplePassword},
		{"duplicate email", ports.CreateUserInput{Email: "admin@example.com", Password: "Passw0rd", RoleID: 2}, domain.ErrConflictEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newStubUserRepo(admin)
			svc := newUserSvc(users)

			_, err := svc.CreateUser(context.Background(), admin.ID, tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if users.inserts != 0 {
				t.Fatalf("expected no insert, got %d", users.inserts)
			}
		})
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	admin, member := adminAndMember()
	users := newStubUserRepo(admin, member)
	svc := newUserSvc(users)

	got, err := svc.UpdateUser(context.Background(), admin.ID, member.ID, ports.UpdateUserInput{
		FirstName: "Promoted",
		Email:     "member@example.com",
		RoleID:    domain.RoleAdmin.ID(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != domain.RoleAdmin || got.FirstName != "Promoted" {
		t.Fatalf("update not applied: %+v", got)
	}
	if stored := users.users[member.ID]; stored.Role != domain.RoleAdmin {
		t.Fatalf("expected stored role ADMIN, got %s", stored.Role)
	}
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	admin, _ := adminAndMember()
	svc := newUserSvc(newStubUserRepo(admin))

	_, err := svc.UpdateUser(context.Background(), admin.ID, "ghost", ports.UpdateUserInput{RoleID: 2})
	if !errors.Is(err, domain.ErrNotFoundUser) {
		t.Fatalf("expected ErrNotFoundUser, got %v", err)
	}
}

func TestUserService_DeleteUser_SoftDeletes(t *testing.T) {
	admin, member := adminAndMember()
	users := newStubUserRepo(admin, member)
	svc := newUserSvc(users)
	ctx := context.Background()

	if err := svc.DeleteUser(ctx, admin.ID, member.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored, ok := users.users[member.ID]; !ok || !stored.Deleted {
		t.Fatal("expected user to be kept with the deleted flag")
	}
	got, err := svc.GetLoginUser(ctx, member.ID)
	if err != nil || !got.Deleted {
		t.Fatalf("deleted user must still load by id, got %+v, %v", got, err)
	}
	list, err := svc.ListUsers(ctx, admin.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected deleted user in listing, got %d users, %v", len(list), err)
	}
	if _, err := users.SelectByEmail(ctx, member.Email); !errors.Is(err, domain.ErrNotFoundUser) {
		t.Fatalf("deleted user must not match by email, got %v", err)
	}
}

func TestUserService_UpdateLoginUser(t *testing.T) {
	_, member := adminAndMember()
	users := newStubUserRepo(member)
	svc := newUserSvc(users)

	got, err := svc.UpdateLoginUser(context.Background(), member.ID, ports.UpdateLoginUserInput{FirstName: "New", Email: " new@example.com "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Fatalf("expected trimmed email, got %q", got.Email)
	}
	if got.Role != domain.RoleMember {
		t.Fatalf("self update must keep the role, got %s", got.Role)
	}
}

func TestUserService_UpdateLoginUserPassword(t *testing.T) {
	member := &domain.User{ID: "member", Role: domain.RoleMember, PasswordHash: mustHash(t, "Passw0rd")}

	cases := []struct {
		name    string
		current string
		next    string
		wantErr error
	}{
		{"success", "Passw0rd", "N3wPassword", nil},
		{"wrong current", "Wr0ngPass", "N3wPassword", domain.ErrWrongPassword},
		{"wrong current beats weak new", "Wr0ngPass", "weak", domain.ErrWrongPassword},
		{"new too short", "Passw0rd", "N3w", domain.ErrTooShortPassword},
		{"new too simple", "Passw0rd", "newpassword", domain.ErrTooSimplePassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newStubUserRepo(member)
			svc := newUserSvc(users)

			err := svc.UpdateLoginUserPassword(context.Background(), member.ID, tc.current, tc.next)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if users.updates != 0 {
					t.Fatalf("expected no update, got %d", users.updates)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			policy := NewPasswordPolicy(bcrypt.MinCost)
			if !policy.Verify(tc.next, users.users[member.ID].PasswordHash) {
				t.Fatal("expected the new password to be stored")
			}
		})
	}
}
