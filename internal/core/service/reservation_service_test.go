package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

func newReservationSvc(reservations *stubReservationRepo, users *stubUserRepo) *ReservationService {
	return NewReservationService(
		reservations,
		users,
		NewReservationPermission(reservations, users),
		NewUpcomingReservationScanner(reservations, users, time.UTC),
		zerolog.Nop(),
	)
}

func window(start time.Time, d time.Duration) ports.ReservationInput {
	return ports.ReservationInput{StartAt: start, FinishAt: start.Add(d)}
}

func TestReservationService_Create(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Role: domain.RoleMember})
	reservations := newStubReservationRepo()
	svc := newReservationSvc(reservations, users)

	jst := time.FixedZone("JST", 9*60*60)
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, jst)

	r, err := svc.CreateReservation(context.Background(), "u1", window(start, time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == "" || r.UserID != "u1" {
		t.Fatalf("unexpected reservation: %+v", r)
	}
	if !r.StartAt.Equal(start) || r.StartAt.Location() != time.UTC {
		t.Fatalf("expected start stored as UTC instant, got %v", r.StartAt)
	}
	if _, ok := reservations.byID[r.ID]; !ok {
		t.Fatal("expected reservation to be stored")
	}
}

func TestReservationService_Create_InvalidWindow(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1"})
	reservations := newStubReservationRepo()
	svc := newReservationSvc(reservations, users)
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)

	for _, d := range []time.Duration{0, -time.Hour} {
		_, err := svc.CreateReservation(context.Background(), "u1", window(start, d))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("duration %v: expected ErrValidation, got %v", d, err)
		}
	}
	if len(reservations.order) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(reservations.order))
	}
}

func TestReservationService_UpdateAndDelete_Permission(t *testing.T) {
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	owned := func() *stubReservationRepo {
		return newStubReservationRepo(&domain.Reservation{ID: "r1", UserID: "owner", StartAt: start, FinishAt: start.Add(time.Hour)})
	}
	users := func() *stubUserRepo {
		return newStubUserRepo(
			&domain.User{ID: "owner", Role: domain.RoleMember},
			&domain.User{ID: "stranger", Role: domain.RoleMember},
			&domain.User{ID: "admin", Role: domain.RoleAdmin},
		)
	}

	cases := []struct {
		caller  string
		wantErr error
	}{
		{"owner", nil},
		{"admin", nil},
		{"stranger", domain.ErrUserHasNoPermission},
	}

	for _, tc := range cases {
		t.Run("update by "+tc.caller, func(t *testing.T) {
			repo := owned()
			svc := newReservationSvc(repo, users())

			_, err := svc.UpdateReservation(context.Background(), tc.caller, "r1", window(start.Add(2*time.Hour), time.Hour))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if !repo.byID["r1"].StartAt.Equal(start) {
					t.Fatal("rejected update must not change the reservation")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !repo.byID["r1"].StartAt.Equal(start.Add(2 * time.Hour)) {
				t.Fatal("expected new start to be stored")
			}
		})

		t.Run("delete by "+tc.caller, func(t *testing.T) {
			repo := owned()
			svc := newReservationSvc(repo, users())

			err := svc.DeleteReservation(context.Background(), tc.caller, "r1")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if len(repo.deleted) != 0 {
					t.Fatal("rejected delete must not remove the reservation")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.deleted) != 1 || repo.deleted[0] != "r1" {
				t.Fatalf("expected r1 deleted, got %v", repo.deleted)
			}
		})
	}
}

func TestReservationService_UpdateMissing(t *testing.T) {
	svc := newReservationSvc(newStubReservationRepo(), newStubUserRepo(&domain.User{ID: "admin", Role: domain.RoleAdmin}))

	_, err := svc.UpdateReservation(context.Background(), "admin", "missing", window(time.Now(), time.Hour))
	if !errors.Is(err, domain.ErrNotFoundReservation) {
		t.Fatalf("expected ErrNotFoundReservation, got %v", err)
	}
}

func TestReservationService_ListReservations(t *testing.T) {
	repo := newStubReservationRepo(&domain.Reservation{ID: "r1"}, &domain.Reservation{ID: "r2"})
	svc := newReservationSvc(repo, newStubUserRepo())

	got, err := svc.ListReservations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(got))
	}
}
