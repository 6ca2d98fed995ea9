package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

type stubReservationService struct {
	ports.ReservationService
	nextDay  []domain.UpcomingReservation
	created  ports.ReservationInput
	callerID string
	err      error
}

func (s *stubReservationService) ListNextDayReservations(context.Context) ([]domain.UpcomingReservation, error) {
	return s.nextDay, s.err
}

func (s *stubReservationService) CreateReservation(_ context.Context, callerID string, in ports.ReservationInput) (*domain.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.callerID, s.created = callerID, in
	return &domain.Reservation{ID: "r1", UserID: callerID, StartAt: in.StartAt, FinishAt: in.FinishAt}, nil
}

func (s *stubReservationService) UpdateReservation(context.Context, string, string, ports.ReservationInput) (*domain.Reservation, error) {
	return nil, s.err
}

func TestReservationHandler_Create(t *testing.T) {
	stub := &stubReservationService{}
	c, rec := newJSONContext(http.MethodPost, "/api/reservations",
		`{"start_at":"2026-10-20T10:00:00+09:00","finish_at":"2026-10-20T11:00:00+09:00"}`)
	SetLoginUser(c, &domain.User{ID: "u1"})

	if err := NewReservationHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.callerID != "u1" {
		t.Fatalf("expected caller u1, got %q", stub.callerID)
	}
	want := time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
	if !stub.created.StartAt.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, stub.created.StartAt)
	}
}

func TestReservationHandler_Create_RequiresLogin(t *testing.T) {
	c, _ := newJSONContext(http.MethodPost, "/api/reservations", `{}`)

	if err := NewReservationHandler(&stubReservationService{}).Create(c); !errors.Is(err, domain.ErrUserNotLoggedIn) {
		t.Fatalf("expected ErrUserNotLoggedIn, got %v", err)
	}
}

func TestReservationHandler_Create_MissingWindow(t *testing.T) {
	c, _ := newJSONContext(http.MethodPost, "/api/reservations", `{"start_at":"2026-10-20T10:00:00Z"}`)
	SetLoginUser(c, &domain.User{ID: "u1"})

	if err := NewReservationHandler(&stubReservationService{}).Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReservationHandler_Update_PermissionDenied(t *testing.T) {
	stub := &stubReservationService{err: domain.ErrUserHasNoPermission}
	c, _ := newJSONContext(http.MethodPut, "/api/reservations/r1",
		`{"start_at":"2026-10-20T10:00:00Z","finish_at":"2026-10-20T11:00:00Z"}`)
	c.SetParamNames("reservation_id")
	c.SetParamValues("r1")
	SetLoginUser(c, &domain.User{ID: "other"})

	if err := NewReservationHandler(stub).Update(c); !errors.Is(err, domain.ErrUserHasNoPermission) {
		t.Fatalf("expected ErrUserHasNoPermission, got %v", err)
	}
}

func TestReservationHandler_NextDay(t *testing.T) {
	start := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	stub := &stubReservationService{nextDay: []domain.UpcomingReservation{{
		Reservation: &domain.Reservation{ID: "r1", UserID: "u1", StartAt: start, FinishAt: start.Add(time.Hour)},
		User:        &domain.User{ID: "u1", Email: "taro@example.com", Role: domain.RoleMember},
	}}}
	c, rec := newJSONContext(http.MethodGet, "/api/reservations/next-day", "")

	if err := NewReservationHandler(stub).NextDay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp reservationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(resp.Reservations))
	}
	got := resp.Reservations[0]
	if got.User == nil || got.User.Email != "taro@example.com" {
		t.Fatalf("expected owner to be embedded, got %+v", got.User)
	}
}
