package ports

import (
	"context"
	"time"

	"github.com/abelab/crms/internal/core/domain"
)

// ReservationInput carries the time window of a reservation.
type ReservationInput struct {
	StartAt  time.Time
	FinishAt time.Time
}

// ReservationService defines use-case operations on reservations.
type ReservationService interface {
	ListReservations(ctx context.Context) ([]*domain.Reservation, error)
	ListNextDayReservations(ctx context.Context) ([]domain.UpcomingReservation, error)
	CreateReservation(ctx context.Context, callerID string, input ReservationInput) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, callerID, reservationID string, input ReservationInput) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, callerID, reservationID string) error
}
