package ports

import (
	"context"

	"github.com/abelab/crms/internal/core/domain"
)

// ReservationRepository defines persistence for reservations.
type ReservationRepository interface {
	// SelectByID returns domain.ErrNotFoundReservation when absent.
	SelectByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindAll(ctx context.Context) ([]*domain.Reservation, error)
	Insert(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id string) error
}
