package service

import (
	"context"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

// AccessGuard gates admin-only operations.
type AccessGuard struct {
	users ports.UserRepository
}

func NewAccessGuard(users ports.UserRepository) *AccessGuard {
	return &AccessGuard{users: users}
}

// RequireAdmin returns nil when userID is an admin, the repository's error
// when the user is missing, and domain.ErrUserHasNoPermission otherwise.
func (g *AccessGuard) RequireAdmin(ctx context.Context, userID string) error {
	user, err := g.users.SelectByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Role.IsAdmin() {
		return domain.ErrUserHasNoPermission
	}
	return nil
}

// ReservationPermission implements the admin-or-owner rule for reservation
// edits.
type ReservationPermission struct {
	reservations ports.ReservationRepository
	users        ports.UserRepository
}

func NewReservationPermission(reservations ports.ReservationRepository, users ports.UserRepository) *ReservationPermission {
	return &ReservationPermission{reservations: reservations, users: users}
}

// RequireEditPermission passes iff callerID is an admin or owns the
// reservation. The reservation is loaded first, then the caller.
func (p *ReservationPermission) RequireEditPermission(ctx context.Context, reservationID, callerID string) error {
	reservation, err := p.reservations.SelectByID(ctx, reservationID)
	if err != nil {
		return err
	}
	caller, err := p.users.SelectByID(ctx, callerID)
	if err != nil {
		return err
	}

	if caller.Role.IsAdmin() || reservation.IsOwnedBy(caller.ID) {
		return nil
	}
	return domain.ErrUserHasNoPermission
}
