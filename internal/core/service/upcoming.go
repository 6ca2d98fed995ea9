package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

// UpcomingReservationScanner finds reservations starting on the next
// calendar day.
type UpcomingReservationScanner struct {
	reservations ports.ReservationRepository
	users        ports.UserRepository
	loc          *time.Location
	now          func() time.Time
}

// NewUpcomingReservationScanner compares calendar days in loc (time.Local
// when nil).
func NewUpcomingReservationScanner(reservations ports.ReservationRepository, users ports.UserRepository, loc *time.Location) *UpcomingReservationScanner {
	if loc == nil {
		loc = time.Local
	}
	return &UpcomingReservationScanner{
		reservations: reservations,
		users:        users,
		loc:          loc,
		now:          time.Now,
	}
}

// ListNextDayReservations advances now by one calendar day and returns every
// reservation whose start falls on that day, paired with its owner. Time of
// day is ignored. Order is unspecified.
func (s *UpcomingReservationScanner) ListNextDayReservations(ctx context.Context) ([]domain.UpcomingReservation, error) {
	all, err := s.reservations.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list next day reservations: %w", err)
	}

	ref := s.now().In(s.loc).AddDate(0, 0, 1)

	var out []domain.UpcomingReservation
	for _, r := range all {
		if !sameDay(r.StartAt.In(s.loc), ref) {
			continue
		}
		owner, err := s.users.SelectByID(ctx, r.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.UpcomingReservation{Reservation: r, User: owner})
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
