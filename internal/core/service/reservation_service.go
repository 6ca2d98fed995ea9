package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

var errInvalidWindow = errors.New("start_at must be before finish_at")

type ReservationService struct {
	reservations ports.ReservationRepository
	users        ports.UserRepository
	permission   *ReservationPermission
	scanner      *UpcomingReservationScanner
	logger       zerolog.Logger
}

func NewReservationService(
	reservations ports.ReservationRepository,
	users ports.UserRepository,
	permission *ReservationPermission,
	scanner *UpcomingReservationScanner,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		users:        users,
		permission:   permission,
		scanner:      scanner,
		logger:       logger,
	}
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]*domain.Reservation, error) {
	return s.reservations.FindAll(ctx)
}

func (s *ReservationService) ListNextDayReservations(ctx context.Context) ([]domain.UpcomingReservation, error) {
	return s.scanner.ListNextDayReservations(ctx)
}

// CreateReservation books a slot owned by the caller.
func (s *ReservationService) CreateReservation(ctx context.Context, callerID string, in ports.ReservationInput) (*domain.Reservation, error) {
	if !domain.ValidWindow(in.StartAt, in.FinishAt) {
		return nil, domain.WrapError(domain.ValidationError, errInvalidWindow)
	}
	owner, err := s.users.SelectByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &domain.Reservation{
		UserID:    owner.ID,
		StartAt:   in.StartAt.UTC(),
		FinishAt:  in.FinishAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reservations.Insert(ctx, r); err != nil {
		s.logger.Error().Err(err).Msg("failed to create reservation")
		return nil, err
	}

	s.logger.Info().Str("reservation_id", r.ID).Str("user_id", owner.ID).Msg("reservation created")
	return r, nil
}

func (s *ReservationService) UpdateReservation(ctx context.Context, callerID, reservationID string, in ports.ReservationInput) (*domain.Reservation, error) {
	if err := s.permission.RequireEditPermission(ctx, reservationID, callerID); err != nil {
		return nil, err
	}
	if !domain.ValidWindow(in.StartAt, in.FinishAt) {
		return nil, domain.WrapError(domain.ValidationError, errInvalidWindow)
	}
	r, err := s.reservations.SelectByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	r.StartAt = in.StartAt.UTC()
	r.FinishAt = in.FinishAt.UTC()
	r.UpdatedAt = time.Now().UTC()
	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info().Str("reservation_id", r.ID).Str("updated_by", callerID).Msg("reservation updated")
	return r, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, callerID, reservationID string) error {
	if err := s.permission.RequireEditPermission(ctx, reservationID, callerID); err != nil {
		return err
	}
	if err := s.reservations.Delete(ctx, reservationID); err != nil {
		return err
	}

	s.logger.Info().Str("reservation_id", reservationID).Str("deleted_by", callerID).Msg("reservation deleted")
	return nil
}
