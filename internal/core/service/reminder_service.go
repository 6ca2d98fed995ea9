package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

// ErrReminderSkipped reports a reminder that was already delivered.
var ErrReminderSkipped = errors.New("reminder already sent")

type reminderService struct {
	dedup    ports.ReminderDedup
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewReminderService returns a ReminderService that notifies once per
// reservation and start day.
func NewReminderService(dedup ports.ReminderDedup, notifier ports.Notifier, log zerolog.Logger) ports.ReminderService {
	return &reminderService{dedup: dedup, notifier: notifier, log: log}
}

// Send delivers a reminder unless one was already sent for this reservation
// and start day.
func (s *reminderService) Send(ctx context.Context, rem domain.UpcomingReservation) error {
	r := rem.Reservation

	// 1. Idempotency check. A broken dedup store must not block reminders.
	sent, err := s.dedup.IsSent(ctx, r.ID, r.StartAt)
	if err != nil {
		s.log.Warn().Err(err).Str("reservation_id", r.ID).Msg("dedup check failed, sending anyway")
	} else if sent {
		s.log.Debug().Str("reservation_id", r.ID).Msg("reminder already sent")
		return ErrReminderSkipped
	}

	// 2. Deliver.
	if err := s.notifier.Notify(ctx, rem); err != nil {
		return fmt.Errorf("send reminder %s: %w", r.ID, err)
	}

	// 3. Mark after delivery; a failed mark only risks a duplicate.
	if err := s.dedup.MarkSent(ctx, r.ID, r.StartAt); err != nil {
		s.log.Warn().Err(err).Str("reservation_id", r.ID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("reservation_id", r.ID).
		Str("user_id", r.UserID).
		Time("start_at", r.StartAt).
		Msg("reminder sent")
	return nil
}
