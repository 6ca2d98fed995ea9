package ports

import (
	"context"
	"time"

	"github.com/abelab/crms/internal/core/domain"
)

// ReminderDedup abstracts the idempotency store (Redis) for reminders.
type ReminderDedup interface {
	IsSent(ctx context.Context, reservationID string, day time.Time) (bool, error)
	MarkSent(ctx context.Context, reservationID string, day time.Time) error
}

// Notifier delivers a reminder for an upcoming reservation.
type Notifier interface {
	Notify(ctx context.Context, reminder domain.UpcomingReservation) error
}

// ReminderService sends one reminder.
type ReminderService interface {
	Send(ctx context.Context, reminder domain.UpcomingReservation) error
}
