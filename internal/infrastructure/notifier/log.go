package notifier

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
)

// LogNotifier writes reminders to the structured log. It stands in for a mail
// or push transport.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify emits one "reservation reminder" entry tagged with a fresh
// notification id.
func (n *LogNotifier) Notify(_ context.Context, rem domain.UpcomingReservation) error {
	r, u := rem.Reservation, rem.User
	n.log.Info().
		Str("notification_id", uuid.NewString()).
		Str("reservation_id", r.ID).
		Str("user_id", u.ID).
		Str("email", u.Email).
		Str("name", u.FirstName+" "+u.LastName).
		Time("start_at", r.StartAt).
		Time("finish_at", r.FinishAt).
		Msg("reservation reminder")
	return nil
}
