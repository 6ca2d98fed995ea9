package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// reminderTTL outlives the reservation's start day.
const reminderTTL = 48 * time.Hour

// ReminderDedup records delivered reminders in Redis so a reservation is
// notified at most once per start day.
// Key format: reminder:<reservation_id>:<YYYY-MM-DD>
type ReminderDedup struct {
	client redis.Cmdable
	loc    *time.Location
}

// NewReminderDedup formats day keys in loc (UTC when nil).
func NewReminderDedup(client redis.Cmdable, loc *time.Location) *ReminderDedup {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderDedup{client: client, loc: loc}
}

func (d *ReminderDedup) IsSent(ctx context.Context, reservationID string, day time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(reservationID, day)).Result()
	if err != nil {
		return false, fmt.Errorf("reminder dedup check: %w", err)
	}
	return n > 0, nil
}

func (d *ReminderDedup) MarkSent(ctx context.Context, reservationID string, day time.Time) error {
	if err := d.client.Set(ctx, d.key(reservationID, day), "1", reminderTTL).Err(); err != nil {
		return fmt.Errorf("reminder dedup mark: %w", err)
	}
	return nil
}

func (d *ReminderDedup) key(reservationID string, day time.Time) string {
	return fmt.Sprintf("reminder:%s:%s", reservationID, day.In(d.loc).Format(time.DateOnly))
}
