package domain

import "time"

// Reservation is a booked time slot. UserID is the owner's lookup key.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartAt   time.Time `json:"start_at"`
	FinishAt  time.Time `json:"finish_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID owns r.
func (r *Reservation) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

// ValidWindow reports whether the reservation starts before it finishes.
func ValidWindow(startAt, finishAt time.Time) bool {
	return startAt.Before(finishAt)
}

// UpcomingReservation pairs a reservation with its resolved owner.
type UpcomingReservation struct {
	Reservation *Reservation
	User        *User
}
