package handler

import (
	"time"

	"github.com/abelab/crms/internal/core/domain"
)

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Users ---

type userCreateRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required"`
	RoleID    int    `json:"role_id"    validate:"required"`
}

type userUpdateRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	RoleID    int    `json:"role_id"    validate:"required"`
}

type loginUserUpdateRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
}

type passwordUpdateRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	RoleID    int       `json:"role_id"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type usersResponse struct {
	Users []userResponse `json:"users"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		RoleID:    u.Role.ID(),
		Deleted:   u.Deleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// --- Reservations ---

type reservationRequest struct {
	StartAt  time.Time `json:"start_at"  validate:"required"`
	FinishAt time.Time `json:"finish_at" validate:"required"`
}

type reservationResponse struct {
	ID        string        `json:"id"`
	StartAt   time.Time     `json:"start_at"`
	FinishAt  time.Time     `json:"finish_at"`
	User      *userResponse `json:"user,omitempty"`
	UserID    string        `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type reservationsResponse struct {
	Reservations []reservationResponse `json:"reservations"`
}

func toReservationResponse(r *domain.Reservation, owner *domain.User) reservationResponse {
	resp := reservationResponse{
		ID:        r.ID,
		StartAt:   r.StartAt,
		FinishAt:  r.FinishAt,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if owner != nil {
		u := toUserResponse(owner)
		resp.User = &u
	}
	return resp
}
