package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   domain.ErrorCode
	}{
		{"not found user", domain.ErrNotFoundUser, http.StatusNotFound, domain.NotFoundUser},
		{"not found reservation", domain.ErrNotFoundReservation, http.StatusNotFound, domain.NotFoundReservation},
		{"conflict", domain.ErrConflictEmail, http.StatusConflict, domain.ConflictEmail},
		{"forbidden", domain.ErrUserHasNoPermission, http.StatusForbidden, domain.UserHasNoPermission},
		{"too short", domain.ErrTooShortPassword, http.StatusBadRequest, domain.TooShortPassword},
		{"wrapped validation", fmt.Errorf("bind: %w", domain.WrapError(domain.ValidationError, errors.New("bad json"))), http.StatusBadRequest, domain.ValidationError},
		{"not logged in", domain.ErrUserNotLoggedIn, http.StatusUnauthorized, domain.UserNotLoggedIn},
		{"expired", domain.ErrExpiredAccessToken, http.StatusUnauthorized, domain.ExpiredAccessToken},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, domain.UnexpectedError},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, domain.NotFoundErrorCode},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, domain.NotFoundErrorCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Code != int(tc.wantCode) || body.Error != tc.wantCode.MessageKey() {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotFoundUser, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must be left alone, got %d %q", rec.Code, rec.Body.String())
	}
}
