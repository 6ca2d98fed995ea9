package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/abelab/crms/internal/api/handler"
	"github.com/abelab/crms/internal/core/ports"
)

// RequireAdmin lets the request through only when the caller set by Auth is
// an admin. Mount it after Auth.
func RequireAdmin(guard ports.AdminGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, err := handler.LoginUser(c)
			if err != nil {
				return err
			}
			if err := guard.RequireAdmin(c.Request().Context(), caller.ID); err != nil {
				return err
			}
			return next(c)
		}
	}
}
