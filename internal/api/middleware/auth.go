package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/abelab/crms/internal/api/handler"
	"github.com/abelab/crms/internal/api/metrics"
	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
)

// Auth resolves the bearer token into the calling user and stores it on the
// context for handlers. A missing or malformed header is UserNotLoggedIn;
// token failures keep the resolver's error.
func Auth(resolver ports.TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return reject(domain.ErrUserNotLoggedIn)
			}

			user, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return reject(err)
			}

			handler.SetLoginUser(c, user)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(err error) error {
	metrics.AuthFailuresTotal.WithLabelValues(domain.CodeOf(err).MessageKey()).Inc()
	return err
}
