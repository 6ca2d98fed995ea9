package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/abelab/crms/internal/core/domain"
)

const loginUserKey = "login_user"

// SetLoginUser stores the authenticated caller on the request context.
func SetLoginUser(c echo.Context, user *domain.User) {
	c.Set(loginUserKey, user)
}

// LoginUser returns the caller stored by the auth middleware. A missing user
// means the route was mounted without the middleware, which is reported as
// UserNotLoggedIn.
func LoginUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(loginUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUserNotLoggedIn
	}
	return user, nil
}
