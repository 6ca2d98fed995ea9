package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/api/metrics"
	"github.com/abelab/crms/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

var classStatus = map[domain.ErrorClass]int{
	domain.ClassInternal:     http.StatusInternalServerError,
	domain.ClassNotFound:     http.StatusNotFound,
	domain.ClassConflict:     http.StatusConflict,
	domain.ClassForbidden:    http.StatusForbidden,
	domain.ClassBadRequest:   http.StatusBadRequest,
	domain.ClassUnauthorized: http.StatusUnauthorized,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - maps *domain.Error values to an HTTP status by error class,
//   - maps echo's own errors (unknown route, bad method) onto the closest code,
//   - logs unexpected errors without leaking them,
//   - renders {"code": <int>, "error": "<message key>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code := resolveError(err)
		switch {
		case status >= http.StatusInternalServerError:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		case code.Class() == domain.ClassForbidden:
			metrics.PermissionDeniedTotal.WithLabelValues(c.Path()).Inc()
		}

		body := errorResponse{Code: int(code), Error: code.MessageKey()}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error) (int, domain.ErrorCode) {
	var de *domain.Error
	if errors.As(err, &de) {
		return classStatus[de.Code.Class()], de.Code
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, codeForStatus(he.Code)
	}

	return http.StatusInternalServerError, domain.UnexpectedError
}

func codeForStatus(status int) domain.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return domain.ValidationError
	case http.StatusUnauthorized:
		return domain.UserNotLoggedIn
	case http.StatusForbidden:
		return domain.UserHasNoPermission
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return domain.NotFoundErrorCode
	default:
		return domain.UnexpectedError
	}
}
