package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable numeric failure identifier. The hundreds digit
// selects the ErrorClass.
type ErrorCode int

const (
	// Internal Server Error: 1000~1099
	UnexpectedError ErrorCode = 1000

	// Not Found: 1100~1199
	NotFoundErrorCode   ErrorCode = 1100
	NotFoundUser        ErrorCode = 1101
	NotFoundRole        ErrorCode = 1102
	NotFoundReservation ErrorCode = 1103

	// Conflict: 1200~1299
	ConflictEmail ErrorCode = 1200

	// Forbidden: 1300~1399
	UserHasNoPermission ErrorCode = 1300

	// Bad Request: 1400~1499
	ValidationError   ErrorCode = 1400
	TooShortPassword  ErrorCode = 1401
	TooSimplePassword ErrorCode = 1402

	// Unauthorized: 1500~1599
	UserNotLoggedIn    ErrorCode = 1500
	WrongPassword      ErrorCode = 1501
	InvalidAccessToken ErrorCode = 1502
	ExpiredAccessToken ErrorCode = 1503
)

var messageKeys = map[ErrorCode]string{
	UnexpectedError:     "exception.internal_server_error.unexpected_error",
	NotFoundErrorCode:   "exception.not_found.error_code",
	NotFoundUser:        "exception.not_found.user",
	NotFoundRole:        "exception.not_found.role",
	NotFoundReservation: "exception.not_found.reservation",
	ConflictEmail:       "exception.conflict.email",
	UserHasNoPermission: "exception.forbidden.user_has_no_permission",
	ValidationError:     "exception.bad_request.validation_error",
	TooShortPassword:    "exception.bad_request.too_short_password",
	TooSimplePassword:   "exception.bad_request.too_simple_password",
	UserNotLoggedIn:     "exception.unauthorized.user_not_logged_in",
	WrongPassword:       "exception.unauthorized.wrong_password",
	InvalidAccessToken:  "exception.unauthorized.invalid_access_token",
	ExpiredAccessToken:  "exception.unauthorized.expired_access_token",
}

// FindErrorCode looks up a code by its numeric value. Unknown values map to
// NotFoundErrorCode.
func FindErrorCode(value int) ErrorCode {
	code := ErrorCode(value)
	if _, ok := messageKeys[code]; !ok {
		return NotFoundErrorCode
	}
	return code
}

// MessageKey returns the i18n key clients use to render the failure.
func (c ErrorCode) MessageKey() string {
	if k, ok := messageKeys[c]; ok {
		return k
	}
	return messageKeys[UnexpectedError]
}

// Class returns the failure class selected by the code's numeric range.
func (c ErrorCode) Class() ErrorClass {
	switch {
	case c >= 1100 && c < 1200:
		return ClassNotFound
	case c >= 1200 && c < 1300:
		return ClassConflict
	case c >= 1300 && c < 1400:
		return ClassForbidden
	case c >= 1400 && c < 1500:
		return ClassBadRequest
	case c >= 1500 && c < 1600:
		return ClassUnauthorized
	default:
		return ClassInternal
	}
}

// ErrorClass groups error codes into transport-independent failure classes.
type ErrorClass string

const (
	ClassInternal     ErrorClass = "internal"
	ClassNotFound     ErrorClass = "not_found"
	ClassConflict     ErrorClass = "conflict"
	ClassForbidden    ErrorClass = "forbidden"
	ClassBadRequest   ErrorClass = "bad_request"
	ClassUnauthorized ErrorClass = "unauthorized"
)

// Error is the failure type returned by every core operation.
type Error struct {
	Code ErrorCode
	Err  error // optional cause
}

// NewError returns an Error carrying code.
func NewError(code ErrorCode) *Error {
	return &Error{Code: code}
}

// WrapError returns an Error carrying code with err as its cause.
func WrapError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Code.MessageKey(), e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Code.MessageKey())
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so sentinels work with errors.Is
// even when the failure carries a cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the ErrorCode from err. Errors that are not *Error report
// UnexpectedError.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnexpectedError
}

var (
	ErrUnexpected          = NewError(UnexpectedError)
	ErrNotFoundUser        = NewError(NotFoundUser)
	ErrNotFoundRole        = NewError(NotFoundRole)
	ErrNotFoundReservation = NewError(NotFoundReservation)
	ErrConflictEmail       = NewError(ConflictEmail)
	ErrUserHasNoPermission = NewError(UserHasNoPermission)
	ErrValidation          = NewError(ValidationError)
	ErrTooShortPassword    = NewError(TooShortPassword)
	ErrTooSimplePassword   = NewError(TooSimplePassword)
	ErrUserNotLoggedIn     = NewError(UserNotLoggedIn)
	ErrWrongPassword       = NewError(WrongPassword)
	ErrInvalidAccessToken  = NewError(InvalidAccessToken)
	ErrExpiredAccessToken  = NewError(ExpiredAccessToken)
)
