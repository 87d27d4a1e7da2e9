package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when the caller lacks permission for an operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserAlreadyExists is returned when a username or principal is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user profile is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrHotelNotFound is returned when a hotel is not found.
	ErrHotelNotFound = errors.New("hotel not found")
	// ErrHotelAlreadyExists is returned when a hotel id is already taken.
	ErrHotelAlreadyExists = errors.New("hotel already exists")
	// ErrHotelHasUsers is returned when deleting a hotel with assigned users.
	ErrHotelHasUsers = errors.New("hotel has users assigned")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrAlreadyAuthenticated is returned when logging in over a valid session.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrLoginTimeout is returned when a login attempt exceeds its time box.
	ErrLoginTimeout = errors.New("login timed out")
	// ErrInvalidSession is returned when a session token is missing or expired.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrProfileInactive is returned when a deactivated profile is used.
	ErrProfileInactive = errors.New("profile is deactivated")
	// ErrInvalidCounter is returned when a report counter is negative.
	ErrInvalidCounter = errors.New("invalid counter value")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE")
	case errors.Is(err, ErrHotelNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "HOTEL_NOT_FOUND")
	case errors.Is(err, ErrHotelAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "HOTEL_ALREADY_EXISTS")
	case errors.Is(err, ErrHotelHasUsers):
		return NewHTTPError(http.StatusConflict, err.Error(), "HOTEL_HAS_USERS")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrAlreadyAuthenticated):
		return NewHTTPError(http.StatusConflict, err.Error(), "SESSION_CONFLICT")
	case errors.Is(err, ErrLoginTimeout):
		return NewHTTPError(http.StatusGatewayTimeout, err.Error(), "LOGIN_TIMEOUT")
	case errors.Is(err, ErrInvalidSession):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_SESSION")
	case errors.Is(err, ErrProfileInactive):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PROFILE_INACTIVE")
	case errors.Is(err, ErrInvalidCounter):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_COUNTER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
