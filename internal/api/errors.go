// errors.go - Structured error handling for API responses
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError represents a structured API error response.
// The JSON shape {"error": CODE, "detail": text} is what the upload client reads.
type APIError struct {
	Status int    `json:"-"`
	Code   string `json:"error"`
	Detail string `json:"detail"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Error constructors for consistent error handling

func withCause(message string, cause error) string {
	if cause == nil {
		return message
	}
	return fmt.Sprintf("%s: %v", message, cause)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	return &APIError{
		Status: http.StatusBadRequest,
		Code:   "BAD_REQUEST",
		Detail: withCause(message, cause),
	}
}

// NewUnsupportedMediaTypeError creates a 415 error for spreadsheet formats the server cannot read
func NewUnsupportedMediaTypeError(message string) *APIError {
	return &APIError{
		Status: http.StatusUnsupportedMediaType,
		Code:   "UNSUPPORTED_MEDIA_TYPE",
		Detail: message,
	}
}

// NewUnprocessableError creates a 422 error for spreadsheets that parse but cannot be reported on
func NewUnprocessableError(message string, cause error) *APIError {
	return &APIError{
		Status: http.StatusUnprocessableEntity,
		Code:   "INVALID_SPREADSHEET",
		Detail: withCause(message, cause),
	}
}

// NewInternalError creates a 500 Internal Server Error.
// The cause is not exposed to the client.
func NewInternalError(message string) *APIError {
	return &APIError{
		Status: http.StatusInternalServerError,
		Code:   "INTERNAL_ERROR",
		Detail: message,
	}
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status: e.Code,
			Code:   "HTTP_ERROR",
			Detail: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = &APIError{
			Status: http.StatusInternalServerError,
			Code:   "UNKNOWN_ERROR",
			Detail: "An unexpected error occurred",
		}
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(apiErr.Status)
		return
	}
	c.JSON(apiErr.Status, apiErr)
}

// RespondWithError is a helper to respond with an APIError
func RespondWithError(c echo.Context, err *APIError) error {
	return c.JSON(err.Status, err)
}
