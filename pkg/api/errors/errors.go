package errors

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// statusFor maps domain error codes to HTTP statuses.
var statusFor = map[string]int{
	domain.ErrCodeNotFound:     http.StatusNotFound,
	domain.ErrCodeValidation:   http.StatusBadRequest,
	domain.ErrCodeConflict:     http.StatusConflict,
	domain.ErrCodeUnauthorized: http.StatusUnauthorized,
	domain.ErrCodeForbidden:    http.StatusForbidden,
	domain.ErrCodeInternal:     http.StatusInternalServerError,
}

var errorKey = map[string]string{
	domain.ErrCodeNotFound:     "not_found",
	domain.ErrCodeValidation:   "validation_error",
	domain.ErrCodeConflict:     "conflict",
	domain.ErrCodeUnauthorized: "unauthorized",
	domain.ErrCodeForbidden:    "forbidden",
	domain.ErrCodeInternal:     "internal_error",
}

// Respond converts a service error into the API's JSON error body. Internal
// errors are reported to Sentry and never expose details to the client.
func Respond(c echo.Context, err error) error {
	code := domain.CodeOf(err)
	status := statusFor[code]
	if status == 0 {
		status = http.StatusInternalServerError
	}

	message := "An internal error occurred. Please try again later."
	if code != domain.ErrCodeInternal {
		var de *domain.DomainError
		if errors.As(err, &de) {
			message = de.Message
		}
	} else {
		captureToSentry(c, err)
		c.Logger().Error(err)
	}

	return c.JSON(status, models.ErrorResponse{
		Error:   errorKey[code],
		Message: message,
	})
}

// BindError responds to a request body that failed binding.
func BindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

// ValidationError responds to a request that failed struct validation.
func ValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// Unauthorized responds with a 401.
func Unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// Forbidden responds with a 403.
func Forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, models.ErrorResponse{
		Error:   "forbidden",
		Message: "You do not have permission to access this resource.",
	})
}

func captureToSentry(c echo.Context, err error) {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
