package http

import (
	"errors"
	"net/http"

	"pricing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code       int              `json:"code"`
	Kind       errs.Kind        `json:"kind"`
	Message    string           `json:"message"`
	Violations []errs.Violation `json:"violations,omitempty"`
}

// StatusFor maps an error kind to the HTTP status it is reported with.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindInvalidValue:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindCapacity, errs.KindConfiguration:
		return http.StatusUnprocessableEntity
	case errs.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := StatusFor(kind)
	body := Error{Code: status, Kind: kind, Message: err.Error()}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		body.Violations = validationErr.Violations
	}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		body.Message = "Failed to price the request"
	}
	return c.JSON(status, body)
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindValidation,
		Message: "Invalid request body",
	})
}
