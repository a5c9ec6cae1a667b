package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"orgdash/internal/transport"
	apperrors "orgdash/pkg/errors"
)

// ErrorBody - тело ошибки, которое умеет разбирать клиент: {message, errors?}.
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// SuccessOne отдаёт объект в выбранном конверте.
func SuccessOne[T any](c echo.Context, code int, envelope transport.Envelope, data T) error {
	return c.JSON(code, envelope.Wrap(data))
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func ErrorResponse(c echo.Context, err error) error {
	code, body := describeError(err)
	return c.JSON(code, body)
}

func describeError(err error) (int, ErrorBody) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, ErrorBody{Message: validationErr.Message, Errors: validationErr.Errors}
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest, ErrorBody{Message: inputErr.Message}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorBody{Message: fmt.Sprint(httpErr.Message)}
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Message: err.Error()}
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, ErrorBody{Message: err.Error()}
	case errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorBody{Message: err.Error()}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorBody{Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorBody{Message: apperrors.ErrInternal.Error()}
	}
}
