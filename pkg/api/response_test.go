package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgdash/internal/transport"
	apperrors "orgdash/pkg/errors"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"валидация", apperrors.NewValidationError("Плохо", map[string][]string{"name": {"x"}}, nil), http.StatusBadRequest},
		{"неверный ввод", apperrors.NewInvalidInputError("плохой id %q", "x"), http.StatusBadRequest},
		{"не найдено", fmt.Errorf("team 1: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"нет токена", apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
		{"истёк токен", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"нет прав", apperrors.ErrForbidden, http.StatusForbidden},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "нельзя"), http.StatusMethodNotAllowed},
		{"прочее", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := describeError(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestErrorResponse_ValidationBody(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	err := ErrorResponse(c, apperrors.NewValidationError("Invalid name", map[string][]string{"name": {"too short"}}, nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid name","errors":{"name":["too short"]}}`, rec.Body.String())
}

func TestErrorResponse_InternalHidesDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, ErrorResponse(c, fmt.Errorf("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestSuccessOne_Envelope(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, SuccessOne(c, http.StatusOK, transport.EnvelopeWrapped, map[string]string{"id": "1"}))
	assert.JSONEq(t, `{"data":{"id":"1"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, SuccessOne(c, http.StatusOK, transport.EnvelopeBare, map[string]string{"id": "1"}))
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}
