// Файл: pkg/errors/taxonomy.go
package errors

import (
	"net/http"
	"time"
)

// Имена видов ошибок. Они же попадают в поле type у FormatError.
const (
	NameAPIError            = "ApiError"
	NameNetworkError        = "NetworkError"
	NameValidationError     = "ValidationError"
	NameAuthenticationError = "AuthenticationError"
	NameAuthorizationError  = "AuthorizationError"
	NameNotFoundError       = "NotFoundError"
	NameServerError         = "ServerError"
)

// APIError - базовая ошибка клиента. Создаётся только на границе отказа
// и после создания не меняется.
type APIError struct {
	Name      string
	Message   string
	Status    int
	Timestamp time.Time
	Err       error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// Base даёт доступ к общим полям любого вида ошибки.
func (e *APIError) Base() *APIError { return e }

// Classified реализуют все ошибки таксономии.
type Classified interface {
	error
	Base() *APIError
}

func newBase(name, message string, status int, cause error) *APIError {
	return &APIError{
		Name:      name,
		Message:   message,
		Status:    status,
		Timestamp: time.Now(),
		Err:       cause,
	}
}

// NewAPIError - общая ошибка для всего, что не удалось классифицировать.
func NewAPIError(message string, status int, cause error) *APIError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = ErrInternal.Error()
	}
	return newBase(NameAPIError, message, status, cause)
}

// NetworkError - запрос ушёл, ответа нет (таймаут, DNS, отказ в соединении).
type NetworkError struct {
	*APIError
	Retryable bool
}

func NewNetworkError(message string, cause error) *NetworkError {
	if message == "" {
		message = "Сетевая ошибка: сервер недоступен"
	}
	return &NetworkError{APIError: newBase(NameNetworkError, message, 0, cause), Retryable: true}
}

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ValidationError несёт ошибки по полям ровно в том виде, в каком их прислал бэкенд.
type ValidationError struct {
	*APIError
	Errors map[string][]string
}

func NewValidationError(message string, fieldErrors map[string][]string, cause error) *ValidationError {
	if message == "" {
		message = "Ошибка валидации"
	}
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	return &ValidationError{
		APIError: newBase(NameValidationError, message, http.StatusBadRequest, cause),
		Errors:   fieldErrors,
	}
}

func (e *ValidationError) Is(target error) bool { return target == ErrBadRequest }

type AuthenticationError struct {
	*APIError
}

func NewAuthenticationError(message string, cause error) *AuthenticationError {
	if message == "" {
		message = "Требуется аутентификация"
	}
	return &AuthenticationError{APIError: newBase(NameAuthenticationError, message, http.StatusUnauthorized, cause)}
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrUnauthorized }

type AuthorizationError struct {
	*APIError
}

func NewAuthorizationError(message string, cause error) *AuthorizationError {
	if message == "" {
		message = "Недостаточно прав"
	}
	return &AuthorizationError{APIError: newBase(NameAuthorizationError, message, http.StatusForbidden, cause)}
}

func (e *AuthorizationError) Is(target error) bool { return target == ErrForbidden }

type NotFoundError struct {
	*APIError
}

func NewNotFoundError(message string, cause error) *NotFoundError {
	if message == "" {
		message = "Ресурс не найден"
	}
	return &NotFoundError{APIError: newBase(NameNotFoundError, message, http.StatusNotFound, cause)}
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ServerError - всё остальное. Status всегда 500, реальный код ответа
// лежит в ResponseStatus.
type ServerError struct {
	*APIError
	ResponseStatus int
}

func NewServerError(message string, responseStatus int, cause error) *ServerError {
	if message == "" {
		message = ErrInternal.Error()
	}
	return &ServerError{
		APIError:       newBase(NameServerError, message, http.StatusInternalServerError, cause),
		ResponseStatus: responseStatus,
	}
}

func (e *ServerError) Is(target error) bool { return target == ErrInternal }
