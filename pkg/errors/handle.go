package errors

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HandleAPIError классифицирует ошибку транспорта, логирует её и возвращает.
// Никогда не возвращает nil: вызывающий код обязан вернуть результат наверх.
func HandleAPIError(err error, logger *zap.Logger) error {
	classified := Classify(err)
	LogError(logger, classified)
	return classified
}

// Classify - чистая часть HandleAPIError, без логирования.
func Classify(err error) Classified {
	if err == nil {
		return NewAPIError("", http.StatusInternalServerError, nil)
	}

	var already Classified
	if errors.As(err, &already) {
		return already
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		return NewAPIError(err.Error(), http.StatusInternalServerError, err)
	}

	if transportErr.Response == nil || transportErr.Response.Status == 0 {
		return NewNetworkError("", err)
	}

	payload := ParseErrorPayload(transportErr.Response.Body)
	switch status := transportErr.Response.Status; status {
	case http.StatusBadRequest:
		return NewValidationError(payload.Message, payload.Errors, err)
	case http.StatusUnauthorized:
		return NewAuthenticationError(payload.Message, err)
	case http.StatusForbidden:
		return NewAuthorizationError(payload.Message, err)
	case http.StatusNotFound:
		return NewNotFoundError(payload.Message, err)
	default:
		return NewServerError(payload.Message, status, err)
	}
}

// FormattedError - сериализуемый вид ошибки для логов и UI.
type FormattedError struct {
	Message   string              `json:"message"`
	Status    int                 `json:"status"`
	Type      string              `json:"type"`
	Timestamp string              `json:"timestamp"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Retryable *bool               `json:"retryable,omitempty"`
}

// FormatError: errors только у ValidationError, retryable только у NetworkError.
func FormatError(err error) FormattedError {
	classified := Classify(err)
	base := classified.Base()

	formatted := FormattedError{
		Message:   base.Message,
		Status:    base.Status,
		Type:      base.Name,
		Timestamp: base.Timestamp.UTC().Format(time.RFC3339Nano),
	}

	switch e := classified.(type) {
	case *ValidationError:
		formatted.Errors = e.Errors
		if formatted.Errors == nil {
			formatted.Errors = map[string][]string{}
		}
	case *NetworkError:
		retryable := e.Retryable
		formatted.Retryable = &retryable
	}
	return formatted
}

// LogError: ValidationError идёт в warn, всё остальное - в error.
func LogError(logger *zap.Logger, err error) {
	if logger == nil {
		return
	}
	formatted := FormatError(err)

	fields := []zap.Field{
		zap.String("type", formatted.Type),
		zap.Int("status", formatted.Status),
		zap.String("message", formatted.Message),
		zap.String("timestamp", formatted.Timestamp),
	}
	if formatted.Errors != nil {
		fields = append(fields, zap.Any("errors", formatted.Errors))
	}
	if formatted.Retryable != nil {
		fields = append(fields, zap.Bool("retryable", *formatted.Retryable))
	}
	fields = append(fields, zap.Any("error_details", formatted))

	if formatted.Type == NameValidationError {
		logger.Warn("Ошибка валидации API", fields...)
		return
	}
	logger.Error("Ошибка API", fields...)
}
