package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransportResponse - то, что успели получить от сервера до отказа.
type TransportResponse struct {
	Status int
	Body   []byte
}

// TransportError - "сырая" ошибка HTTP-уровня. Response == nil значит,
// что ответа не было вовсе.
type TransportError struct {
	Method   string
	URL      string
	Response *TransportResponse
	Err      error
}

func (e *TransportError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("%s %s: статус %d", e.Method, e.URL, e.Response.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: нет ответа", e.Method, e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorPayload - тело ошибки от бэкенда. Ни одно поле не гарантировано.
type ErrorPayload struct {
	Message string
	Errors  map[string][]string
}

// ParseErrorPayload разбирает {message?, detail?, errors?}. Каждое поле
// читается отдельно: неожиданный тип одного не теряет остальные. message и
// detail бывают строкой, списком строк или числом, значения в errors -
// строкой или списком строк.
func ParseErrorPayload(body []byte) ErrorPayload {
	var payload ErrorPayload
	if len(body) == 0 {
		return payload
	}

	var raw struct {
		Message json.RawMessage `json:"message"`
		Detail  json.RawMessage `json:"detail"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return payload
	}

	payload.Message = strings.Join(textList(raw.Message), "; ")
	if payload.Message == "" {
		payload.Message = strings.Join(textList(raw.Detail), "; ")
	}

	var fields map[string]json.RawMessage
	if len(raw.Errors) > 0 && json.Unmarshal(raw.Errors, &fields) == nil && fields != nil {
		payload.Errors = make(map[string][]string, len(fields))
		for field, value := range fields {
			if list := textList(value); list != nil {
				payload.Errors[field] = list
			}
		}
	}
	return payload
}

// textList читает строку, список строк или число. Прочее даёт nil.
func textList(value json.RawMessage) []string {
	if len(value) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(value, &single); err == nil {
		if single = strings.TrimSpace(single); single != "" {
			return []string{single}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(value, &list); err == nil {
		return list
	}
	var number json.Number
	if err := json.Unmarshal(value, &number); err == nil {
		return []string{number.String()}
	}
	return nil
}
