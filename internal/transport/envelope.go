package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "orgdash/pkg/errors"
)

// Envelope - соглашение об обёртке ответа. Выбирается один раз при создании
// клиента ресурса и по ответу не угадывается.
type Envelope int

const (
	// EnvelopeWrapped: полезная нагрузка лежит в {"data": ...}.
	EnvelopeWrapped Envelope = iota
	// EnvelopeBare: тело ответа и есть полезная нагрузка.
	EnvelopeBare
)

func (e Envelope) String() string {
	if e == EnvelopeBare {
		return "bare"
	}
	return "wrapped"
}

func ParseEnvelope(s string) (Envelope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrapped", "data":
		return EnvelopeWrapped, nil
	case "bare", "raw":
		return EnvelopeBare, nil
	default:
		return EnvelopeWrapped, fmt.Errorf("неизвестный формат ответа %q (ожидается wrapped или bare)", s)
	}
}

// Unwrap возвращает JSON полезной нагрузки. Для wrapped отсутствие поля data
// считается несовпадением соглашения.
func (e Envelope) Unwrap(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: пустое тело ответа", apperrors.ErrEnvelopeMismatch)
	}
	if e == EnvelopeBare {
		return json.RawMessage(trimmed), nil
	}

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEnvelopeMismatch, err)
	}
	if len(wrapped.Data) == 0 {
		return nil, fmt.Errorf("%w: в ответе нет поля data", apperrors.ErrEnvelopeMismatch)
	}
	return wrapped.Data, nil
}

// Wrap - обратная операция, для сервера разработки и тестов.
func (e Envelope) Wrap(payload any) any {
	if e == EnvelopeBare {
		return payload
	}
	return map[string]any{"data": payload}
}

// Decode снимает обёртку и разбирает полезную нагрузку в T.
func Decode[T any](e Envelope, body []byte) (T, error) {
	var out T
	raw, err := e.Unwrap(body)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", apperrors.ErrEnvelopeMismatch, err)
	}
	return out, nil
}
