package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок внешних вызовов и пользовательского ввода.
var (
	// Transport errors (соединение/таймаут)
	ErrTransport = errors.New("transport failure")

	// Protocol errors (код ответа не 200)
	ErrProtocol = errors.New("unexpected response status")

	// Decode errors (тело ответа не разбирается)
	ErrDecode = errors.New("malformed response body")

	// Validation errors (номер спринта от пользователя не целое число)
	ErrInvalidSprintNumber = errors.New("invalid sprint number")
)

// APIError — ошибка обращения к внешнему API с контекстом вызова:
// имя компонента, целевой URL и класс сбоя. Сопоставляется с классами
// выше через errors.Is.
type APIError struct {
	Kind      error
	Component string
	URL       string
	Status    int
	Err       error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%s): %v: status_code=%d", e.Component, e.URL, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s (%s): %v: %v", e.Component, e.URL, e.Kind, e.Err)
}

func (e *APIError) Is(target error) bool { return target == e.Kind }

func (e *APIError) Unwrap() error { return e.Err }
