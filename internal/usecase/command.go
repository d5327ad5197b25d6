package usecase

import (
	"strconv"
	"strings"

	"sprint-reporter-bot/internal/domain"
)

// ParseSprintCommand разбирает текст личного сообщения вида "sprint <int>".
func ParseSprintCommand(text string) (int, error) {
	if !strings.HasPrefix(strings.ToLower(text), "sprint ") {
		return 0, domain.ErrInvalidSprintNumber
	}
	_, raw, _ := strings.Cut(text, " ")
	return ParseSprintNumber(raw)
}

// ParseSprintNumber валидирует номер спринта из пользовательского ввода.
func ParseSprintNumber(text string) (int, error) {
	sprint, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, domain.ErrInvalidSprintNumber
	}
	return sprint, nil
}
