package handler

import (
	"fmt"
	"net/http"

	"sprint-reporter-bot/internal/domain"
	"sprint-reporter-bot/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// SprintHandler обрабатывает slash-команду смены активного спринта.
type SprintHandler struct {
	*BaseHandler
	store     domain.KeyValueStore
	chat      TextSender
	channelID string
}

func NewSprintHandler(store domain.KeyValueStore, chat TextSender, channelID string, logger *logrus.Logger) *SprintHandler {
	return &SprintHandler{
		BaseHandler: NewBaseHandler(logger),
		store:       store,
		chat:        chat,
		channelID:   channelID,
	}
}

// HandleCommand валидирует аргумент команды и сохраняет его как активный
// номер спринта. Невалидный ввод — единственная восстановимая ошибка:
// она превращается в корректирующее сообщение, а не в сбой запроса.
func (h *SprintHandler) HandleCommand(c echo.Context) error {
	command, err := slack.SlashCommandParse(c.Request())
	if err != nil {
		h.logger.WithError(err).Warn("Failed to parse slash command")
		return c.NoContent(http.StatusBadRequest)
	}

	log := h.logRequest(c, "sprint_command").WithField("text", command.Text)
	ctx := c.Request().Context()

	sprint, err := usecase.ParseSprintNumber(command.Text)
	if err != nil {
		log.Warn("Invalid sprint number")
		corrective := fmt.Sprintf(
			"You've passed an invalid sprint number: %s. Please follow this syntax: <int>",
			command.Text,
		)
		if err := h.chat.SendText(ctx, h.channelID, corrective); err != nil {
			log.WithError(err).Error("Failed to send correction")
		}
		return c.NoContent(http.StatusOK)
	}

	if err := h.store.Set(ctx, domain.KeySprintNumber, sprint); err != nil {
		log.WithError(err).Error("Failed to persist sprint number")
		return c.NoContent(http.StatusInternalServerError)
	}

	if err := h.chat.SendText(ctx, h.channelID, fmt.Sprintf("Sprint number set to %d...", sprint)); err != nil {
		log.WithError(err).Error("Failed to confirm sprint change")
	}

	log.WithField("sprint", sprint).Info("Sprint number updated")
	return c.NoContent(http.StatusOK)
}
