package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"sprint-reporter-bot/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
)

const (
	ackText        = "I'll respond in a moment..."
	correctionText = `Please write in the following syntax "sprint <int>"`
)

// EventsHandler обрабатывает входящие события Slack Events API.
// Подпись запроса проверяется middleware до этого обработчика.
type EventsHandler struct {
	*BaseHandler
	runner ReportRunner
	chat   TextSender
}

func NewEventsHandler(runner ReportRunner, chat TextSender, logger *logrus.Logger) *EventsHandler {
	return &EventsHandler{
		BaseHandler: NewBaseHandler(logger),
		runner:      runner,
		chat:        chat,
	}
}

// HandleEvent отвечает на url_verification и запускает прогон отчёта по
// личному сообщению вида "sprint <int>". Сообщения ботов, не-личные каналы
// и повторные доставки Slack игнорируются.
func (h *EventsHandler) HandleEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.logger.WithError(err).Warn("Failed to parse Slack event")
		return c.NoContent(http.StatusBadRequest)
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		return c.String(http.StatusOK, challenge.Challenge)

	case slackevents.CallbackEvent:
		if message, ok := event.InnerEvent.Data.(*slackevents.MessageEvent); ok {
			h.handleMessage(c, message)
		}
	}

	return c.NoContent(http.StatusOK)
}

func (h *EventsHandler) handleMessage(c echo.Context, message *slackevents.MessageEvent) {
	log := h.logRequest(c, "slack_event").WithField("channel", message.Channel)

	if message.BotID != "" {
		log.Debug("Bot message, it shouldn't be handled")
		return
	}
	if message.ChannelType != "im" {
		log.WithField("channel_type", message.ChannelType).Debug("Channel isn't a direct message channel")
		return
	}
	if retry := c.Request().Header.Get("X-Slack-Retry-Num"); retry != "" {
		log.WithField("retry", retry).Warn("Muting Slack retry")
		return
	}

	if err := h.chat.SendText(c.Request().Context(), message.Channel, ackText); err != nil {
		log.WithError(err).Error("Failed to ack direct message")
	}

	// Прогон живёт дольше HTTP-запроса, поэтому отвязан от его контекста.
	go h.runReport(message.Channel, message.Text)
}

func (h *EventsHandler) runReport(channelID, text string) {
	ctx := context.Background()
	log := h.logger.WithField("channel", channelID)

	sprint, err := usecase.ParseSprintCommand(text)
	if err != nil {
		log.WithField("text", text).Warn("Sprint number not valid")
		if err := h.chat.SendText(ctx, channelID, correctionText); err != nil {
			log.WithError(err).Error("Failed to send correction")
		}
		return
	}

	if err := h.runner.Run(ctx, sprint, channelID); err != nil {
		log.WithError(err).Error("Report run failed")
	}
}
