package messenger

import (
	"context"
	"errors"

	"sprint-reporter-bot/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

const component = "SlackGateway"

// Gateway — узкий порт исходящих вызовов в чат. Реализуется slack-go клиентом,
// в тестах — двойником.
type Gateway interface {
	PostBlocks(ctx context.Context, channelID string, blocks []slack.Block) error
	PostText(ctx context.Context, channelID string, text string) error
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

// SlackGateway реализует Gateway поверх Slack Web API.
type SlackGateway struct {
	api    *slack.Client
	logger *logrus.Logger
}

func NewSlackGateway(token string, logger *logrus.Logger, opts ...slack.Option) *SlackGateway {
	return &SlackGateway{
		api:    slack.New(token, opts...),
		logger: logger,
	}
}

// PostBlocks отправляет одно сообщение из Block Kit блоков.
func (g *SlackGateway) PostBlocks(ctx context.Context, channelID string, blocks []slack.Block) error {
	_, _, err := g.api.PostMessageContext(ctx, channelID, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		return g.fail("chat.postMessage", err)
	}
	return nil
}

// PostText отправляет простое текстовое сообщение.
func (g *SlackGateway) PostText(ctx context.Context, channelID string, text string) error {
	_, _, err := g.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return g.fail("chat.postMessage", err)
	}
	return nil
}

// ListMembers возвращает участников воркспейса с нормализованными именами.
func (g *SlackGateway) ListMembers(ctx context.Context) ([]domain.Member, error) {
	users, err := g.api.GetUsersContext(ctx)
	if err != nil {
		return nil, g.fail("users.list", err)
	}
	members := make([]domain.Member, 0, len(users))
	for _, user := range users {
		members = append(members, domain.Member{
			ID:          user.ID,
			DisplayName: user.Profile.RealNameNormalized,
		})
	}
	return members, nil
}

// Отказ уровня Slack API (ok=false либо не-2xx статус) — протокольная
// ошибка; транспортной считается только недоставка самого запроса.
func classify(err error) error {
	var apiResp slack.SlackErrorResponse
	var statusErr slack.StatusCodeError
	if errors.As(err, &apiResp) || errors.As(err, &statusErr) {
		return domain.ErrProtocol
	}
	return domain.ErrTransport
}

func (g *SlackGateway) fail(method string, err error) error {
	apiErr := &domain.APIError{Kind: classify(err), Component: component, URL: method, Err: err}
	g.logger.WithFields(logrus.Fields{
		"component": apiErr.Component,
		"url":       apiErr.URL,
		"kind":      apiErr.Kind.Error(),
	}).WithError(err).Error("Slack request failed")
	return apiErr
}
