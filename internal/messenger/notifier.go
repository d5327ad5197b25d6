package messenger

import (
	"context"

	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

// Notifier доставляет составленный отчёт в канал.
type Notifier struct {
	gateway Gateway
}

func NewNotifier(gateway Gateway) *Notifier {
	return &Notifier{gateway: gateway}
}

// Send отправляет все страницы параллельно и ждёт завершения каждой.
// Ошибка любой отправки валит всю партию без ретраев.
func (n *Notifier) Send(ctx context.Context, channelID string, pages []Page) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, page := range pages {
		page := page
		g.Go(func() error {
			return n.gateway.PostBlocks(gctx, channelID, []slack.Block(page))
		})
	}
	return g.Wait()
}

// SendFallback отправляет сообщение об отсутствии пул-реквестов.
func (n *Notifier) SendFallback(ctx context.Context, channelID string) error {
	return n.gateway.PostBlocks(ctx, channelID, []slack.Block(NoPullRequestsPage()))
}

// SendText отправляет служебное текстовое сообщение.
func (n *Notifier) SendText(ctx context.Context, channelID string, text string) error {
	return n.gateway.PostText(ctx, channelID, text)
}
