package usecase

import (
	"context"

	"sprint-reporter-bot/internal/domain"
	"sprint-reporter-bot/internal/messenger"
	"sprint-reporter-bot/internal/tracker"

	"github.com/sirupsen/logrus"
)

// Notifier — исходящая сторона конвейера отчёта.
type Notifier interface {
	Send(ctx context.Context, channelID string, pages []messenger.Page) error
	SendFallback(ctx context.Context, channelID string) error
	SendText(ctx context.Context, channelID string, text string) error
}

// Bridge связывает трекер и чат в один прогон отчёта:
// задачи спринта -> пул-реквесты -> свёртка -> страницы -> отправка.
type Bridge struct {
	tracker  domain.TrackerClient
	store    domain.KeyValueStore
	notifier Notifier
	logger   *logrus.Logger

	defaultChannel string
	defaultSprint  int
}

func NewBridge(
	trackerClient domain.TrackerClient,
	store domain.KeyValueStore,
	notifier Notifier,
	logger *logrus.Logger,
	defaultChannel string,
	defaultSprint int,
) *Bridge {
	return &Bridge{
		tracker:        trackerClient,
		store:          store,
		notifier:       notifier,
		logger:         logger,
		defaultChannel: defaultChannel,
		defaultSprint:  defaultSprint,
	}
}

// Run выполняет один прогон отчёта для спринта и канала. Прогон линейный и
// одноразовый: ошибка любого этапа прерывает его целиком, ретраев и частичного
// восстановления нет. Успешный прогон даёт ровно одно логическое уведомление:
// либо отчёт, либо заглушку.
//
// Известное ограничение: параллельные прогоны одного спринта могут затереть
// кэш упоминаний друг друга (последняя запись побеждает). Частота запусков
// низкая, блокировка намеренно не добавлена.
func (b *Bridge) Run(ctx context.Context, sprint int, channelID string) error {
	log := b.logger.WithFields(logrus.Fields{
		"sprint":  sprint,
		"channel": channelID,
	})
	log.Info("Report run started")

	issues, err := b.tracker.FetchSprintIssues(ctx, sprint)
	if err != nil {
		return err
	}

	bundles, err := b.tracker.FetchReviewRequests(ctx, issues)
	if err != nil {
		return err
	}

	records := tracker.Reduce(bundles)
	if len(records) == 0 {
		log.Info("Nothing to report, sending fallback")
		return b.notifier.SendFallback(ctx, channelID)
	}

	resolver, err := b.newResolver(ctx)
	if err != nil {
		return err
	}

	pages := messenger.Compose(records, resolver)
	if err := b.notifier.Send(ctx, channelID, pages); err != nil {
		return err
	}

	// Запись кэша упоминаний — best-effort: отчёт уже доставлен.
	if err := b.store.Set(ctx, domain.KeyKnownUserIDs, resolver.Known()); err != nil {
		log.WithError(err).Warn("Failed to persist mention cache")
	}

	log.WithFields(logrus.Fields{
		"issues": len(records),
		"pages":  len(pages),
	}).Info("Report delivered")
	return nil
}

// RunScheduled выполняет прогон по расписанию: номер спринта берётся из
// хранилища, при отсутствии — значение из конфигурации; канал — основной.
func (b *Bridge) RunScheduled(ctx context.Context) error {
	sprint := b.defaultSprint
	var stored int
	ok, err := b.store.Get(ctx, domain.KeySprintNumber, &stored)
	if err != nil {
		return err
	}
	if ok {
		sprint = stored
	}
	return b.Run(ctx, sprint, b.defaultChannel)
}

// newResolver собирает резолвер упоминаний на один прогон из снапшотов
// кэша и ростера. Кэш принадлежит прогону и пишется обратно явно.
func (b *Bridge) newResolver(ctx context.Context) (*messenger.Resolver, error) {
	known := make(map[string]string)
	if _, err := b.store.Get(ctx, domain.KeyKnownUserIDs, &known); err != nil {
		return nil, err
	}

	var roster []domain.Member
	if _, err := b.store.Get(ctx, domain.KeySlackMembers, &roster); err != nil {
		return nil, err
	}

	return messenger.NewResolver(known, roster), nil
}
