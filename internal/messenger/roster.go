package messenger

import (
	"context"

	"sprint-reporter-bot/internal/domain"

	"github.com/sirupsen/logrus"
)

// RosterRefresher периодически обновляет снапшот участников воркспейса
// в хранилище. Конвейер отчёта сам в users.list не ходит — он читает
// только этот снапшот.
type RosterRefresher struct {
	gateway Gateway
	store   domain.KeyValueStore
	logger  *logrus.Logger
}

func NewRosterRefresher(gateway Gateway, store domain.KeyValueStore, logger *logrus.Logger) *RosterRefresher {
	return &RosterRefresher{
		gateway: gateway,
		store:   store,
		logger:  logger,
	}
}

// Refresh запрашивает users.list и сохраняет участников под ключом slack-members.
func (r *RosterRefresher) Refresh(ctx context.Context) error {
	members, err := r.gateway.ListMembers(ctx)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, domain.KeySlackMembers, members); err != nil {
		return err
	}
	r.logger.WithField("members", len(members)).Info("Workspace roster refreshed")
	return nil
}
