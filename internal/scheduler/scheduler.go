package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReportRunner запускает плановый прогон отчёта.
type ReportRunner interface {
	RunScheduled(ctx context.Context) error
}

// RosterRefresher обновляет снапшот ростера воркспейса.
type RosterRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler — периодические задачи бота: рассылка отчёта в рабочие часы и
// ночное обновление ростера. Ошибка задачи логируется и не ретраится —
// следующий тик расписания делает новый прогон с нуля.
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

func New(runner ReportRunner, roster RosterRefresher, reportSpec, rosterSpec string, logger *logrus.Logger) (*Scheduler, error) {
	c := cron.New()

	if _, err := c.AddFunc(reportSpec, func() {
		if err := runner.RunScheduled(context.Background()); err != nil {
			logger.WithError(err).Error("Scheduled report run failed")
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(rosterSpec, func() {
		if err := roster.Refresh(context.Background()); err != nil {
			logger.WithError(err).Error("Roster refresh failed")
		}
	}); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop останавливает расписание и возвращает контекст, закрывающийся после
// завершения уже запущенных задач.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
