package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sprint-reporter-bot/internal/config"
	"sprint-reporter-bot/internal/handler"
	"sprint-reporter-bot/internal/messenger"
	"sprint-reporter-bot/internal/scheduler"
	"sprint-reporter-bot/internal/storage"
	"sprint-reporter-bot/internal/tracker"
	"sprint-reporter-bot/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Хранилище (Redis)
	store := storage.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer store.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		cancelPing()
		logger.Fatalf("Redis connection failed: %v", err)
	}
	cancelPing()
	logger.Info("Redis connected")

	// Клиенты внешних API
	httpClient := &http.Client{Timeout: 10 * time.Second}
	jiraClient := tracker.NewClient(httpClient, cfg.JiraDomain, cfg.JiraEmail, cfg.JiraToken, logger)
	gateway := messenger.NewSlackGateway(cfg.SlackToken, logger)
	notifier := messenger.NewNotifier(gateway)

	// Конвейер отчёта
	bridge := usecase.NewBridge(jiraClient, store, notifier, logger, cfg.SlackChannelID, cfg.SprintNumber)

	// Периодические задачи
	roster := messenger.NewRosterRefresher(gateway, store, logger)
	sched, err := scheduler.New(bridge, roster, cfg.ReportSchedule, cfg.RosterSchedule, logger)
	if err != nil {
		logger.Fatalf("Scheduler setup failed: %v", err)
	}
	sched.Start()

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(handler.LoggingMiddleware(logger))

	eventsHandler := handler.NewEventsHandler(bridge, notifier, logger)
	sprintHandler := handler.NewSprintHandler(store, notifier, cfg.SlackChannelID, logger)

	e.POST("/slack/events", eventsHandler.HandleEvent, handler.VerifySlackSignature(cfg.SlackSigningSecret, logger))
	e.POST("/slack/command/sprint", sprintHandler.HandleCommand, handler.VerifySlackSignature(cfg.SlackSigningSecret, logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	<-sched.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
