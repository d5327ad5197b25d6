package handler

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// LoggingMiddleware добавляет структурированное логирование запросов
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}

// VerifySlackSignature проверяет подпись v0 и свежесть метки времени запроса
// Slack до передачи его обработчику. Тело восстанавливается для чтения ниже.
func VerifySlackSignature(signingSecret string, logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return c.NoContent(http.StatusBadRequest)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			verifier, err := slack.NewSecretsVerifier(req.Header, signingSecret)
			if err != nil {
				logger.WithError(err).Error("Request rejected: missing or stale signature headers")
				return c.NoContent(http.StatusForbidden)
			}
			if _, err := verifier.Write(body); err != nil {
				return c.NoContent(http.StatusInternalServerError)
			}
			if err := verifier.Ensure(); err != nil {
				logger.WithError(err).Error("Request rejected: invalid signature")
				return c.NoContent(http.StatusForbidden)
			}

			return next(c)
		}
	}
}
