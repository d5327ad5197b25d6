package handler_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sprint-reporter-bot/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signingSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func signBody(secret, timestamp, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func callVerified(t *testing.T, timestamp, signature, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	next := func(c echo.Context) error {
		reached = true
		// Тело должно остаться читаемым после проверки подписи.
		restored, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		assert.Equal(t, body, string(restored))
		return c.NoContent(http.StatusOK)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", signature)
	rec := httptest.NewRecorder()

	mw := handler.VerifySlackSignature(signingSecret, testLogger())
	require.NoError(t, mw(next)(e.NewContext(req, rec)))
	return rec, reached
}

func TestVerifySlackSignature_ValidRequestPassesThrough(t *testing.T) {
	body := `{"type": "url_verification"}`
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	rec, reached := callVerified(t, timestamp, signBody(signingSecret, timestamp, body), body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestVerifySlackSignature_TamperedSignatureRejected(t *testing.T) {
	body := `{"type": "url_verification"}`
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	rec, reached := callVerified(t, timestamp, signBody("wrong-secret", timestamp, body), body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestVerifySlackSignature_StaleTimestampRejected(t *testing.T) {
	body := `{"type": "url_verification"}`
	stale := fmt.Sprintf("%d", time.Now().Add(-10*time.Minute).Unix())

	rec, reached := callVerified(t, stale, signBody(signingSecret, stale, body), body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestVerifySlackSignature_MissingHeadersRejected(t *testing.T) {
	rec, reached := callVerified(t, "", "", `{}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}
