package config_test

import (
	"testing"

	"sprint-reporter-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		JiraDomain:         "acme.atlassian.net",
		JiraEmail:          "bot@acme.com",
		JiraToken:          "jira-token",
		SlackToken:         "xoxb-token",
		SlackChannelID:     "C1",
		SlackSigningSecret: "secret",
	}
}

func TestValidate_CompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_ReportsMissingVariable(t *testing.T) {
	cfg := validConfig()
	cfg.SlackToken = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLACK_TOKEN")
}

func TestValidate_FirstMissingVariableIsStable(t *testing.T) {
	// При нескольких пропусках первой всегда называется переменная,
	// стоящая раньше в списке обязательных.
	for i := 0; i < 10; i++ {
		err := config.Config{}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JIRA_DOMAIN")
	}
}
