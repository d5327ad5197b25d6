package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	JiraDomain string
	JiraEmail  string
	JiraToken  string

	SlackToken         string
	SlackChannelID     string
	SlackSigningSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SprintNumber   int
	ReportSchedule string
	RosterSchedule string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JiraDomain: getEnv("JIRA_DOMAIN", ""),
		JiraEmail:  getEnv("JIRA_EMAIL", ""),
		JiraToken:  getEnv("JIRA_TOKEN", ""),

		SlackToken:         getEnv("SLACK_TOKEN", ""),
		SlackChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SprintNumber:   getEnvInt("JIRA_SPRINT_NUMBER", 0),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "0 7,9,11,13,15 * * 1-5"),
		RosterSchedule: getEnv("ROSTER_SCHEDULE", "0 0 * * 1-5"),
	}, err
}

// Validate проверяет наличие обязательных учётных данных внешних API.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"JIRA_DOMAIN", c.JiraDomain},
		{"JIRA_EMAIL", c.JiraEmail},
		{"JIRA_TOKEN", c.JiraToken},
		{"SLACK_TOKEN", c.SlackToken},
		{"SLACK_CHANNEL_ID", c.SlackChannelID},
		{"SLACK_SIGNING_SECRET", c.SlackSigningSecret},
	}
	for _, v := range required {
		if v.value == "" {
			return fmt.Errorf("missing required environment variable %s", v.name)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
