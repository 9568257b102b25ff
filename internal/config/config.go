package config

import (
	"os"
	"strings"
)

type Config struct {
	BotToken     string
	DatabasePath string
	HTTPAddr     string
}

func Load() Config {
	return Config{
		BotToken:     getBotToken(),
		DatabasePath: getEnv("DATABASE_PATH", "./data/alcofree.db"),
		HTTPAddr:     ":" + getEnv("PORT", "10000"),
	}
}

// getBotToken prefers a Docker secret over the environment variable.
func getBotToken() string {
	if data, err := os.ReadFile("/run/secrets/telegram_bot_token"); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return strings.TrimSpace(os.Getenv("BOT_TOKEN"))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
