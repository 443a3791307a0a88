package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver            string
	DBPath              string
	DatabaseURL         string
	Port                string
	SessionSecret       string
	JWTSecret           string
	GinMode             string
	UploadDir           string
	TelegramBotToken    string
	TelegramBotUsername string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "sqlite"),
		DBPath:              getEnv("DB_PATH", "task_management.db"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		Port:                getEnv("PORT", "8080"),
		SessionSecret:       getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:           getEnv("JWT_SECRET", "default-jwt-secret-change-me"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramBotUsername: getEnv("TELEGRAM_BOT_USERNAME", "taskmanager_eagle_bot"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
