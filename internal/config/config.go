package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects every knob the service reads from the environment.
// Loaded once in main; handlers and usecases receive what they need
// explicitly.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigins []string

	// Shared secret the scraping pipeline presents on the ingress webhook.
	WebhookAPIKey string

	// HS256 secret for dashboard bearer tokens.
	JWTSecret string

	OutreachAPIURL   string
	OutreachAPIToken string

	DigestWebhookURL string
	DigestAPIKey     string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		CORSOrigins:      []string{getEnv("CORS_ORIGIN", "*")},
		WebhookAPIKey:    os.Getenv("WEBHOOK_API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		OutreachAPIURL:   os.Getenv("OUTREACH_API_URL"),
		OutreachAPIToken: os.Getenv("OUTREACH_API_TOKEN"),
		DigestWebhookURL: os.Getenv("DIGEST_WEBHOOK_URL"),
		DigestAPIKey:     os.Getenv("DIGEST_API_KEY"),
		RabbitUser:       getEnv("RABBITMQ_USER", "guest"),
		RabbitPass:       getEnv("RABBITMQ_PASS", "guest"),
		RabbitHost:       getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort:       getEnv("RABBITMQ_PORT", "5672"),
		MailHost:         os.Getenv("MAIL_HOST"),
		MailPort:         getEnvInt("MAIL_PORT", 587),
		MailUser:         os.Getenv("MAIL_USER"),
		MailPass:         os.Getenv("MAIL_PASS"),
		MailFrom:         getEnv("MAIL_FROM", "alerts@intellio.app"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.WebhookAPIKey == "" {
		return nil, errors.New("WEBHOOK_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
