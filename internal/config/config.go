// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/consigliere and cmd/tornctl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Torn API
	TornAPIKey    string
	TornBaseURL   string
	TornTimeout   time.Duration
	TornRateLimit int // requests per minute against the Torn API
	MonitorFields string
	CompanyFields string

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// Groq (OpenAI-compatible)
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	// Scheduler
	MonitorInterval time.Duration
	CompanyInterval time.Duration

	// Keep-alive HTTP server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS
	CORSAllowOrigins []string

	// State store
	StatePath string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	apiKey := envOr("TORN_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("TORN_API_KEY must be set")
	}
	botToken := envOr("TELEGRAM_BOT_TOKEN", "")
	if botToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}
	chatID, err := strconv.ParseInt(envOr("TELEGRAM_CHAT_ID", envOr("USER_ID", "")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be a numeric chat id: %w", err)
	}

	return &Config{
		TornAPIKey:    apiKey,
		TornBaseURL:   envOr("TORN_API_BASE_URL", "https://api.torn.com"),
		TornTimeout:   time.Duration(envInt("TORN_API_TIMEOUT_SECONDS", 15)) * time.Second,
		TornRateLimit: envInt("TORN_RATE_LIMIT_PER_MINUTE", 60),

		// One batched call per tick covers every monitored selection.
		MonitorFields: envOr("TORN_MONITOR_SELECTIONS",
			"basic,bars,cooldowns,travel,education,events,messages"),
		CompanyFields: envOr("TORN_COMPANY_SELECTIONS", "profile,stock,employees"),

		TelegramBotToken: botToken,
		TelegramChatID:   chatID,

		GroqAPIKey:  envOr("GROQ_API_KEY", ""),
		GroqBaseURL: envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:   envOr("GROQ_MODEL", "llama-3.3-70b-versatile"),

		MonitorInterval: time.Duration(envInt("MONITOR_INTERVAL_SECONDS", 60)) * time.Second,
		CompanyInterval: time.Duration(envInt("COMPANY_INTERVAL_SECONDS", 300)) * time.Second,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8080)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		StatePath: envOr("STATE_PATH", "consigliere.db"),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
