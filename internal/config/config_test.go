package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TORN_API_KEY", "k")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "123")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TornBaseURL != "https://api.torn.com" {
		t.Errorf("TornBaseURL = %q", cfg.TornBaseURL)
	}
	if cfg.MonitorInterval != 60*time.Second || cfg.CompanyInterval != 300*time.Second {
		t.Errorf("intervals = %v / %v", cfg.MonitorInterval, cfg.CompanyInterval)
	}
	if cfg.TelegramChatID != 123 {
		t.Errorf("TelegramChatID = %d", cfg.TelegramChatID)
	}
	if cfg.APIPort != 8080 {
		t.Errorf("APIPort = %d", cfg.APIPort)
	}
	if cfg.StatePath != "consigliere.db" {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("TORN_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("missing TORN_API_KEY must fail")
	}

	t.Setenv("TORN_API_KEY", "k")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Error("missing TELEGRAM_BOT_TOKEN must fail")
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("non-numeric TELEGRAM_CHAT_ID must fail")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MONITOR_INTERVAL_SECONDS", "30")
	t.Setenv("PORT", "10000")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MonitorInterval != 30*time.Second {
		t.Errorf("MonitorInterval = %v", cfg.MonitorInterval)
	}
	if cfg.APIPort != 10000 {
		t.Errorf("APIPort = %d", cfg.APIPort)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
	}
	if !cfg.IsProduction() {
		t.Error("ENVIRONMENT=production must report production")
	}
}
