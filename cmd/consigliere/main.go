// Command consigliere is the Torn City companion daemon.
//
// It polls the Torn API on two independent tick families (stats/events every
// minute, company health every five minutes), detects changes, and relays
// alerts to the Boss over Telegram. A small keep-alive HTTP server keeps
// hosting platforms from putting the process to sleep.
//
// Usage:
//
//	consigliere
//	PORT=8080 consigliere
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/tornsuite/consigliere/internal/api"
	"github.com/tornsuite/consigliere/internal/config"
	"github.com/tornsuite/consigliere/internal/monitor"
	"github.com/tornsuite/consigliere/internal/state"
	"github.com/tornsuite/consigliere/internal/telegram"
	"github.com/tornsuite/consigliere/internal/torn"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Open durable state (watermarks, feature flags)
	store, err := state.Open(cfg.StatePath)
	if err != nil {
		logger.Error("Failed to open state store", "path", cfg.StatePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("State store opened", "path", cfg.StatePath)

	// Collaborators
	client := torn.NewClient(cfg.TornBaseURL, cfg.TornAPIKey, cfg.TornRateLimit, cfg.TornTimeout, logger)
	sender := telegram.NewSender(cfg.TelegramBotToken, cfg.TelegramChatID)

	// Monitor: first-boot watermark catch-up, then both tick families
	mon := monitor.New(client, store, sender, monitor.Options{
		MonitorFields:   cfg.MonitorFields,
		CompanyFields:   cfg.CompanyFields,
		MonitorInterval: cfg.MonitorInterval,
		CompanyInterval: cfg.CompanyInterval,
	}, logger)
	mon.InitWatermarks(ctx)
	go mon.Start(ctx)

	// Keep-alive HTTP server
	router := api.NewRouter(mon, store, cfg)
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting keep-alive server", "addr", addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Stopped")
}
