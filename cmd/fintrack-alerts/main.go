package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

func main() {
	// .env is optional, environment wins.
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentAMQP,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert consumer")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed connecting to AMQP", "error", err, "url", cfg.AMQPURL)
		os.Exit(1)
	}
	defer client.Close()

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Starting fintrack alert consumer", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := client.ConsumeBudgetAlerts(ctx, handleAlert); err != nil && err != context.Canceled {
		logger.Error("Alert consumption failed", "error", err)
		os.Exit(1)
	}

	// Let in-flight handler logs flush before exit.
	time.Sleep(100 * time.Millisecond)
	logger.Info("Alert consumer stopped")
}

// handleAlert surfaces one budget alert in the process log. Exceeded
// budgets log at error level, warnings at warn.
func handleAlert(msg *amqp.BudgetAlertMessage) error {
	args := []any{
		"budgetId", msg.BudgetID,
		"budgetType", msg.BudgetType,
		"year", msg.Year,
		"spent", msg.Spent.String(),
		"amount", msg.Amount.String(),
		"percentage", msg.Percentage,
		"currency", msg.Currency,
	}
	if msg.Month != nil {
		args = append(args, "month", *msg.Month)
	}
	if msg.Category != nil {
		args = append(args, "category", *msg.Category)
	}

	switch msg.Status {
	case core.BudgetExceeded:
		slog.Error("Budget exceeded", args...)
	default:
		slog.Warn("Budget warning", args...)
	}
	return nil
}
