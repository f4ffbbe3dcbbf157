package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"teate/internal/amqp"
	"teate/internal/cli"
	apphttp "teate/internal/http"
	applog "teate/internal/log"
	"teate/internal/rates"
	"teate/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := applog.New(applog.DefaultConfig()).WithComponent("api")
	applog.SetDefault(logger)

	cfg := cli.LoadAndValidateConfig(logger.Logger)

	sqliteRepo := cli.InitSQLite(logger.Logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	rateTable, err := rates.LoadFromFile(cfg.RatesFile)
	if err != nil {
		logger.Error("Failed to load rate table", "error", err, "path", cfg.RatesFile)
		os.Exit(1)
	}

	// The export queue is optional for the API: entries are saved locally
	// either way, exports just stay stale until the queue is back.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, export requests will be skipped", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	}

	schedules := services.NewScheduleService(sqliteRepo)
	allowances := services.NewAllowanceService(sqliteRepo, amqpClient, rateTable)
	reports := services.NewReportService(sqliteRepo)

	srv := apphttp.NewServer(":"+cfg.Port, schedules, allowances, reports, sqliteRepo)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting teate server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
