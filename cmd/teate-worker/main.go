package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"teate/internal/amqp"
	"teate/internal/cli"
	"teate/internal/export"
	gsheet "teate/internal/export/google"
	mem "teate/internal/export/memory"
	applog "teate/internal/log"
	"teate/internal/services"
	"teate/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := applog.New(applog.DefaultConfig()).WithComponent("worker")
	applog.SetDefault(logger)

	logger.Info("Starting teate-worker")

	cfg := cli.LoadAndValidateConfig(logger.Logger)

	sqliteRepo := cli.InitSQLite(logger.Logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	var writer export.ReportWriter
	if cfg.ExportWriter == "sheets" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets writer initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = mem.New()
		logger.Info("Memory writer initialized - reports are not persisted")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(services.NewReportService(sqliteRepo), writer)

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)

	// Consume export requests from the queue.
	g.Go(func() error {
		err := amqpClient.ConsumeExportRequests(gctx, func(msg *amqp.ExportRequestMessage) error {
			return exportWorker.HandleExportRequest(gctx, msg)
		})
		if err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	// Periodically rebuild the all-staff sheets in case requests were lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := exportWorker.RefreshSummaries(gctx); err != nil {
					logger.Error("Summary refresh failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
