// Package worker turns queued export requests into spreadsheet writes.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"teate/internal/amqp"
	"teate/internal/export"
	"teate/internal/services"
)

// ExportWorker builds the requested report and pushes it through the
// configured report writer.
type ExportWorker struct {
	reports *services.ReportService
	writer  export.ReportWriter
}

func NewExportWorker(reports *services.ReportService, writer export.ReportWriter) *ExportWorker {
	return &ExportWorker{
		reports: reports,
		writer:  writer,
	}
}

// HandleExportRequest processes a single export request from AMQP.
func (w *ExportWorker) HandleExportRequest(ctx context.Context, msg *amqp.ExportRequestMessage) error {
	slog.InfoContext(ctx, "Processing export request",
		"kind", msg.Kind,
		"owner", msg.OwnerEmail,
		"year", msg.Year,
		"month", msg.Month)

	table, err := w.buildTable(ctx, msg)
	if err != nil {
		return err
	}

	if err := w.writer.WriteTable(ctx, table); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (w *ExportWorker) buildTable(ctx context.Context, msg *amqp.ExportRequestMessage) (export.Table, error) {
	if msg.Year < 1 {
		return export.Table{}, fmt.Errorf("export request missing year")
	}

	switch msg.Kind {
	case amqp.KindIndividualMonthly:
		if msg.OwnerEmail == "" {
			return export.Table{}, fmt.Errorf("individual export missing owner email")
		}
		if msg.Month < 1 || msg.Month > 12 {
			return export.Table{}, fmt.Errorf("monthly export with month %d", msg.Month)
		}
		rows, err := w.reports.IndividualMonthly(ctx, msg.OwnerEmail, msg.Year, msg.Month)
		if err != nil {
			return export.Table{}, fmt.Errorf("build individual monthly: %w", err)
		}
		return export.IndividualMonthlyTable(rows), nil

	case amqp.KindIndividualYearly:
		if msg.OwnerEmail == "" {
			return export.Table{}, fmt.Errorf("individual export missing owner email")
		}
		rows, err := w.reports.IndividualYearly(ctx, msg.OwnerEmail, msg.Year)
		if err != nil {
			return export.Table{}, fmt.Errorf("build individual yearly: %w", err)
		}
		return export.IndividualYearlyTable(rows), nil

	case amqp.KindAllStaffMonthly:
		if msg.Month < 1 || msg.Month > 12 {
			return export.Table{}, fmt.Errorf("monthly export with month %d", msg.Month)
		}
		rows, err := w.reports.AllStaffMonthly(ctx, msg.Year, msg.Month)
		if err != nil {
			return export.Table{}, fmt.Errorf("build all-staff monthly: %w", err)
		}
		return export.AllStaffMonthlyTable(rows), nil

	case amqp.KindAllStaffYearly:
		rows, err := w.reports.AllStaffYearly(ctx, msg.Year)
		if err != nil {
			return export.Table{}, fmt.Errorf("build all-staff yearly: %w", err)
		}
		return export.AllStaffYearlyTable(rows), nil

	default:
		return export.Table{}, fmt.Errorf("unknown export kind %q", msg.Kind)
	}
}

// RefreshSummaries rebuilds the current month's and year's all-staff sheets.
// This is a backup mechanism in case export requests are lost.
func (w *ExportWorker) RefreshSummaries(ctx context.Context) error {
	now := time.Now()
	monthly := amqp.NewExportRequestMessage(amqp.KindAllStaffMonthly, "", now.Year(), int(now.Month()))
	if err := w.HandleExportRequest(ctx, monthly); err != nil {
		return fmt.Errorf("refresh monthly summary: %w", err)
	}
	yearly := amqp.NewExportRequestMessage(amqp.KindAllStaffYearly, "", now.Year(), 0)
	if err := w.HandleExportRequest(ctx, yearly); err != nil {
		return fmt.Errorf("refresh yearly summary: %w", err)
	}
	return nil
}
