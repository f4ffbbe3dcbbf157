package worker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"teate/internal/amqp"
	"teate/internal/export"
	"teate/internal/export/memory"
	"teate/internal/services"
	"teate/internal/storage"
)

func newTestWorker(t *testing.T) (*ExportWorker, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "teate.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	allowances := services.NewAllowanceService(repo, nil, nil)
	seeds := []services.EntryInput{
		{Date: "2025-04-05", OwnerEmail: "tanaka@example.jp", ActivityCode: "A"},
		{Date: "2025-04-12", OwnerEmail: "sato@example.jp", ActivityCode: "B"},
	}
	for _, in := range seeds {
		if _, err := allowances.RecordEntry(ctx, in); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	store := memory.New()
	return NewExportWorker(services.NewReportService(repo), store), store
}

func TestHandleExportRequestIndividualMonthly(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()

	msg := amqp.NewExportRequestMessage(amqp.KindIndividualMonthly, "tanaka@example.jp", 2025, 4)
	if err := w.HandleExportRequest(ctx, msg); err != nil {
		t.Fatalf("HandleExportRequest: %v", err)
	}

	tbl, ok := store.Table(export.SheetIndividualMonthly)
	if !ok {
		t.Fatal("statement sheet not written")
	}
	// One entry row plus totals.
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[1][len(tbl.Rows[1])-1] != "3400" {
		t.Errorf("total cell = %q", tbl.Rows[1][len(tbl.Rows[1])-1])
	}
}

func TestHandleExportRequestAllStaffYearly(t *testing.T) {
	w, store := newTestWorker(t)
	ctx := context.Background()

	msg := amqp.NewExportRequestMessage(amqp.KindAllStaffYearly, "", 2025, 0)
	if err := w.HandleExportRequest(ctx, msg); err != nil {
		t.Fatalf("HandleExportRequest: %v", err)
	}

	tbl, ok := store.Table(export.SheetAllStaffYearly)
	if !ok {
		t.Fatal("yearly summary sheet not written")
	}
	// Two owners plus totals.
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}
	if tbl.Rows[2][2] != "5100" {
		t.Errorf("grand total = %q, want 5100", tbl.Rows[2][2])
	}
}

func TestHandleExportRequestValidation(t *testing.T) {
	w, _ := newTestWorker(t)
	ctx := context.Background()

	tests := []struct {
		name string
		msg  *amqp.ExportRequestMessage
		want string
	}{
		{"unknown kind", amqp.NewExportRequestMessage("bogus", "", 2025, 4), "unknown export kind"},
		{"missing year", &amqp.ExportRequestMessage{Kind: amqp.KindAllStaffYearly}, "missing year"},
		{"missing owner", amqp.NewExportRequestMessage(amqp.KindIndividualYearly, "", 2025, 0), "missing owner"},
		{"bad month", amqp.NewExportRequestMessage(amqp.KindAllStaffMonthly, "", 2025, 13), "month 13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.HandleExportRequest(ctx, tt.msg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRefreshSummaries(t *testing.T) {
	w, store := newTestWorker(t)

	if err := w.RefreshSummaries(context.Background()); err != nil {
		t.Fatalf("RefreshSummaries: %v", err)
	}
	if _, ok := store.Table(export.SheetAllStaffMonthly); !ok {
		t.Error("monthly summary not refreshed")
	}
	if _, ok := store.Table(export.SheetAllStaffYearly); !ok {
		t.Error("yearly summary not refreshed")
	}
}
