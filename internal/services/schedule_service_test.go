package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"teate/internal/importer"
	"teate/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "teate.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestImportCSVStoresAcceptedRows(t *testing.T) {
	svc := NewScheduleService(newTestStorage(t))
	ctx := context.Background()

	csv := "日付,勤務区分,行事名\n2025-04-01,A,入学式\n2025/04/02,B,\n,C,bad\n"
	result, err := svc.ImportCSV(ctx, csv)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if len(result.Accepted) != 2 || result.Rejected != 1 {
		t.Fatalf("result = %d accepted, %d rejected", len(result.Accepted), result.Rejected)
	}

	rec, err := svc.GetSchedule(ctx, "2025-04-02")
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if rec.WorkType != "B" {
		t.Errorf("stored work type = %q", rec.WorkType)
	}
}

func TestImportCSVReimportOverwrites(t *testing.T) {
	svc := NewScheduleService(newTestStorage(t))
	ctx := context.Background()

	if _, err := svc.ImportCSV(ctx, "h\n2025-04-01,A,入学式\n"); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := svc.ImportCSV(ctx, "h\n2025-04-01,休,\n"); err != nil {
		t.Fatalf("second import: %v", err)
	}

	rec, err := svc.GetSchedule(ctx, "2025-04-01")
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if rec.WorkType != "休" || rec.EventName != "" {
		t.Errorf("record = %+v, want second import to win", rec)
	}
}

func TestImportCSVNoValidRows(t *testing.T) {
	svc := NewScheduleService(newTestStorage(t))
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, "日付,勤務区分,行事名\nbad-date,A,x\n")
	if !errors.Is(err, importer.ErrNoValidRows) {
		t.Fatalf("err = %v, want ErrNoValidRows", err)
	}

	// Nothing must be written for a fully rejected batch.
	recs, err := svc.ListSchedules(ctx, "2000-01-01", "2099-12-31")
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("schedules = %d, want 0", len(recs))
	}
}

func TestListSchedulesNormalizesRange(t *testing.T) {
	svc := NewScheduleService(newTestStorage(t))
	ctx := context.Background()

	if _, err := svc.ImportCSV(ctx, "h\n2025-04-10,A,\n"); err != nil {
		t.Fatalf("import: %v", err)
	}

	recs, err := svc.ListSchedules(ctx, "2025/04/01", "2025/04/30")
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("records = %d, want 1", len(recs))
	}

	if _, err := svc.ListSchedules(ctx, "04/01/2025", "2025-04-30"); err == nil {
		t.Error("malformed from date should be rejected")
	}
}
