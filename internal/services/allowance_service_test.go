package services

import (
	"context"
	"errors"
	"testing"

	"teate/internal/core"
)

func TestRecordEntryFixesAmountFromRateTable(t *testing.T) {
	svc := NewAllowanceService(newTestStorage(t), nil, nil)
	ctx := context.Background()

	entry, err := svc.RecordEntry(ctx, EntryInput{
		Date:         "2025/04/05",
		OwnerEmail:   "tanaka@example.jp",
		ActivityCode: "A",
	})
	if err != nil {
		t.Fatalf("RecordEntry: %v", err)
	}
	if entry.Date != "2025-04-05" {
		t.Errorf("date = %q, want normalized", entry.Date)
	}
	if entry.ActivityType != "休日部活(1日)" {
		t.Errorf("activity = %q", entry.ActivityType)
	}
	if entry.Amount.Yen != 3400 {
		t.Errorf("amount = %d, want 3400", entry.Amount.Yen)
	}
}

func TestRecordEntryDrivingSupplement(t *testing.T) {
	svc := NewAllowanceService(newTestStorage(t), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name            string
		destinationType string
		want            int64
	}{
		{"in prefecture", "県内", 3400 + 7500},
		{"out of prefecture", DestinationOutside, 3400 + 15000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := svc.RecordEntry(ctx, EntryInput{
				Date:            "2025-04-05",
				OwnerEmail:      "tanaka@example.jp",
				ActivityCode:    "A",
				DestinationType: tt.destinationType,
				IsDriving:       true,
			})
			if err != nil {
				t.Fatalf("RecordEntry: %v", err)
			}
			if entry.Amount.Yen != tt.want {
				t.Errorf("amount = %d, want %d", entry.Amount.Yen, tt.want)
			}
		})
	}
}

func TestRecordEntryUnknownActivity(t *testing.T) {
	svc := NewAllowanceService(newTestStorage(t), nil, nil)

	_, err := svc.RecordEntry(context.Background(), EntryInput{
		Date:         "2025-04-05",
		OwnerEmail:   "tanaka@example.jp",
		ActivityCode: "Z",
	})
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("err = %v, want ErrUnknownActivity", err)
	}
}

func TestRecordEntryBadDate(t *testing.T) {
	svc := NewAllowanceService(newTestStorage(t), nil, nil)

	_, err := svc.RecordEntry(context.Background(), EntryInput{
		Date:         "04/05/2025",
		OwnerEmail:   "tanaka@example.jp",
		ActivityCode: "A",
	})
	if !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestRatesListsConfiguredOrder(t *testing.T) {
	svc := NewAllowanceService(newTestStorage(t), nil, nil)

	list := svc.Rates()
	if len(list) != 10 {
		t.Fatalf("rates = %d, want 10", len(list))
	}
	if list[0].Code != "A" || list[len(list)-1].Code != "DRV_IN" {
		t.Errorf("order = %q .. %q", list[0].Code, list[len(list)-1].Code)
	}
}

func TestRequestExportWithoutQueue(t *testing.T) {
	svc := NewAllowanceService(newTestStorage(t), nil, nil)

	err := svc.RequestExport(context.Background(), "individual_monthly", "a@example.jp", 2025, 4)
	if err == nil {
		t.Fatal("expected error when no queue is configured")
	}
}
