package core

import "testing"

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Yen: 0}).Validate(); err != nil {
		t.Fatalf("zero yen should be valid, got %v", err)
	}
	if err := (Money{Yen: 3400}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Yen: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestScheduleRecordValidate(t *testing.T) {
	good := ScheduleRecord{Date: "2025-04-01", WorkType: "A", EventName: "入学式"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Event name may be empty.
	if err := (ScheduleRecord{Date: "2025-04-02", WorkType: "B"}).Validate(); err != nil {
		t.Fatalf("empty event name should be valid, got %v", err)
	}

	bads := []ScheduleRecord{
		{Date: "", WorkType: "A"},
		{Date: "2025-04-01", WorkType: "  "},
		{Date: "not-a-date", WorkType: "A"},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAllowanceEntryValidate(t *testing.T) {
	good := AllowanceEntry{
		Date:         "2025-04-01",
		OwnerEmail:   "tanaka@example.jp",
		ActivityType: "A:休日部活(1日)",
		Amount:       Money{Yen: 3400},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []AllowanceEntry{
		{Date: "2025/4/1", OwnerEmail: "a@b", ActivityType: "A", Amount: Money{Yen: 1}},
		{Date: "2025-04-01", OwnerEmail: "", ActivityType: "A", Amount: Money{Yen: 1}},
		{Date: "2025-04-01", OwnerEmail: "a@b", ActivityType: "", Amount: Money{Yen: 1}},
		{Date: "2025-04-01", OwnerEmail: "a@b", ActivityType: "A", Amount: Money{Yen: -5}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAllowanceEntryMonthYear(t *testing.T) {
	e := AllowanceEntry{Date: "2025-12-24"}
	if e.Month() != 12 || e.Year() != 2025 {
		t.Fatalf("Month/Year = %d/%d", e.Month(), e.Year())
	}
	if (AllowanceEntry{Date: "garbage"}).Month() != 0 {
		t.Fatal("malformed date should yield month 0")
	}
}
