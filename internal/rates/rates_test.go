package rates

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	r, ok := table.Lookup("A")
	if !ok || r.Amount != 3400 || r.Label != "休日部活(1日)" {
		t.Fatalf("Lookup(A) = %+v, %v", r, ok)
	}
	if m, ok := table.AmountFor("H"); !ok || m.Yen != 6000 {
		t.Fatalf("AmountFor(H) = %+v, %v", m, ok)
	}
	if _, ok := table.Lookup("Z"); ok {
		t.Fatal("unknown code should miss")
	}
	if got := len(table.List()); got != 10 {
		t.Fatalf("List() = %d rates, want 10", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.json")
	content := `[{"code":"A","label":"休日部活(1日)","amount":4000},{"code":"X","label":"特別手当","amount":1000}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if m, ok := table.AmountFor("A"); !ok || m.Yen != 4000 {
		t.Fatalf("override not applied: %+v, %v", m, ok)
	}
	if _, ok := table.Lookup("B"); ok {
		t.Fatal("file table should not inherit defaults")
	}
}

func TestLoadFromFileMissingFallsBack(t *testing.T) {
	table, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if _, ok := table.Lookup("A"); !ok {
		t.Fatal("defaults not loaded")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rates.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for malformed rates file")
	}
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for empty rates file")
	}
}

func TestNewSkipsDuplicatesAndEmptyCodes(t *testing.T) {
	table := New([]Rate{
		{Code: "A", Amount: 1},
		{Code: "A", Amount: 2},
		{Code: "", Amount: 3},
	})
	if m, _ := table.AmountFor("A"); m.Yen != 1 {
		t.Fatalf("first rate should win, got %d", m.Yen)
	}
	if len(table.List()) != 1 {
		t.Fatalf("List() = %d, want 1", len(table.List()))
	}
}
