package memory

import (
	"context"
	"testing"

	"teate/internal/export"
)

func TestWriteTableReplacesTab(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := export.Table{Sheet: "手当明細", Header: []string{"日付"}, Rows: [][]string{{"2025-04-01"}, {"2025-04-02"}}}
	if err := s.WriteTable(ctx, first); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	second := export.Table{Sheet: "手当明細", Header: []string{"日付"}, Rows: [][]string{{"2025-05-01"}}}
	if err := s.WriteTable(ctx, second); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	got, ok := s.Table("手当明細")
	if !ok {
		t.Fatal("table not stored")
	}
	if len(got.Rows) != 1 || got.Rows[0][0] != "2025-05-01" {
		t.Errorf("stored rows = %v, want replacement", got.Rows)
	}
	if s.Writes() != 2 {
		t.Errorf("writes = %d, want 2", s.Writes())
	}

	if _, ok := s.Table("missing"); ok {
		t.Error("unknown tab should not be found")
	}
}
