// Package memory is an in-memory report writer used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"teate/internal/export"
)

type Store struct {
	mu     sync.Mutex
	tables map[string]export.Table
	writes int
}

// Ensure interface conformance
var _ export.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{tables: map[string]export.Table{}}
}

// WriteTable stores the table under its sheet title, replacing any previous
// write to the same tab.
func (s *Store) WriteTable(_ context.Context, t export.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t.Sheet] = t
	s.writes++
	return nil
}

// Table returns the last table written to the named tab.
func (s *Store) Table(sheet string) (export.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[sheet]
	return t, ok
}

// Writes returns the number of writes observed.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
