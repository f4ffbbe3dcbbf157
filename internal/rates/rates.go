// Package rates holds the activity-code to yen rate table. The table is
// static configuration injected at startup, not computed logic: aggregation
// never consults it, because amounts are fixed on entries when they are
// recorded.
package rates

import (
	"encoding/json"
	"fmt"
	"os"

	"teate/internal/core"
)

// Rate is one allowance item: a short code, its human label, and the amount
// granted per occurrence.
type Rate struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Table is a read-only activity-code lookup.
type Table struct {
	items []Rate
	index map[string]Rate
}

// Default returns the built-in rate table used when no override file is
// configured.
func Default() *Table {
	return New([]Rate{
		{Code: "A", Label: "休日部活(1日)", Amount: 3400},
		{Code: "B", Label: "休日部活(半日)", Amount: 1700},
		{Code: "C", Label: "指定大会", Amount: 3400},
		{Code: "D", Label: "指定外大会", Amount: 2400},
		{Code: "E", Label: "遠征", Amount: 3000},
		{Code: "F", Label: "合宿", Amount: 5000},
		{Code: "G", Label: "引率", Amount: 2400},
		{Code: "H", Label: "宿泊指導", Amount: 6000},
		{Code: "DRV_OUT", Label: "県外マイクロバス運転", Amount: 15000},
		{Code: "DRV_IN", Label: "県内長距離運転", Amount: 7500},
	})
}

// New builds a table from the given rates, preserving their order for
// listing.
func New(items []Rate) *Table {
	index := make(map[string]Rate, len(items))
	kept := make([]Rate, 0, len(items))
	for _, r := range items {
		if r.Code == "" {
			continue
		}
		if _, dup := index[r.Code]; dup {
			continue
		}
		index[r.Code] = r
		kept = append(kept, r)
	}
	return &Table{items: kept, index: index}
}

// LoadFromFile reads a JSON rate file. A missing path falls back to the
// defaults so deployments without an override keep working.
func LoadFromFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read rates file: %w", err)
	}
	var items []Rate
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse rates file: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("rates file %s contains no rates", path)
	}
	return New(items), nil
}

// Lookup returns the rate for an activity code.
func (t *Table) Lookup(code string) (Rate, bool) {
	r, ok := t.index[code]
	return r, ok
}

// AmountFor returns the configured amount for a code as Money.
func (t *Table) AmountFor(code string) (core.Money, bool) {
	r, ok := t.index[code]
	if !ok {
		return core.Money{}, false
	}
	return core.Money{Yen: r.Amount}, true
}

// List returns all rates in their configured order.
func (t *Table) List() []Rate {
	out := make([]Rate, len(t.items))
	copy(out, t.items)
	return out
}
