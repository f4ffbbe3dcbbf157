// Package report builds the tabular allowance reports handed to the
// spreadsheet export. All builders are pure functions over an
// already-fetched, pre-filtered entry slice: date-range and owner filtering
// happen at the fetch boundary, ordering is trusted as delivered.
//
// Every report ends with exactly one synthetic totals row whose amount (and
// count, where present) equals the sum of the rows above it. Reports over an
// empty entry set still return that totals row, zero-valued.
package report

import "teate/internal/core"

// TotalLabel is the label carried by every trailing totals row (合計).
const TotalLabel = "合計"

// YearTotalLabel labels the grand-total row of yearly per-month reports (年間合計).
const YearTotalLabel = "年間合計"

// NameLookup resolves an owner email to a display name. The second return
// reports whether the directory knew the owner; on a miss callers fall back
// to the raw email.
type NameLookup func(email string) (string, bool)

type (
	// DetailRow is one line of an individual monthly statement: either a
	// single entry, or the trailing totals line (Label set, entry fields
	// blank).
	DetailRow struct {
		Date              string
		ActivityType      string
		DestinationType   string
		DestinationDetail string
		IsDriving         bool
		IsAccommodation   bool
		Amount            core.Money
		Label             string // set only on the totals row
	}

	// MonthRow is one line of an individual yearly summary: a calendar
	// month with its entry count and amount sum, or the grand total.
	MonthRow struct {
		Month  int // 1-12; 0 on the totals row
		Count  int
		Amount core.Money
		Label  string // set only on the totals row
	}

	// OwnerRow is one line of an all-staff summary: one owner's count and
	// amount sum, or the grand total (Email blank, Name set to the label).
	OwnerRow struct {
		Name   string
		Email  string
		Count  int
		Amount core.Money
	}
)

// IsTotal reports whether the row is the synthetic trailing totals row.
func (r DetailRow) IsTotal() bool { return r.Label != "" }

// IsTotal reports whether the row is the synthetic trailing totals row.
func (r MonthRow) IsTotal() bool { return r.Label != "" }

// IsTotal reports whether the row is the synthetic trailing totals row.
func (r OwnerRow) IsTotal() bool { return r.Email == "" && r.Name == TotalLabel }

// IndividualMonthly renders one owner's entries for a month: one row per
// entry in input (ascending date) order, then the totals row. Non-monetary
// fields on the totals row stay blank.
func IndividualMonthly(entries []core.AllowanceEntry) []DetailRow {
	rows := make([]DetailRow, 0, len(entries)+1)
	var total int64
	for _, e := range entries {
		rows = append(rows, DetailRow{
			Date:              e.Date,
			ActivityType:      e.ActivityType,
			DestinationType:   e.DestinationType,
			DestinationDetail: e.DestinationDetail,
			IsDriving:         e.IsDriving,
			IsAccommodation:   e.IsAccommodation,
			Amount:            e.Amount,
		})
		total += e.Amount.Yen
	}
	rows = append(rows, DetailRow{Label: TotalLabel, Amount: core.Money{Yen: total}})
	return rows
}

// IndividualYearly renders one owner's year as twelve fixed month rows
// (1-12, zero-filled for months without entries) followed by the grand
// total. Entries with malformed dates are ignored rather than misfiled.
func IndividualYearly(entries []core.AllowanceEntry) []MonthRow {
	var counts [13]int
	var sums [13]int64
	for _, e := range entries {
		m := e.Month()
		if m < 1 || m > 12 {
			continue
		}
		counts[m]++
		sums[m] += e.Amount.Yen
	}

	rows := make([]MonthRow, 0, 13)
	var totalCount int
	var totalYen int64
	for m := 1; m <= 12; m++ {
		rows = append(rows, MonthRow{Month: m, Count: counts[m], Amount: core.Money{Yen: sums[m]}})
		totalCount += counts[m]
		totalYen += sums[m]
	}
	rows = append(rows, MonthRow{Label: YearTotalLabel, Count: totalCount, Amount: core.Money{Yen: totalYen}})
	return rows
}

// AllStaffMonthly renders every owner present in the entry set as one row,
// in first-seen input order, followed by the grand total. Grouping is keyed
// on the owner email, never the display name, so two owners whose directory
// lookups collide are never merged.
func AllStaffMonthly(entries []core.AllowanceEntry, lookup NameLookup) []OwnerRow {
	return byOwner(entries, lookup)
}

// AllStaffYearly is the same owner grouping over a year's entries.
func AllStaffYearly(entries []core.AllowanceEntry, lookup NameLookup) []OwnerRow {
	return byOwner(entries, lookup)
}

func byOwner(entries []core.AllowanceEntry, lookup NameLookup) []OwnerRow {
	type agg struct {
		count int
		yen   int64
	}
	totals := map[string]*agg{}
	var order []string

	for _, e := range entries {
		a, seen := totals[e.OwnerEmail]
		if !seen {
			a = &agg{}
			totals[e.OwnerEmail] = a
			order = append(order, e.OwnerEmail)
		}
		a.count++
		a.yen += e.Amount.Yen
	}

	rows := make([]OwnerRow, 0, len(order)+1)
	var totalCount int
	var totalYen int64
	for _, email := range order {
		a := totals[email]
		name := email
		if lookup != nil {
			if n, ok := lookup(email); ok && n != "" {
				name = n
			}
		}
		rows = append(rows, OwnerRow{Name: name, Email: email, Count: a.count, Amount: core.Money{Yen: a.yen}})
		totalCount += a.count
		totalYen += a.yen
	}
	rows = append(rows, OwnerRow{Name: TotalLabel, Count: totalCount, Amount: core.Money{Yen: totalYen}})
	return rows
}
