// Package export renders report rows into spreadsheet tables and defines the
// port the writer adapters implement. Amounts are written as plain integer
// yen strings; the spreadsheet applies its own number formatting.
package export

import (
	"fmt"
	"strconv"

	"teate/internal/report"
)

// Sheet tab titles, matching the workbook the school office uses.
const (
	SheetIndividualMonthly = "手当明細"
	SheetIndividualYearly  = "年間集計"
	SheetAllStaffMonthly   = "全体集計"
	SheetAllStaffYearly    = "年間全体集計"
)

// Table is one fully rendered sheet: a tab title, a header row and the data
// rows below it, already stringified.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

// IndividualMonthlyTable renders an individual monthly statement.
func IndividualMonthlyTable(rows []report.DetailRow) Table {
	t := Table{
		Sheet:  SheetIndividualMonthly,
		Header: []string{"日付", "活動区分", "目的地区分", "目的地", "運転", "宿泊", "金額"},
	}
	for _, r := range rows {
		if r.IsTotal() {
			t.Rows = append(t.Rows, []string{r.Label, "", "", "", "", "", yen(r.Amount.Yen)})
			continue
		}
		t.Rows = append(t.Rows, []string{
			r.Date, r.ActivityType, r.DestinationType, r.DestinationDetail,
			mark(r.IsDriving), mark(r.IsAccommodation), yen(r.Amount.Yen),
		})
	}
	return t
}

// IndividualYearlyTable renders an individual yearly summary, one row per
// calendar month plus the grand total.
func IndividualYearlyTable(rows []report.MonthRow) Table {
	t := Table{
		Sheet:  SheetIndividualYearly,
		Header: []string{"月", "件数", "金額"},
	}
	for _, r := range rows {
		label := r.Label
		if !r.IsTotal() {
			label = fmt.Sprintf("%d月", r.Month)
		}
		t.Rows = append(t.Rows, []string{label, strconv.Itoa(r.Count), yen(r.Amount.Yen)})
	}
	return t
}

// AllStaffMonthlyTable renders the all-staff monthly summary.
func AllStaffMonthlyTable(rows []report.OwnerRow) Table {
	return ownerTable(SheetAllStaffMonthly, rows)
}

// AllStaffYearlyTable renders the all-staff yearly summary.
func AllStaffYearlyTable(rows []report.OwnerRow) Table {
	return ownerTable(SheetAllStaffYearly, rows)
}

func ownerTable(sheet string, rows []report.OwnerRow) Table {
	t := Table{
		Sheet:  sheet,
		Header: []string{"氏名", "件数", "金額"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Name, strconv.Itoa(r.Count), yen(r.Amount.Yen)})
	}
	return t
}

func yen(v int64) string { return strconv.FormatInt(v, 10) }

func mark(b bool) string {
	if b {
		return "○"
	}
	return ""
}
