// Package importer parses annual duty-schedule CSV exports into
// date-keyed schedule records.
//
// The input format is fixed: UTF-8 text, comma separated, three columns
// (date, work type, event name), first line always a header. Double quotes
// toggle a literal mode in which commas do not split fields; embedded
// escaped quotes ("") are not part of the format.
package importer

import (
	"errors"
	"log/slog"
	"strings"

	"teate/internal/core"
)

// ErrNoValidRows signals that the input had content but not a single row
// survived validation. Callers show a "no valid rows" message for this
// instead of reporting a successful zero-record import.
var ErrNoValidRows = errors.New("no valid rows found")

// Result is the outcome of parsing one CSV batch.
type Result struct {
	Accepted []core.ScheduleRecord
	Rejected int
}

// Parse converts raw CSV text into schedule records.
//
// Malformed rows (bad date, empty work type) are dropped and counted, never
// fatal to the batch. The header line is dropped unconditionally. Rows are
// not deduplicated by date here: the store's upsert-by-date makes the
// later-in-file row win, matching a plain sequential upsert.
//
// Returns ErrNoValidRows when non-empty input yields zero accepted records.
func Parse(text string) (Result, error) {
	var res Result

	lines := splitLines(text)
	if len(lines) <= 1 {
		// Empty, or header only.
		return res, ErrNoValidRows
	}

	for _, line := range lines[1:] {
		rec, ok := parseLine(line)
		if !ok {
			res.Rejected++
			continue
		}
		res.Accepted = append(res.Accepted, rec)
	}

	if len(res.Accepted) == 0 {
		return res, ErrNoValidRows
	}
	return res, nil
}

func parseLine(line string) (core.ScheduleRecord, bool) {
	fields := splitFields(line)

	date := fieldAt(fields, 0)
	workType := fieldAt(fields, 1)
	eventName := fieldAt(fields, 2)

	normalized, err := core.NormalizeDate(date)
	if err != nil {
		slog.Warn("Schedule row dropped: invalid date", "date", date)
		return core.ScheduleRecord{}, false
	}
	if workType == "" {
		slog.Warn("Schedule row dropped: empty work type", "date", normalized)
		return core.ScheduleRecord{}, false
	}

	return core.ScheduleRecord{
		Date:      normalized,
		WorkType:  workType,
		EventName: eventName,
	}, true
}

// splitFields splits a CSV line on commas, treating commas inside double
// quotes as literal. Quotes themselves never reach the output: they flip the
// in-quotes state, and any stragglers on field boundaries are trimmed.
func splitFields(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	fields = append(fields, cleanField(current.String()))
	return fields
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

func fieldAt(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
