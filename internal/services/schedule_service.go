package services

import (
	"context"
	"fmt"
	"log/slog"

	"teate/internal/core"
	"teate/internal/importer"
	"teate/internal/storage"
)

// ScheduleService orchestrates duty-calendar imports across the CSV parser
// and SQLite.
type ScheduleService struct {
	storage *storage.SQLiteRepository
}

func NewScheduleService(storage *storage.SQLiteRepository) *ScheduleService {
	return &ScheduleService{storage: storage}
}

// ImportCSV parses a duty-calendar CSV and upserts the accepted records.
// Rejected rows never block the batch; a batch with no usable rows fails
// with importer.ErrNoValidRows before anything is written.
func (s *ScheduleService) ImportCSV(ctx context.Context, text string) (importer.Result, error) {
	result, err := importer.Parse(text)
	if err != nil {
		return importer.Result{}, err
	}

	if err := s.storage.UpsertSchedules(ctx, result.Accepted); err != nil {
		return importer.Result{}, fmt.Errorf("store schedules: %w", err)
	}

	slog.InfoContext(ctx, "Schedule import complete",
		"accepted", len(result.Accepted),
		"rejected", result.Rejected)
	return result, nil
}

// ListSchedules returns the calendar for an inclusive date range.
func (s *ScheduleService) ListSchedules(ctx context.Context, from, to string) ([]core.ScheduleRecord, error) {
	normFrom, err := core.NormalizeDate(from)
	if err != nil {
		return nil, fmt.Errorf("from date: %w", err)
	}
	normTo, err := core.NormalizeDate(to)
	if err != nil {
		return nil, fmt.Errorf("to date: %w", err)
	}
	return s.storage.ListSchedules(ctx, normFrom, normTo)
}

// GetSchedule returns the record for one calendar day.
func (s *ScheduleService) GetSchedule(ctx context.Context, date string) (core.ScheduleRecord, error) {
	norm, err := core.NormalizeDate(date)
	if err != nil {
		return core.ScheduleRecord{}, err
	}
	return s.storage.GetSchedule(ctx, norm)
}
