package services

import (
	"context"
	"log/slog"

	"teate/internal/core"
	"teate/internal/report"
	"teate/internal/storage"
)

// ReportService fetches entries for a period and hands them to the pure
// report builders. Display names come from the user directory with the raw
// email as fallback, so a missing profile never blocks a report.
type ReportService struct {
	storage *storage.SQLiteRepository
}

func NewReportService(storage *storage.SQLiteRepository) *ReportService {
	return &ReportService{storage: storage}
}

// IndividualMonthly builds one owner's statement for a calendar month.
func (s *ReportService) IndividualMonthly(ctx context.Context, ownerEmail string, year, month int) ([]report.DetailRow, error) {
	from, to := core.MonthRange(year, month)
	entries, err := s.storage.ListAllowances(ctx, ownerEmail, from, to)
	if err != nil {
		return nil, err
	}
	return report.IndividualMonthly(entries), nil
}

// IndividualYearly builds one owner's twelve-month summary for a year.
func (s *ReportService) IndividualYearly(ctx context.Context, ownerEmail string, year int) ([]report.MonthRow, error) {
	from, to := core.YearRange(year)
	entries, err := s.storage.ListAllowances(ctx, ownerEmail, from, to)
	if err != nil {
		return nil, err
	}
	return report.IndividualYearly(entries), nil
}

// AllStaffMonthly builds the per-owner summary for a calendar month.
func (s *ReportService) AllStaffMonthly(ctx context.Context, year, month int) ([]report.OwnerRow, error) {
	from, to := core.MonthRange(year, month)
	entries, err := s.storage.ListAllowances(ctx, "", from, to)
	if err != nil {
		return nil, err
	}
	return report.AllStaffMonthly(entries, s.nameLookup(ctx)), nil
}

// AllStaffYearly builds the per-owner summary for a year.
func (s *ReportService) AllStaffYearly(ctx context.Context, year int) ([]report.OwnerRow, error) {
	from, to := core.YearRange(year)
	entries, err := s.storage.ListAllowances(ctx, "", from, to)
	if err != nil {
		return nil, err
	}
	return report.AllStaffYearly(entries, s.nameLookup(ctx)), nil
}

// nameLookup adapts the user directory to the report builders. Lookup
// errors degrade to the email fallback instead of failing the report.
func (s *ReportService) nameLookup(ctx context.Context) report.NameLookup {
	return func(email string) (string, bool) {
		name, ok, err := s.storage.LookupDisplayName(ctx, email)
		if err != nil {
			slog.WarnContext(ctx, "Display name lookup failed, using email",
				"email", email,
				"error", err)
			return "", false
		}
		return name, ok
	}
}
