package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"teate/internal/amqp"
	"teate/internal/core"
	"teate/internal/rates"
	"teate/internal/storage"
)

// ErrUnknownActivity is returned when an entry names an activity code the
// rate table does not carry.
var ErrUnknownActivity = errors.New("unknown activity code")

// DestinationOutside marks an out-of-prefecture destination, which selects
// the higher driving supplement.
const DestinationOutside = "県外"

// EntryInput is a request to record one allowance entry. The amount is never
// supplied by the caller; it is fixed from the rate table at recording time.
type EntryInput struct {
	Date              string
	OwnerEmail        string
	ActivityCode      string
	DestinationType   string
	DestinationDetail string
	IsDriving         bool
	IsAccommodation   bool
}

// AllowanceService records allowance entries and queues report exports.
type AllowanceService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
	rates      *rates.Table
}

func NewAllowanceService(storage *storage.SQLiteRepository, amqpClient *amqp.Client, table *rates.Table) *AllowanceService {
	if table == nil {
		table = rates.Default()
	}
	return &AllowanceService{
		storage:    storage,
		amqpClient: amqpClient,
		rates:      table,
	}
}

// RecordEntry resolves the amount for the activity, persists the entry, and
// queues a refresh of the owner's monthly statement. A failed publish never
// fails the request; the entry is already saved.
func (s *AllowanceService) RecordEntry(ctx context.Context, in EntryInput) (core.AllowanceEntry, error) {
	date, err := core.NormalizeDate(in.Date)
	if err != nil {
		return core.AllowanceEntry{}, err
	}

	rate, ok := s.rates.Lookup(in.ActivityCode)
	if !ok {
		return core.AllowanceEntry{}, fmt.Errorf("%w: %s", ErrUnknownActivity, in.ActivityCode)
	}

	amount := rate.Amount
	if in.IsDriving {
		supplement, err := s.drivingSupplement(in.DestinationType)
		if err != nil {
			return core.AllowanceEntry{}, err
		}
		amount += supplement
	}

	entry := core.AllowanceEntry{
		Date:              date,
		OwnerEmail:        in.OwnerEmail,
		ActivityType:      rate.Label,
		Amount:            core.Money{Yen: amount},
		DestinationType:   in.DestinationType,
		DestinationDetail: in.DestinationDetail,
		IsDriving:         in.IsDriving,
		IsAccommodation:   in.IsAccommodation,
	}
	if err := entry.Validate(); err != nil {
		return core.AllowanceEntry{}, err
	}

	if _, err := s.storage.CreateAllowance(ctx, entry); err != nil {
		return core.AllowanceEntry{}, fmt.Errorf("save allowance: %w", err)
	}

	if parts, err := core.ParseDate(date); err == nil {
		s.publishExport(ctx, amqp.NewExportRequestMessage(
			amqp.KindIndividualMonthly, entry.OwnerEmail, parts.Year, parts.Month))
	}

	return entry, nil
}

// RequestExport queues an export for the worker.
func (s *AllowanceService) RequestExport(ctx context.Context, kind, ownerEmail string, year, month int) error {
	if s.amqpClient == nil {
		return errors.New("export queue not configured")
	}
	return s.amqpClient.PublishExportRequest(ctx,
		amqp.NewExportRequestMessage(kind, ownerEmail, year, month))
}

// Rates returns the active rate table.
func (s *AllowanceService) Rates() []rates.Rate {
	return s.rates.List()
}

func (s *AllowanceService) drivingSupplement(destinationType string) (int64, error) {
	code := "DRV_IN"
	if destinationType == DestinationOutside {
		code = "DRV_OUT"
	}
	rate, ok := s.rates.Lookup(code)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownActivity, code)
	}
	return rate.Amount, nil
}

func (s *AllowanceService) publishExport(ctx context.Context, msg *amqp.ExportRequestMessage) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping export request")
		return
	}
	if err := s.amqpClient.PublishExportRequest(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export request",
			"kind", msg.Kind,
			"owner", msg.OwnerEmail,
			"error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *AllowanceService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close allowance service: %v", errs)
	}

	return nil
}
