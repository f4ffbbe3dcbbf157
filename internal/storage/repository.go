// Package storage is the SQLite-backed calendar store, entry store and user
// directory. Schedule upserts are keyed on the calendar date with
// overwrite-on-conflict, so the last write for a date always wins.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"teate/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// UpsertSchedules writes schedule records in slice order inside a single
// transaction. Records sharing a date overwrite earlier ones, so the
// later-in-batch row wins, matching the importer's contract.
func (r *SQLiteRepository) UpsertSchedules(ctx context.Context, records []core.ScheduleRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("upsert schedules", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO annual_schedules (date, work_type, event_name, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(date) DO UPDATE SET
			work_type = excluded.work_type,
			event_name = excluded.event_name,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return wrapErr("upsert schedules", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Date, rec.WorkType, rec.EventName); err != nil {
			return wrapErr("upsert schedules", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("upsert schedules", err)
	}

	slog.InfoContext(ctx, "Schedules upserted", "count", len(records))
	return nil
}

// ListSchedules returns schedule records within the inclusive date range,
// ordered by date.
func (r *SQLiteRepository) ListSchedules(ctx context.Context, from, to string) ([]core.ScheduleRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, work_type, event_name
		FROM annual_schedules
		WHERE date >= ? AND date <= ?
		ORDER BY date`, from, to)
	if err != nil {
		return nil, wrapErr("list schedules", err)
	}
	defer rows.Close()

	var out []core.ScheduleRecord
	for rows.Next() {
		var rec core.ScheduleRecord
		if err := rows.Scan(&rec.Date, &rec.WorkType, &rec.EventName); err != nil {
			return nil, wrapErr("list schedules", err)
		}
		out = append(out, rec)
	}
	return out, wrapErr("list schedules", rows.Err())
}

// GetSchedule returns the record for one calendar day.
func (r *SQLiteRepository) GetSchedule(ctx context.Context, date string) (core.ScheduleRecord, error) {
	var rec core.ScheduleRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT date, work_type, event_name
		FROM annual_schedules WHERE date = ?`, date).
		Scan(&rec.Date, &rec.WorkType, &rec.EventName)
	if err != nil {
		return core.ScheduleRecord{}, wrapErr("get schedule", err)
	}
	return rec, nil
}

// CreateAllowance persists one allowance entry and returns its row id.
func (r *SQLiteRepository) CreateAllowance(ctx context.Context, e core.AllowanceEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO allowances
			(date, owner_email, activity_type, amount, destination_type, destination_detail, is_driving, is_accommodation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date, e.OwnerEmail, e.ActivityType, e.Amount.Yen,
		e.DestinationType, e.DestinationDetail, boolToInt(e.IsDriving), boolToInt(e.IsAccommodation))
	if err != nil {
		return 0, wrapErr("create allowance", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapErr("create allowance", err)
	}

	slog.InfoContext(ctx, "Allowance saved",
		"id", id,
		"owner", e.OwnerEmail,
		"date", e.Date,
		"amount_yen", e.Amount.Yen)
	return id, nil
}

// ListAllowances fetches entries in the inclusive date range. With an owner
// email the result is that owner's entries ordered by date ascending; with
// an empty owner it is everyone's entries ordered by owner then date, the
// ordering the all-staff reports rely on.
func (r *SQLiteRepository) ListAllowances(ctx context.Context, ownerEmail, from, to string) ([]core.AllowanceEntry, error) {
	query := `
		SELECT date, owner_email, activity_type, amount, destination_type, destination_detail, is_driving, is_accommodation
		FROM allowances
		WHERE date >= ? AND date <= ?`
	args := []any{from, to}
	if ownerEmail != "" {
		query += ` AND owner_email = ? ORDER BY date, id`
		args = append(args, ownerEmail)
	} else {
		query += ` ORDER BY owner_email, date, id`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list allowances", err)
	}
	defer rows.Close()

	var out []core.AllowanceEntry
	for rows.Next() {
		var e core.AllowanceEntry
		var driving, accommodation int
		if err := rows.Scan(&e.Date, &e.OwnerEmail, &e.ActivityType, &e.Amount.Yen,
			&e.DestinationType, &e.DestinationDetail, &driving, &accommodation); err != nil {
			return nil, wrapErr("list allowances", err)
		}
		e.IsDriving = driving != 0
		e.IsAccommodation = accommodation != 0
		out = append(out, e)
	}
	return out, wrapErr("list allowances", rows.Err())
}

// UpsertProfile stores or updates one user-directory entry.
func (r *SQLiteRepository) UpsertProfile(ctx context.Context, email, displayName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (email, display_name) VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET display_name = excluded.display_name`,
		email, displayName)
	return wrapErr("upsert profile", err)
}

// LookupDisplayName resolves an owner email through the user directory.
// A directory miss is not an error: ok is false and callers fall back to
// the raw email.
func (r *SQLiteRepository) LookupDisplayName(ctx context.Context, email string) (string, bool, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT display_name FROM user_profiles WHERE email = ?`, email).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapErr("lookup display name", err)
	}
	return name, name != "", nil
}

// Profile is one user-directory row.
type Profile struct {
	Email       string
	DisplayName string
}

// ListProfiles returns the directory ordered by display name.
func (r *SQLiteRepository) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email, display_name FROM user_profiles ORDER BY display_name, email`)
	if err != nil {
		return nil, wrapErr("list profiles", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Email, &p.DisplayName); err != nil {
			return nil, wrapErr("list profiles", err)
		}
		out = append(out, p)
	}
	return out, wrapErr("list profiles", rows.Err())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
