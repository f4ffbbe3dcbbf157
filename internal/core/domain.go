package core

import (
	"errors"
	"strings"
)

type (
	// Money is an exact amount in yen. Allowances are whole-yen figures,
	// so there is no fractional unit to carry.
	Money struct {
		Yen int64
	}

	// ScheduleRecord is one calendar day of the annual duty schedule.
	// Date is the uniqueness key; re-importing a day replaces it.
	ScheduleRecord struct {
		Date      string // YYYY-MM-DD
		WorkType  string // duty category token, e.g. "A", "B", "祝", "休"
		EventName string // optional, e.g. "入学式"
	}

	// AllowanceEntry is a single dated, per-person allowance line.
	// Entries are immutable inputs to the reporter; it never mutates them.
	AllowanceEntry struct {
		Date              string // YYYY-MM-DD
		OwnerEmail        string // stable staff key; display name is resolved separately
		ActivityType      string
		Amount            Money
		DestinationType   string
		DestinationDetail string
		IsDriving         bool
		IsAccommodation   bool
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyWorkType = errors.New("empty work type")
	ErrEmptyOwner    = errors.New("empty owner email")
	ErrEmptyActivity = errors.New("empty activity type")
)

func (m Money) Validate() error {
	if m.Yen < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r ScheduleRecord) Validate() error {
	if _, err := NormalizeDate(r.Date); err != nil {
		return err
	}
	if strings.TrimSpace(r.WorkType) == "" {
		return ErrEmptyWorkType
	}
	return nil
}

func (e AllowanceEntry) Validate() error {
	if _, err := NormalizeDate(e.Date); err != nil {
		return err
	}
	if strings.TrimSpace(e.OwnerEmail) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(e.ActivityType) == "" {
		return ErrEmptyActivity
	}
	return e.Amount.Validate()
}

// Month returns the calendar month (1-12) of the entry date, or 0 when the
// date is malformed.
func (e AllowanceEntry) Month() int {
	d, err := ParseDate(e.Date)
	if err != nil {
		return 0
	}
	return d.Month
}

// Year returns the calendar year of the entry date, or 0 when malformed.
func (e AllowanceEntry) Year() int {
	d, err := ParseDate(e.Date)
	if err != nil {
		return 0
	}
	return d.Year
}
