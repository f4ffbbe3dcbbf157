package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"no rows", sql.ErrNoRows, KindNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), KindNotFound},
		{"missing table", errors.New("no such table: allowances"), KindNotFound},
		{"readonly", errors.New("attempt to write a readonly database"), KindPermissionDenied},
		{"locked", errors.New("database is locked"), KindTransient},
		{"busy", errors.New("database table is busy"), KindTransient},
		{"other", errors.New("constraint failed"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrapErr(t *testing.T) {
	if wrapErr("op", nil) != nil {
		t.Error("nil error must pass through")
	}

	err := wrapErr("get schedule", sql.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		t.Error("wrapped error must unwrap to the driver error")
	}
	if IsTransient(err) {
		t.Error("not-found must not be transient")
	}

	locked := wrapErr("upsert schedules", errors.New("database is locked"))
	if !IsTransient(locked) {
		t.Errorf("IsTransient = false for %v", locked)
	}
}
