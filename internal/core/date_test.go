package core

import "testing"

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-04-01", "2025-04-01", true},
		{"2025/04/01", "2025-04-01", true},
		{"2025-12-31", "2025-12-31", true},
		{"04/01/2025", "", false}, // month-first ordering is rejected
		{"2025-4-1", "", false},
		{"2025-04", "", false},
		{"2025-04-31", "", false}, // not a real calendar day
		{"2025-13-01", "", false},
		{"abcd-ef-gh", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizeDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("NormalizeDate(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		} else if err == nil {
			t.Fatalf("NormalizeDate(%q) expected error, got %q", tc.in, got)
		}
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	inputs := []string{"2025-04-01", "2025/04/01", "1999-01-09", "2030/11/30"}
	for _, in := range inputs {
		once, err := NormalizeDate(in)
		if err != nil {
			t.Fatalf("first pass %q: %v", in, err)
		}
		twice, err := NormalizeDate(once)
		if err != nil {
			t.Fatalf("second pass %q: %v", once, err)
		}
		if once != twice {
			t.Fatalf("normalization not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestNormalizeDateShape(t *testing.T) {
	accepted := []string{"2025-04-01", "2025/04/01", "2024/02/29"}
	for _, in := range accepted {
		got, err := NormalizeDate(in)
		if err != nil {
			t.Fatalf("NormalizeDate(%q): %v", in, err)
		}
		if len(got) != 10 || got[4] != '-' || got[7] != '-' {
			t.Fatalf("NormalizeDate(%q) = %q, not YYYY-MM-DD shaped", in, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-04-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year != 2025 || d.Month != 4 || d.Day != 1 {
		t.Fatalf("ParseDate = %+v", d)
	}
	if _, err := ParseDate("2023-02-29"); err == nil {
		t.Fatal("expected error for non-leap Feb 29")
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2025, 4)
	if from != "2025-04-01" || to != "2025-04-30" {
		t.Fatalf("MonthRange(2025, 4) = %q, %q", from, to)
	}
	from, to = MonthRange(2024, 2)
	if from != "2024-02-01" || to != "2024-02-29" {
		t.Fatalf("MonthRange(2024, 2) = %q, %q", from, to)
	}
}

func TestYearRange(t *testing.T) {
	from, to := YearRange(2025)
	if from != "2025-01-01" || to != "2025-12-31" {
		t.Fatalf("YearRange(2025) = %q, %q", from, to)
	}
}
