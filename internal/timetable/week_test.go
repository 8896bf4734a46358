package timetable

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "monday maps to itself",
			input:     date(2024, time.June, 3),
			wantStart: date(2024, time.June, 3),
			wantEnd:   date(2024, time.June, 9),
		},
		{
			name:      "wednesday maps to containing week",
			input:     date(2024, time.June, 12),
			wantStart: date(2024, time.June, 10),
			wantEnd:   date(2024, time.June, 16),
		},
		{
			name:      "sunday ends its own week",
			input:     date(2024, time.June, 9),
			wantStart: date(2024, time.June, 3),
			wantEnd:   date(2024, time.June, 9),
		},
		{
			name:      "week spanning month boundary",
			input:     date(2024, time.July, 1),
			wantStart: date(2024, time.July, 1),
			wantEnd:   date(2024, time.July, 7),
		},
		{
			name:      "week spanning year boundary",
			input:     date(2025, time.January, 1),
			wantStart: date(2024, time.December, 30),
			wantEnd:   date(2025, time.January, 5),
		},
		{
			name:      "time of day is dropped",
			input:     time.Date(2024, time.June, 12, 17, 45, 3, 0, time.UTC),
			wantStart: date(2024, time.June, 10),
			wantEnd:   date(2024, time.June, 16),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekFor(tt.input)
			if !week.Start.Equal(tt.wantStart) {
				t.Fatalf("expected start %v, got %v", tt.wantStart, week.Start)
			}
			if !week.End.Equal(tt.wantEnd) {
				t.Fatalf("expected end %v, got %v", tt.wantEnd, week.End)
			}
			if week.Start.Weekday() != time.Monday {
				t.Fatalf("expected start to be Monday, got %v", week.Start.Weekday())
			}
			if !week.End.Equal(week.Start.AddDate(0, 0, 6)) {
				t.Fatalf("expected end = start + 6 days, got %v", week.End)
			}
		})
	}
}

func TestWeekFor_IdempotentWithinWeek(t *testing.T) {
	t.Parallel()

	reference := WeekFor(date(2024, time.June, 10))
	for offset := 0; offset < 7; offset++ {
		day := date(2024, time.June, 10).AddDate(0, 0, offset)
		week := WeekFor(day)
		if !week.Start.Equal(reference.Start) || !week.End.Equal(reference.End) {
			t.Fatalf("expected same window for %v, got %v..%v", day, week.Start, week.End)
		}
	}
}

func TestWeek_Shift(t *testing.T) {
	t.Parallel()

	week := WeekFor(date(2024, time.June, 12))

	next := week.Shift(1)
	if !next.Start.Equal(date(2024, time.June, 17)) {
		t.Fatalf("expected next week start 2024-06-17, got %v", next.Start)
	}

	prev := week.Shift(-1)
	if !prev.Start.Equal(date(2024, time.June, 3)) {
		t.Fatalf("expected previous week start 2024-06-03, got %v", prev.Start)
	}

	if back := next.Shift(-1); !back.Start.Equal(week.Start) {
		t.Fatalf("expected shift to be reversible, got %v", back.Start)
	}
}

func TestWeek_Contains(t *testing.T) {
	t.Parallel()

	week := WeekFor(date(2024, time.June, 10))

	if !week.Contains(date(2024, time.June, 10)) {
		t.Fatal("expected Monday boundary to be inside the window")
	}
	if !week.Contains(date(2024, time.June, 16)) {
		t.Fatal("expected Sunday boundary to be inside the window")
	}
	if !week.Contains(time.Date(2024, time.June, 16, 23, 59, 0, 0, time.UTC)) {
		t.Fatal("expected late Sunday time to be inside the window")
	}
	if week.Contains(date(2024, time.June, 9)) {
		t.Fatal("expected previous Sunday to be outside the window")
	}
	if week.Contains(date(2024, time.June, 17)) {
		t.Fatal("expected next Monday to be outside the window")
	}
}

func TestWeek_Days(t *testing.T) {
	t.Parallel()

	week := WeekFor(date(2024, time.June, 12))
	days := week.Days()
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i, day := range days {
		if !day.Equal(week.Start.AddDate(0, 0, i)) {
			t.Fatalf("expected day %d to be %v, got %v", i, week.Start.AddDate(0, 0, i), day)
		}
	}
}

func TestParseRefDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "slash format", input: "12/06/2024", want: date(2024, time.June, 12)},
		{name: "dash format", input: "12-06-2024", want: date(2024, time.June, 12)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "iso format rejected", input: "2024-06-12", wantErr: true},
		{name: "impossible date", input: "31/02/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRefDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFormatRefDate(t *testing.T) {
	t.Parallel()

	if got := FormatRefDate(date(2024, time.June, 3)); got != "03-06-2024" {
		t.Fatalf("expected 03-06-2024, got %q", got)
	}
}
