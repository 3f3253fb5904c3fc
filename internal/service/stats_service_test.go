package service

import (
	"testing"
	"time"

	"namavruksha/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entryOn(date time.Time, count int) domain.CountEntry {
	return domain.CountEntry{Count: count, EntryDate: date, DevoteeCount: 1}
}

func TestComputeStats_EmptyInput(t *testing.T) {
	bucket := ComputeStats(nil, time.Now())
	if bucket != (domain.StatsBucket{}) {
		t.Errorf("expected zero bucket, got %+v", bucket)
	}
}

func TestComputeStats_WeekBoundary(t *testing.T) {
	// Wednesday 2024-06-12: the week runs Monday 06-10 through Sunday 06-16
	now := day(2024, 6, 12)

	entries := []domain.CountEntry{
		entryOn(day(2024, 6, 10), 50), // Monday, in week
		entryOn(day(2024, 6, 9), 30),  // prior Sunday, out of week
	}

	bucket := ComputeStats(entries, now)

	if bucket.ThisWeek != 50 {
		t.Errorf("ThisWeek = %d, want 50", bucket.ThisWeek)
	}
	if bucket.ThisMonth != 80 {
		t.Errorf("ThisMonth = %d, want 80", bucket.ThisMonth)
	}
	if bucket.Overall != 80 {
		t.Errorf("Overall = %d, want 80", bucket.Overall)
	}
}

func TestComputeStats_SundayBelongsToCurrentWeek(t *testing.T) {
	// When now is a Sunday, the week started six days earlier
	now := day(2024, 6, 16)

	entries := []domain.CountEntry{
		entryOn(day(2024, 6, 10), 10), // Monday of the same week
		entryOn(day(2024, 6, 16), 5),  // today
		entryOn(day(2024, 6, 17), 7),  // next Monday, out
	}

	bucket := ComputeStats(entries, now)

	if bucket.ThisWeek != 15 {
		t.Errorf("ThisWeek = %d, want 15", bucket.ThisWeek)
	}
	if bucket.Today != 5 {
		t.Errorf("Today = %d, want 5", bucket.Today)
	}
}

func TestComputeStats_BucketNesting(t *testing.T) {
	// Entries scattered across windows; each narrower bucket must be a
	// subset sum of the wider ones.
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

	entries := []domain.CountEntry{
		entryOn(day(2024, 6, 12), 11),  // today
		entryOn(day(2024, 6, 14), 13),  // this week
		entryOn(day(2024, 6, 1), 17),   // this month
		entryOn(day(2024, 1, 5), 19),   // this year
		entryOn(day(2023, 12, 31), 23), // previous year
		entryOn(day(2019, 2, 2), 29),   // overall only
	}

	b := ComputeStats(entries, now)

	if b.Today != 11 {
		t.Errorf("Today = %d, want 11", b.Today)
	}
	if b.ThisWeek != 24 {
		t.Errorf("ThisWeek = %d, want 24", b.ThisWeek)
	}
	if b.ThisMonth != 41 {
		t.Errorf("ThisMonth = %d, want 41", b.ThisMonth)
	}
	if b.ThisYear != 60 {
		t.Errorf("ThisYear = %d, want 60", b.ThisYear)
	}
	if b.PreviousYear != 23 {
		t.Errorf("PreviousYear = %d, want 23", b.PreviousYear)
	}
	if b.Overall != 112 {
		t.Errorf("Overall = %d, want 112", b.Overall)
	}

	// Subset-sum consistency
	if b.Today > b.ThisWeek || b.ThisWeek > b.ThisMonth || b.ThisMonth > b.ThisYear || b.ThisYear > b.Overall {
		t.Errorf("bucket nesting violated: %+v", b)
	}
}

func TestComputeStats_YearBoundaryWeek(t *testing.T) {
	// Wednesday 2025-01-01: the week began Monday 2024-12-30, so entries
	// from the tail of the old year count toward this week but not this year.
	now := day(2025, 1, 1)

	entries := []domain.CountEntry{
		entryOn(day(2024, 12, 30), 40),
		entryOn(day(2025, 1, 1), 10),
	}

	b := ComputeStats(entries, now)

	if b.ThisWeek != 50 {
		t.Errorf("ThisWeek = %d, want 50", b.ThisWeek)
	}
	if b.ThisYear != 10 {
		t.Errorf("ThisYear = %d, want 10", b.ThisYear)
	}
	if b.PreviousYear != 40 {
		t.Errorf("PreviousYear = %d, want 40", b.PreviousYear)
	}
}

func TestComputeStats_IgnoresTimeZoneOfNow(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 6, 12, 1, 15, 0, 0, kolkata)

	entries := []domain.CountEntry{entryOn(day(2024, 6, 12), 7)}

	if got := ComputeStats(entries, now).Today; got != 7 {
		t.Errorf("Today = %d, want 7", got)
	}
}

func TestSumByDateRange(t *testing.T) {
	entries := []domain.CountEntry{
		entryOn(day(2024, 6, 1), 10),
		entryOn(day(2024, 6, 15), 20),
		entryOn(day(2024, 6, 30), 30),
		entryOn(day(2024, 7, 1), 40),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{name: "full month", start: day(2024, 6, 1), end: day(2024, 6, 30), want: 60},
		{name: "inclusive bounds", start: day(2024, 6, 15), end: day(2024, 6, 15), want: 20},
		{name: "spans month edge", start: day(2024, 6, 30), end: day(2024, 7, 1), want: 70},
		{name: "no overlap", start: day(2023, 1, 1), end: day(2023, 12, 31), want: 0},
		{name: "inverted range returns zero", start: day(2024, 6, 30), end: day(2024, 6, 1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SumByDateRange(entries, tt.start, tt.end); got != tt.want {
				t.Errorf("SumByDateRange = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDevoteeAdjustedTotal(t *testing.T) {
	entries := []domain.CountEntry{
		{Count: 108, DevoteeCount: 25},
		{Count: 54, DevoteeCount: 0},  // unknown, counts as 1
		{Count: 11, DevoteeCount: -4}, // malformed, counts as 1
		{Count: 0},                    // zero count still one devotee
	}

	if got := DevoteeAdjustedTotal(entries); got != 28 {
		t.Errorf("DevoteeAdjustedTotal = %d, want 28", got)
	}

	if got := DevoteeAdjustedTotal(nil); got != 0 {
		t.Errorf("DevoteeAdjustedTotal(nil) = %d, want 0", got)
	}
}
