package domain

import (
	"testing"
	"time"
)

func TestCountEntryFromDocument_CountCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want int
	}{
		{name: "plain int", raw: 108, want: 108},
		{name: "json number", raw: float64(1008), want: 1008},
		{name: "numeric string", raw: "54", want: 54},
		{name: "missing", raw: nil, want: 0},
		{name: "garbage string", raw: "many", want: 0},
		{name: "negative", raw: -5, want: 0},
		{name: "boolean", raw: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CountEntryFromDocument(map[string]interface{}{"count": tt.raw})
			if entry.Count != tt.want {
				t.Errorf("Count = %d, want %d", entry.Count, tt.want)
			}
		})
	}
}

func TestCountEntryFromDocument_DevoteeCountFloor(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want int
	}{
		{name: "explicit positive", raw: 12, want: 12},
		{name: "missing defaults to one", raw: nil, want: 1},
		{name: "explicit zero means unknown", raw: 0, want: 1},
		{name: "negative", raw: -3, want: 1},
		{name: "garbage", raw: "family", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CountEntryFromDocument(map[string]interface{}{"devotee_count": tt.raw})
			if entry.Devotees() != tt.want {
				t.Errorf("Devotees() = %d, want %d", entry.Devotees(), tt.want)
			}
		})
	}
}

func TestCountEntryFromDocument_Dates(t *testing.T) {
	doc := map[string]interface{}{
		"entry_date":   "2024-06-12",
		"period_start": "2024-06-01",
		"period_end":   "2024-06-12",
	}

	entry := CountEntryFromDocument(doc)

	want := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	if !entry.EntryDate.Equal(want) {
		t.Errorf("EntryDate = %v, want %v", entry.EntryDate, want)
	}
	if entry.PeriodStart == nil || entry.PeriodEnd == nil {
		t.Fatal("period bounds not populated")
	}
	if entry.PeriodStart.After(*entry.PeriodEnd) {
		t.Error("period start after period end")
	}
}

func TestCountEntryFromDocument_MalformedDateIgnored(t *testing.T) {
	entry := CountEntryFromDocument(map[string]interface{}{"entry_date": "12/06/2024"})
	if !entry.EntryDate.IsZero() {
		t.Errorf("EntryDate = %v, want zero time", entry.EntryDate)
	}
}

func TestCountEntryFromDocument_Source(t *testing.T) {
	if got := CountEntryFromDocument(map[string]interface{}{"source": "audio"}).Source; got != SourceAudio {
		t.Errorf("Source = %q, want audio", got)
	}
	// Anything unrecognised degrades to manual
	if got := CountEntryFromDocument(map[string]interface{}{"source": "telepathy"}).Source; got != SourceManual {
		t.Errorf("Source = %q, want manual", got)
	}
	if got := CountEntryFromDocument(map[string]interface{}{}).Source; got != SourceManual {
		t.Errorf("Source = %q, want manual", got)
	}
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleModerator, false},
		{RoleModerator, RoleUser, true},
		{RoleModerator, RoleAdmin, false},
		{RoleAdmin, RoleModerator, true},
		{RoleAdmin, RoleAdmin, true},
	}

	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.required); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestSankalpa_IsOpenOn(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	s := Sankalpa{Active: true, StartDate: &start, EndDate: &end}

	if !s.IsOpenOn(time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)) {
		t.Error("expected open mid-window")
	}
	if s.IsOpenOn(time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)) {
		t.Error("expected closed before start")
	}
	if s.IsOpenOn(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected closed after end")
	}

	s.Active = false
	if s.IsOpenOn(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected closed when inactive")
	}
}
