package domain

import (
	"strconv"
	"time"
)

// EntrySource identifies how a count entry was produced
type EntrySource string

const (
	// SourceManual is a count typed into the submission form
	SourceManual EntrySource = "manual"
	// SourceAudio is a count accumulated by the audio chant counter
	SourceAudio EntrySource = "audio"
)

// CountEntry represents one devotional Nama submission against a Sankalpa.
// Entries are immutable once created; aggregation treats them read-only.
type CountEntry struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	SankalpaID   string      `json:"sankalpa_id"`
	Count        int         `json:"count"`
	EntryDate    time.Time   `json:"entry_date"` // calendar day, time-of-day is ignored
	PeriodStart  *time.Time  `json:"period_start,omitempty"`
	PeriodEnd    *time.Time  `json:"period_end,omitempty"`
	Source       EntrySource `json:"source"`
	DevoteeCount int         `json:"devotee_count"`
	CreatedAt    time.Time   `json:"created_at"`
}

// EntryDateLayout is the wire format for calendar days
const EntryDateLayout = "2006-01-02"

// CountEntryFromDocument builds a typed CountEntry from a loosely-shaped
// document as stored in the hosted database. Malformed numeric fields are
// coerced rather than rejected: a bad count becomes 0, a bad or missing
// devotee_count becomes 1. An explicit devotee_count of 0 also becomes 1;
// an entry always represents at least the submitting devotee.
func CountEntryFromDocument(doc map[string]interface{}) CountEntry {
	entry := CountEntry{
		ID:           coerceString(doc["id"]),
		UserID:       coerceString(doc["user_id"]),
		SankalpaID:   coerceString(doc["sankalpa_id"]),
		Count:        coerceCount(doc["count"]),
		DevoteeCount: coerceDevoteeCount(doc["devotee_count"]),
		Source:       coerceSource(doc["source"]),
	}

	if day, ok := coerceDay(doc["entry_date"]); ok {
		entry.EntryDate = day
	}
	if day, ok := coerceDay(doc["period_start"]); ok {
		entry.PeriodStart = &day
	}
	if day, ok := coerceDay(doc["period_end"]); ok {
		entry.PeriodEnd = &day
	}
	if ts, ok := doc["created_at"].(time.Time); ok {
		entry.CreatedAt = ts
	}

	return entry
}

// Devotees reports how many devotees this entry stands for, never below 1
func (e CountEntry) Devotees() int {
	if e.DevoteeCount > 0 {
		return e.DevoteeCount
	}
	return 1
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// coerceCount turns a document count field into a non-negative int
func coerceCount(v interface{}) int {
	n, ok := coerceInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// coerceDevoteeCount applies the floor-of-one rule
func coerceDevoteeCount(v interface{}) int {
	n, ok := coerceInt(v)
	if !ok || n <= 0 {
		return 1
	}
	return n
}

func coerceInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func coerceSource(v interface{}) EntrySource {
	if s, ok := v.(string); ok && EntrySource(s) == SourceAudio {
		return SourceAudio
	}
	return SourceManual
}

func coerceDay(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return DayOf(d), true
	case string:
		parsed, err := time.Parse(EntryDateLayout, d)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// DayOf truncates a timestamp to its calendar day in the timestamp's location
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SubmitEntryRequest is the body for POST /api/entries
type SubmitEntryRequest struct {
	SankalpaID   string `json:"sankalpa_id"`
	Count        int    `json:"count"`
	EntryDate    string `json:"entry_date"` // YYYY-MM-DD, defaults to today
	PeriodStart  string `json:"period_start,omitempty"`
	PeriodEnd    string `json:"period_end,omitempty"`
	Source       string `json:"source,omitempty"`
	DevoteeCount int    `json:"devotee_count,omitempty"`
}

// SubmitEntryResponse confirms a recorded submission
type SubmitEntryResponse struct {
	EntryID   string    `json:"entry_id"`
	Count     int       `json:"count"`
	EntryDate string    `json:"entry_date"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
