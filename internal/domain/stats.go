package domain

import "time"

// StatsBucket holds date-bucketed Nama totals for one devotee or Sankalpa,
// evaluated relative to a caller-supplied "now". Derived data, never stored.
type StatsBucket struct {
	Today        int `json:"today"`
	ThisWeek     int `json:"this_week"` // Monday through Sunday containing now
	ThisMonth    int `json:"this_month"`
	ThisYear     int `json:"this_year"`
	PreviousYear int `json:"previous_year"`
	Overall      int `json:"overall"`
}

// UserStatsResponse is the payload for GET /api/me/stats
type UserStatsResponse struct {
	UserID     string      `json:"user_id"`
	Buckets    StatsBucket `json:"buckets"`
	EntryCount int         `json:"entry_count"`
	ComputedAt time.Time   `json:"computed_at"`
}

// SankalpaStatsResponse is the payload for GET /api/sankalpas/{id}/stats
type SankalpaStatsResponse struct {
	SankalpaID   string      `json:"sankalpa_id"`
	SankalpaName string      `json:"sankalpa_name"`
	Buckets      StatsBucket `json:"buckets"`
	Participants int         `json:"participants"` // devotee-adjusted
	Target       int64       `json:"target,omitempty"`
	ComputedAt   time.Time   `json:"computed_at"`
}

// RangeReportResponse is the payload for GET /api/reports/range
type RangeReportResponse struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Total        int    `json:"total"`
	Participants int    `json:"participants"`
	EntryCount   int    `json:"entry_count"`
}

// CommunityReportRow summarises one Sankalpa inside the community report
type CommunityReportRow struct {
	SankalpaID   string `json:"sankalpa_id"`
	SankalpaName string `json:"sankalpa_name"`
	Overall      int    `json:"overall"`
	ThisMonth    int    `json:"this_month"`
	Participants int    `json:"participants"`
}

// CommunityReportResponse is the payload for GET /api/reports/community
type CommunityReportResponse struct {
	Sankalpas  []CommunityReportRow `json:"sankalpas"`
	Total      int                  `json:"total"`
	ComputedAt time.Time            `json:"computed_at"`
}
