package domain

import "time"

// Sankalpa is a named community devotional campaign that count entries
// are logged against.
type Sankalpa struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Deity       string     `json:"deity,omitempty"`
	Target      int64      `json:"target,omitempty"` // total Nama goal, 0 = open-ended
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Active      bool       `json:"active"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsOpenOn reports whether the campaign accepts entries on the given day
func (s Sankalpa) IsOpenOn(day time.Time) bool {
	if !s.Active {
		return false
	}
	if s.StartDate != nil && DayOf(day).Before(DayOf(*s.StartDate)) {
		return false
	}
	if s.EndDate != nil && DayOf(day).After(DayOf(*s.EndDate)) {
		return false
	}
	return true
}

// CreateSankalpaRequest is the body for POST /api/admin/sankalpas
type CreateSankalpaRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Deity       string `json:"deity,omitempty"`
	Target      int64  `json:"target,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// UpdateSankalpaRequest is the body for PUT /api/admin/sankalpas/{id}
type UpdateSankalpaRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Target      *int64  `json:"target,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}
