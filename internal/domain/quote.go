package domain

// Quote is the daily devotional quote served to the sibling display apps.
// It comes from a separate hosted document database and is cached per day.
type Quote struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author,omitempty"`
	Source   string `json:"source,omitempty"`
	Language string `json:"language,omitempty"`
	Day      string `json:"day"` // YYYY-MM-DD the quote is assigned to
}
