package domain

import "time"

// Feedback is a message sent by a devotee to the moderators
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitFeedbackRequest is the body for POST /api/feedback
type SubmitFeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
