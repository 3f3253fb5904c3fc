package domain

import "time"

// Book is a scanned volume in the digital library. The binary content lives
// in the hosted object store; this record only carries metadata and the
// storage path used to fetch the bytes.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Language    string    `json:"language,omitempty"`
	Description string    `json:"description,omitempty"`
	StoragePath string    `json:"storage_path"`
	CoverURL    string    `json:"cover_url,omitempty"`
	PageCount   int       `json:"page_count,omitempty"` // filled in after first parse
	AddedBy     string    `json:"added_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddBookRequest is the body for POST /api/admin/books
type AddBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
	StoragePath string `json:"storage_path"`
	CoverURL    string `json:"cover_url,omitempty"`
}
