package reader

import (
	"context"
	"fmt"
)

// Fragment is one positioned piece of extracted page text. Y is the
// vertical position on the page; fragments sharing a Y value (within a
// small tolerance) belong to the same visual line.
type Fragment struct {
	Text string
	Y    float64
}

// OutlineRef is an unresolved entry from a document's embedded outline.
// Dest is an opaque destination handle understood only by the parser
// that produced it.
type OutlineRef struct {
	Title string
	Dest  interface{}
}

// OutlineEntry is a resolved table-of-contents entry pointing at a
// zero-based page index.
type OutlineEntry struct {
	Title string `json:"title"`
	Page  int    `json:"page"`
}

// Document is a parsed, paginated document. Implementations wrap a
// rendering library; the session layer only needs page counts, text and
// outline metadata.
type Document interface {
	PageCount() int
	// PageText returns the full extracted text of a zero-based page.
	PageText(ctx context.Context, page int) (string, error)
	// PageFragments returns positioned text fragments for a page, used
	// by the table-of-contents heuristic.
	PageFragments(ctx context.Context, page int) ([]Fragment, error)
	// Outline returns the embedded outline refs, or nil when the
	// document carries none.
	Outline() []OutlineRef
	// ResolvePage maps an outline ref's destination to a zero-based
	// page index. Resolution may consult document-wide state, so calls
	// are made sequentially.
	ResolvePage(ctx context.Context, ref OutlineRef) (int, error)
	// Close releases the in-memory buffers backing the document.
	Close()
}

// DocumentParser turns raw bytes into a Document
type DocumentParser interface {
	Load(data []byte) (Document, error)
}

// FetchError means the document bytes could not be retrieved from the
// blob store. It is terminal for the session.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching document %q: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the fetched bytes could not be parsed into pages. It
// is terminal for the session.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing document %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
