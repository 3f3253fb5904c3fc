package reader

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"namavruksha/pkg/logger"
)

// State is the lifecycle phase of a reading session
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
	StateClosed  State = "closed"
)

const (
	// MinZoom and MaxZoom bound the allowed zoom scale
	MinZoom = 0.2
	MaxZoom = 3.0
	// searchBatchSize is how many page text extractions run
	// concurrently per wave during a search.
	searchBatchSize = 5
)

// ErrSessionNotReady is returned by navigation operations once a
// session has been closed or has failed.
var ErrSessionNotReady = errors.New("reading session is not ready")

// Session holds the navigable state of one open document for one
// devotee. All mutating operations are serialized by the session mutex;
// the last-viewed page and bookmark set are written through to the
// progress store on every change, everything else is discarded when the
// session closes.
type Session struct {
	ID         string
	UserID     string
	DocumentID string

	mu          sync.Mutex
	state       State
	doc         Document
	pageCount   int
	currentPage int
	zoom        float64
	bookmarks   []int
	outline     []OutlineEntry

	query      string
	matches    []int
	matchIndex int

	// generation invalidates in-flight searches: every navigation and
	// every new search bumps it, and a finished search applies its
	// results only if the generation it captured is still current.
	generation uint64

	progress ProgressStore
	log      *logger.Logger
}

// Snapshot is a read-only view of session state for API responses
type Snapshot struct {
	ID          string  `json:"id"`
	DocumentID  string  `json:"document_id"`
	State       State   `json:"state"`
	PageCount   int     `json:"page_count"`
	CurrentPage int     `json:"current_page"`
	Zoom        float64 `json:"zoom"`
	Bookmarks   []int   `json:"bookmarks"`
	Query       string  `json:"query,omitempty"`
	Matches     []int   `json:"matches,omitempty"`
	MatchIndex  int     `json:"match_index"`
}

// newSession seeds a ready session from a parsed document and any
// previously persisted progress
func newSession(id, userID, documentID string, doc Document, saved *Progress, progress ProgressStore, log *logger.Logger) *Session {
	s := &Session{
		ID:          id,
		UserID:      userID,
		DocumentID:  documentID,
		state:       StateReady,
		doc:         doc,
		pageCount:   doc.PageCount(),
		currentPage: 0,
		zoom:        1.0,
		matchIndex:  -1,
		progress:    progress,
		log:         log,
	}
	if saved != nil {
		if saved.LastPage >= 0 && saved.LastPage < s.pageCount {
			s.currentPage = saved.LastPage
		}
		s.bookmarks = append(s.bookmarks, saved.Bookmarks...)
		sort.Ints(s.bookmarks)
	}
	return s
}

// Snapshot returns the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmarks := make([]int, len(s.bookmarks))
	copy(bookmarks, s.bookmarks)
	matches := make([]int, len(s.matches))
	copy(matches, s.matches)

	return Snapshot{
		ID:          s.ID,
		DocumentID:  s.DocumentID,
		State:       s.state,
		PageCount:   s.pageCount,
		CurrentPage: s.currentPage,
		Zoom:        s.zoom,
		Bookmarks:   bookmarks,
		Query:       s.query,
		Matches:     matches,
		MatchIndex:  s.matchIndex,
	}
}

// JumpToPage moves to a zero-based page index. Out-of-range indices are
// ignored. The new page is persisted immediately.
func (s *Session) JumpToPage(ctx context.Context, page int) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrSessionNotReady
	}
	if page < 0 || page >= s.pageCount {
		s.mu.Unlock()
		return nil
	}
	s.currentPage = page
	s.generation++
	snapshot := s.progressLocked()
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// ToggleBookmark adds the current page to the bookmark set, or removes
// it when already present. The set stays sorted and is persisted
// immediately.
func (s *Session) ToggleBookmark(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrSessionNotReady
	}

	page := s.currentPage
	at := sort.SearchInts(s.bookmarks, page)
	if at < len(s.bookmarks) && s.bookmarks[at] == page {
		s.bookmarks = append(s.bookmarks[:at], s.bookmarks[at+1:]...)
	} else {
		s.bookmarks = append(s.bookmarks, page)
		sort.Ints(s.bookmarks)
	}
	snapshot := s.progressLocked()
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// SetZoom clamps the scale into the allowed range and applies it. Zoom
// is session-local and intentionally not persisted.
func (s *Session) SetZoom(scale float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return 0, ErrSessionNotReady
	}
	if scale < MinZoom {
		scale = MinZoom
	}
	if scale > MaxZoom {
		scale = MaxZoom
	}
	s.zoom = scale
	return s.zoom, nil
}

// Outline returns the document's table of contents, deriving and
// caching it on first use. Derivation is best effort and never fails.
func (s *Session) Outline(ctx context.Context) ([]OutlineEntry, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return nil, ErrSessionNotReady
	}
	if s.outline != nil {
		cached := s.outline
		s.mu.Unlock()
		return cached, nil
	}
	doc := s.doc
	s.mu.Unlock()

	entries := deriveOutline(ctx, doc, s.log)

	s.mu.Lock()
	if s.state == StateReady && s.outline == nil {
		s.outline = entries
	}
	s.mu.Unlock()
	return entries, nil
}

// Search runs a case-insensitive substring search across every page.
// Page texts are extracted in waves of searchBatchSize concurrent
// extractions; pages whose extraction fails are skipped. On completion
// the session jumps to the first match, unless a navigation or newer
// search happened while this one was in flight.
func (s *Session) Search(ctx context.Context, query string) ([]int, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return nil, ErrSessionNotReady
	}

	query = strings.TrimSpace(query)
	s.generation++
	gen := s.generation
	s.query = query
	s.matches = nil
	s.matchIndex = -1

	if query == "" {
		s.mu.Unlock()
		return nil, nil
	}

	doc := s.doc
	pageCount := s.pageCount
	s.mu.Unlock()

	matches := searchPages(ctx, doc, pageCount, query, s.log)

	s.mu.Lock()
	if s.state != StateReady || s.generation != gen {
		// A navigation or newer search superseded this one; report the
		// matches but leave session state alone.
		s.mu.Unlock()
		return matches, nil
	}
	s.matches = matches
	if len(matches) > 0 {
		s.matchIndex = 0
		s.currentPage = matches[0]
		snapshot := s.progressLocked()
		s.mu.Unlock()
		return matches, s.persist(ctx, snapshot)
	}
	s.mu.Unlock()
	return matches, nil
}

// NextMatch advances circularly through the current match list and
// jumps to that page. No-op when there are no matches.
func (s *Session) NextMatch(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return -1, ErrSessionNotReady
	}
	if len(s.matches) == 0 {
		s.mu.Unlock()
		return -1, nil
	}
	s.matchIndex = (s.matchIndex + 1) % len(s.matches)
	s.currentPage = s.matches[s.matchIndex]
	s.generation++
	page := s.currentPage
	snapshot := s.progressLocked()
	s.mu.Unlock()

	return page, s.persist(ctx, snapshot)
}

// Close releases the parsed document. The session is unusable
// afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	if s.doc != nil {
		s.doc.Close()
		s.doc = nil
	}
}

// progressLocked snapshots the persisted subset of session state. The
// caller must hold the session mutex.
func (s *Session) progressLocked() *Progress {
	bookmarks := make([]int, len(s.bookmarks))
	copy(bookmarks, s.bookmarks)
	return &Progress{LastPage: s.currentPage, Bookmarks: bookmarks}
}

func (s *Session) persist(ctx context.Context, progress *Progress) error {
	if err := s.progress.Save(ctx, s.UserID, s.DocumentID, progress); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"user_id":     s.UserID,
			"document_id": s.DocumentID,
		}).Error("Failed to persist reading progress")
		return err
	}
	return nil
}

// searchPages extracts text page by page in fixed-width waves and
// returns the ascending list of pages containing the query
func searchPages(ctx context.Context, doc Document, pageCount int, query string, log *logger.Logger) []int {
	needle := strings.ToLower(query)
	hits := make([]bool, pageCount)

	for start := 0; start < pageCount; start += searchBatchSize {
		end := start + searchBatchSize
		if end > pageCount {
			end = pageCount
		}

		var wg sync.WaitGroup
		for page := start; page < end; page++ {
			wg.Add(1)
			go func(page int) {
				defer wg.Done()
				text, err := doc.PageText(ctx, page)
				if err != nil {
					// Extraction failures exclude the page from the
					// results but never abort the search.
					log.WithError(err).WithField("page", page).Debug("Skipping page in search")
					return
				}
				if strings.Contains(strings.ToLower(text), needle) {
					hits[page] = true
				}
			}(page)
		}
		wg.Wait()
	}

	var matches []int
	for page, hit := range hits {
		if hit {
			matches = append(matches, page)
		}
	}
	return matches
}
