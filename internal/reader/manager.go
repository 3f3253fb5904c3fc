package reader

import (
	"context"
	"errors"
	"sync"

	"namavruksha/internal/service"
	"namavruksha/pkg/logger"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id is unknown or the
// session belongs to another devotee.
var ErrSessionNotFound = errors.New("reading session not found")

// Manager opens documents into reading sessions and tracks the live
// ones. Sessions live in memory only; their durable subset goes through
// the progress store.
type Manager struct {
	blobs    service.BlobStore
	parser   DocumentParser
	progress ProgressStore
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager
func NewManager(blobs service.BlobStore, parser DocumentParser, progress ProgressStore, log *logger.Logger) *Manager {
	return &Manager{
		blobs:    blobs,
		parser:   parser,
		progress: progress,
		log:      log.Named("reader"),
	}
}

// Open fetches the document at storagePath, parses it, seeds the
// devotee's saved progress, and registers a ready session. Fetch and
// parse failures are terminal and typed so callers can tell them apart.
func (m *Manager) Open(ctx context.Context, userID, documentID, storagePath string) (*Session, error) {
	data, err := m.blobs.Fetch(ctx, storagePath)
	if err != nil {
		m.log.WithError(err).WithField("document_id", documentID).Error("Document fetch failed")
		return nil, &FetchError{Path: storagePath, Err: err}
	}

	doc, err := m.parser.Load(data)
	if err != nil {
		m.log.WithError(err).WithField("document_id", documentID).Error("Document parse failed")
		return nil, &ParseError{Path: storagePath, Err: err}
	}

	saved, err := m.progress.Load(ctx, userID, documentID)
	if err != nil {
		// Missing or unreadable progress must never block opening the
		// document; the session just starts from page zero.
		m.log.WithError(err).WithField("document_id", documentID).Warn("Could not load reading progress")
		saved = nil
	}

	session := newSession(uuid.NewString(), userID, documentID, doc, saved, m.progress, m.log)

	m.mu.Lock()
	if m.sessions == nil {
		m.sessions = make(map[string]*Session)
	}
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.WithFields(map[string]interface{}{
		"session_id":  session.ID,
		"document_id": documentID,
		"pages":       doc.PageCount(),
	}).Info("Reading session opened")
	return session, nil
}

// Get returns the live session with the given id, scoped to its owner
func (m *Manager) Get(sessionID, userID string) (*Session, error) {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close discards a session and releases its document buffer
func (m *Manager) Close(sessionID, userID string) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if ok && session.UserID == userID {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok || session.UserID != userID {
		return ErrSessionNotFound
	}
	session.Close()
	m.log.WithField("session_id", sessionID).Info("Reading session closed")
	return nil
}
