package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	data map[string][]byte
	err  error
}

func (b *fakeBlobStore) Fetch(ctx context.Context, path string) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	data, ok := b.data[path]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

type fakeParser struct {
	doc Document
	err error
}

func (p *fakeParser) Load(data []byte) (Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.doc, nil
}

func TestManager_OpenSeedsSavedProgress(t *testing.T) {
	doc := tenPageDoc()
	store := newMemProgressStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "dev-1", "book-1", &Progress{LastPage: 6, Bookmarks: []int{1}}))

	mgr := NewManager(
		&fakeBlobStore{data: map[string][]byte{"library/book-1.pdf": []byte("%content%")}},
		&fakeParser{doc: doc},
		store,
		testLogger(t),
	)

	session, err := mgr.Open(ctx, "dev-1", "book-1", "library/book-1.pdf")
	require.NoError(t, err)

	snap := session.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, 6, snap.CurrentPage)
	assert.Equal(t, []int{1}, snap.Bookmarks)

	// The manager hands the same session back by id, scoped to its owner.
	got, err := mgr.Get(session.ID, "dev-1")
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = mgr.Get(session.ID, "someone-else")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_OpenFetchFailure(t *testing.T) {
	mgr := NewManager(
		&fakeBlobStore{err: errors.New("storage unreachable")},
		&fakeParser{doc: tenPageDoc()},
		newMemProgressStore(),
		testLogger(t),
	)

	_, err := mgr.Open(context.Background(), "dev-1", "book-1", "library/book-1.pdf")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "library/book-1.pdf", fetchErr.Path)
}

func TestManager_OpenParseFailure(t *testing.T) {
	mgr := NewManager(
		&fakeBlobStore{data: map[string][]byte{"library/book-1.pdf": []byte("not a document")}},
		&fakeParser{err: errors.New("bad header")},
		newMemProgressStore(),
		testLogger(t),
	)

	_, err := mgr.Open(context.Background(), "dev-1", "book-1", "library/book-1.pdf")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	var fetchErr *FetchError
	assert.False(t, errors.As(err, &fetchErr), "parse failures are not fetch failures")
}

func TestManager_CloseRemovesSession(t *testing.T) {
	doc := tenPageDoc()
	mgr := NewManager(
		&fakeBlobStore{data: map[string][]byte{"p": []byte("x")}},
		&fakeParser{doc: doc},
		newMemProgressStore(),
		testLogger(t),
	)

	session, err := mgr.Open(context.Background(), "dev-1", "book-1", "p")
	require.NoError(t, err)

	require.NoError(t, mgr.Close(session.ID, "dev-1"))
	assert.True(t, doc.closed)

	_, err = mgr.Get(session.ID, "dev-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Close(session.ID, "dev-1"), ErrSessionNotFound)
}
