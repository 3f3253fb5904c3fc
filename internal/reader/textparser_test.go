package reader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextParser_SplitsPagesOnFormFeed(t *testing.T) {
	parser := NewTextParser()

	doc, err := parser.Load([]byte("first page\fsecond page\fthird page"))
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 3, doc.PageCount())

	text, err := doc.PageText(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "second page", text)
}

func TestTextParser_DropsTrailingEmptyPage(t *testing.T) {
	parser := NewTextParser()

	doc, err := parser.Load([]byte("only page\f"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())
}

func TestTextParser_RejectsEmptyAndBinary(t *testing.T) {
	parser := NewTextParser()

	_, err := parser.Load(nil)
	assert.Error(t, err)

	_, err = parser.Load([]byte{0xff, 0xfe, 0x00, 0x81})
	assert.Error(t, err)
}

func TestTextDocument_Fragments(t *testing.T) {
	parser := NewTextParser()

	doc, err := parser.Load([]byte("Contents\n\nIntroduction 1\nChapter One 5\nChapter Two 12"))
	require.NoError(t, err)

	fragments, err := doc.PageFragments(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, fragments, 4, "blank lines are skipped")
	assert.Equal(t, "Contents", fragments[0].Text)
	assert.Greater(t, fragments[1].Y, fragments[0].Y)
}

func TestTextDocument_TOCHeuristicEndToEnd(t *testing.T) {
	content := "Contents\nIntroduction 1\nChapter One 5\nChapter Two 12" +
		"\fintro text\fpage 3\fpage 4\fchapter one starts\fpage 6\fpage 7" +
		"\fpage 8\fpage 9\fpage 10\fpage 11\fchapter two starts"

	parser := NewTextParser()
	doc, err := parser.Load([]byte(content))
	require.NoError(t, err)
	require.Equal(t, 12, doc.PageCount())

	entries := deriveOutline(context.Background(), doc, testLogger(t))
	assert.Equal(t, []OutlineEntry{
		{Title: "Introduction", Page: 0},
		{Title: "Chapter One", Page: 4},
		{Title: "Chapter Two", Page: 11},
	}, entries)
}
