package reader

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentsFromLines(lines []string) []Fragment {
	frags := make([]Fragment, len(lines))
	for i, line := range lines {
		frags[i] = Fragment{Text: line, Y: float64(i * 20)}
	}
	return frags
}

func TestDeriveOutline_EmbeddedOutlineWins(t *testing.T) {
	doc := tenPageDoc()
	doc.outline = []OutlineRef{
		{Title: "Invocation", Dest: "d1"},
		{Title: "First Chapter", Dest: "d2"},
		{Title: "Broken", Dest: "missing"},
	}
	doc.resolve = map[string]int{"d1": 0, "d2": 3}

	entries := deriveOutline(context.Background(), doc, testLogger(t))
	assert.Equal(t, []OutlineEntry{
		{Title: "Invocation", Page: 0},
		{Title: "First Chapter", Page: 3},
	}, entries, "unresolvable destinations are skipped")
}

func TestDeriveOutline_TOCHeuristic(t *testing.T) {
	doc := &fakeDocument{pages: make([]string, 12)}
	doc.fragments = map[int][]Fragment{
		1: fragmentsFromLines([]string{
			"Introduction 1",
			"Chapter One 5",
			"Chapter Two 12",
			"Some unrelated line",
		}),
	}

	entries := deriveOutline(context.Background(), doc, testLogger(t))
	assert.Equal(t, []OutlineEntry{
		{Title: "Introduction", Page: 0},
		{Title: "Chapter One", Page: 4},
		{Title: "Chapter Two", Page: 11},
	}, entries)
}

func TestDeriveOutline_FallbackPageList(t *testing.T) {
	doc := &fakeDocument{pages: make([]string, 4)}

	entries := deriveOutline(context.Background(), doc, testLogger(t))
	require.Len(t, entries, 4)
	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("Page %d", i+1), entry.Title)
		assert.Equal(t, i, entry.Page)
	}
}

func TestScannedTOC_RequiresThreeLines(t *testing.T) {
	doc := &fakeDocument{pages: make([]string, 20)}
	doc.fragments = map[int][]Fragment{
		0: fragmentsFromLines([]string{"Introduction 1", "Chapter One 5"}),
	}

	entries, err := scannedTOCOutline(context.Background(), doc)
	require.NoError(t, err)
	assert.Nil(t, entries, "two qualifying lines are not enough")
}

func TestTOCEntriesFromLines_Filtering(t *testing.T) {
	pageCount := 50
	lines := []string{
		"Chapter One 5",    // valid
		"12 34",            // purely numeric title, rejected
		"Appendix 400",     // page number beyond the document
		"Epilogue 0",       // page numbers start at 1
		"Notes ..... 49",   // dot leaders get trimmed
		"no trailing page", // no number at all
	}

	entries := tocEntriesFromLines(lines, pageCount)
	assert.Equal(t, []OutlineEntry{
		{Title: "Chapter One", Page: 4},
		{Title: "Notes", Page: 48},
	}, entries)
}

func TestGroupIntoLines_MergesByVerticalPosition(t *testing.T) {
	frags := []Fragment{
		{Text: "Chapter", Y: 100},
		{Text: "One", Y: 100.5},
		{Text: "5", Y: 101},
		{Text: "Chapter Two", Y: 140},
		{Text: "12", Y: 140},
	}

	lines := groupIntoLines(frags)
	assert.Equal(t, []string{"Chapter One 5", "Chapter Two 12"}, lines)
}
