package reader

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"namavruksha/pkg/logger"
)

const (
	// tocScanPages bounds how deep the table-of-contents heuristic
	// looks into the document.
	tocScanPages = 15
	// tocMinLines is the minimum number of "<title> <page>" lines a
	// page must carry before it is treated as a table of contents.
	tocMinLines = 3
	// lineYTolerance groups fragments into visual lines; fragments
	// whose Y positions differ by at most this much share a line.
	lineYTolerance = 2.0
)

// tocLineRE matches a contents line: some title text ending in a one to
// three digit page number.
var tocLineRE = regexp.MustCompile(`^(.*\S)\s+(\d{1,3})$`)

var numericOnlyRE = regexp.MustCompile(`^[\d\s.]*$`)

// outlineStrategy is one tier of the outline derivation chain. A nil or
// empty result (or an error) hands over to the next tier.
type outlineStrategy func(ctx context.Context, doc Document) ([]OutlineEntry, error)

// deriveOutline builds a table of contents for the document, trying the
// embedded outline first, then the printed-TOC heuristic, and finally a
// flat per-page listing. It never fails; every tier's failure degrades
// silently to the next.
func deriveOutline(ctx context.Context, doc Document, log *logger.Logger) []OutlineEntry {
	strategies := []struct {
		name string
		run  outlineStrategy
	}{
		{"embedded", embeddedOutline},
		{"toc-heuristic", scannedTOCOutline},
	}

	for _, strategy := range strategies {
		entries, err := strategy.run(ctx, doc)
		if err != nil {
			log.WithError(err).WithField("strategy", strategy.name).Debug("Outline strategy failed, trying next")
			continue
		}
		if len(entries) > 0 {
			log.WithFields(map[string]interface{}{
				"strategy": strategy.name,
				"entries":  len(entries),
			}).Debug("Outline derived")
			return entries
		}
	}

	return pageListOutline(doc.PageCount())
}

// embeddedOutline resolves the document's own outline metadata.
// Destinations are resolved one at a time; entries whose destination
// cannot be resolved are skipped.
func embeddedOutline(ctx context.Context, doc Document) ([]OutlineEntry, error) {
	refs := doc.Outline()
	if len(refs) == 0 {
		return nil, nil
	}

	entries := make([]OutlineEntry, 0, len(refs))
	for _, ref := range refs {
		page, err := doc.ResolvePage(ctx, ref)
		if err != nil || page < 0 || page >= doc.PageCount() {
			continue
		}
		entries = append(entries, OutlineEntry{Title: ref.Title, Page: page})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("embedded outline had %d refs, none resolvable", len(refs))
	}
	return entries, nil
}

// scannedTOCOutline looks for a printed table-of-contents page in the
// first tocScanPages pages: one whose text lines read as
// "<title> <page number>" at least tocMinLines times.
func scannedTOCOutline(ctx context.Context, doc Document) ([]OutlineEntry, error) {
	pageCount := doc.PageCount()
	limit := tocScanPages
	if pageCount < limit {
		limit = pageCount
	}

	for page := 0; page < limit; page++ {
		fragments, err := doc.PageFragments(ctx, page)
		if err != nil {
			continue
		}

		entries := tocEntriesFromLines(groupIntoLines(fragments), pageCount)
		if len(entries) >= tocMinLines {
			return entries, nil
		}
	}
	return nil, nil
}

// groupIntoLines reassembles positioned fragments into visual lines,
// top to bottom
func groupIntoLines(fragments []Fragment) []string {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	var lines []string
	var parts []string
	lineY := sorted[0].Y

	flush := func() {
		if len(parts) > 0 {
			lines = append(lines, strings.TrimSpace(strings.Join(parts, " ")))
			parts = parts[:0]
		}
	}

	for _, f := range sorted {
		if math.Abs(f.Y-lineY) > lineYTolerance {
			flush()
			lineY = f.Y
		}
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	flush()
	return lines
}

// tocEntriesFromLines extracts contents entries from a page's lines. A
// line qualifies when it ends in a plausible page number and its title
// part is not itself just numbers.
func tocEntriesFromLines(lines []string, pageCount int) []OutlineEntry {
	var entries []OutlineEntry
	for _, line := range lines {
		m := tocLineRE.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		title := strings.TrimRight(strings.TrimSpace(m[1]), ". ")
		if title == "" || numericOnlyRE.MatchString(title) {
			continue
		}
		number, err := strconv.Atoi(m[2])
		if err != nil || number < 1 || number > pageCount {
			continue
		}
		entries = append(entries, OutlineEntry{Title: title, Page: number - 1})
	}
	return entries
}

// pageListOutline is the last-resort outline: one entry per page
func pageListOutline(pageCount int) []OutlineEntry {
	entries := make([]OutlineEntry, pageCount)
	for i := 0; i < pageCount; i++ {
		entries[i] = OutlineEntry{Title: fmt.Sprintf("Page %d", i+1), Page: i}
	}
	return entries
}
