package reader

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// textLineHeight spaces synthetic fragment positions so line grouping
// behaves the same as with positioned extractions.
const textLineHeight = 14.0

// TextParser parses the library's paginated text format: UTF-8 text
// with form feed (\f) page separators, produced by the ingestion
// pipeline when a book is uploaded. Rendering-capable parsers implement
// the same DocumentParser interface and can be swapped in at wiring
// time.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Load(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("document is not valid paginated text")
	}

	pages := strings.Split(string(data), "\f")
	// A trailing form feed produces an empty final page; drop it.
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	return &textDocument{pages: pages}, nil
}

type textDocument struct {
	pages []string
}

func (d *textDocument) PageCount() int { return len(d.pages) }

func (d *textDocument) PageText(ctx context.Context, page int) (string, error) {
	if page < 0 || page >= len(d.pages) {
		return "", fmt.Errorf("page %d out of range", page)
	}
	return d.pages[page], nil
}

func (d *textDocument) PageFragments(ctx context.Context, page int) ([]Fragment, error) {
	text, err := d.PageText(ctx, page)
	if err != nil {
		return nil, err
	}

	var fragments []Fragment
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fragments = append(fragments, Fragment{Text: line, Y: float64(i) * textLineHeight})
	}
	return fragments, nil
}

// Outline returns nil: the text format carries no embedded outline, so
// derivation always falls through to the TOC heuristic.
func (d *textDocument) Outline() []OutlineRef { return nil }

func (d *textDocument) ResolvePage(ctx context.Context, ref OutlineRef) (int, error) {
	return 0, fmt.Errorf("text documents have no destinations")
}

func (d *textDocument) Close() {
	d.pages = nil
}
