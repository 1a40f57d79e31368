// Package paging splits paginated step text into screen-sized pages and
// tracks the page a backend is showing.
package paging

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
)

// Page is one screenful of wrapped text lines.
type Page struct {
	Lines []string
}

// RuneWidth returns the number of display cells r occupies.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Split wraps text to cols cells per line, breaking at spaces where it can
// and inside long tokens such as addresses where it must, then groups the
// lines into pages of rows lines. It always returns at least one page.
func Split(text string, cols, rows int) []Page {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrap(paragraph, cols)...)
	}

	var pages []Page
	for len(lines) > rows {
		pages = append(pages, Page{Lines: lines[:rows]})
		lines = lines[rows:]
	}
	return append(pages, Page{Lines: lines})
}

func wrap(s string, cols int) []string {
	if s == "" {
		return []string{""}
	}

	var lines []string
	runes := []rune(s)
	for len(runes) > 0 {
		n, cells, lastSpace := 0, 0, -1
		for n < len(runes) {
			w := RuneWidth(runes[n])
			if cells+w > cols {
				break
			}
			if runes[n] == ' ' {
				lastSpace = n
			}
			cells += w
			n++
		}

		switch {
		case n == len(runes):
			lines = append(lines, string(runes))
			runes = nil
		case runes[n] == ' ':
			lines = append(lines, string(runes[:n]))
			runes = runes[n+1:]
		case lastSpace > 0:
			lines = append(lines, string(runes[:lastSpace]))
			runes = runes[lastSpace+1:]
		default:
			// A single rune wider than the line still has to go somewhere.
			n = max(n, 1)
			lines = append(lines, string(runes[:n]))
			runes = runes[n:]
		}
	}
	return lines
}

// Pager holds the pages of the frame currently on screen. Backends feed it
// every frame and offer it every Next/Previous event before forwarding the
// event to the navigator. A paginated step entered with Previous opens on
// its last page.
type Pager struct {
	cols     int
	rows     int
	pages    []Page
	index    int
	backward bool // last event handed to the navigator was Previous
}

// NewPager returns a pager for a cols x rows text area.
func NewPager(cols, rows int) *Pager {
	return &Pager{cols: cols, rows: rows}
}

// Load replaces the current frame. Only paginated layouts get pages.
func (p *Pager) Load(layout constants.Layout, content flow.Content) {
	p.index = 0
	p.pages = nil
	if layout == constants.LayoutPaging {
		p.pages = Split(content.Text, p.cols, p.rows)
		if p.backward {
			p.index = len(p.pages) - 1
		}
	}
	p.backward = false
}

// Reset forgets the direction of the last forwarded event, so the next
// frame opens on its first page. Backends call it between flows.
func (p *Pager) Reset() {
	p.backward = false
}

// Intercept consumes ev when it moves between pages of the current frame.
// It returns false when ev should go to the navigator instead.
func (p *Pager) Intercept(ev constants.Event) bool {
	switch ev {
	case constants.EventNext:
		if p.index+1 < len(p.pages) {
			p.index++
			return true
		}
	case constants.EventPrevious:
		if p.index > 0 {
			p.index--
			return true
		}
	}
	p.backward = ev == constants.EventPrevious
	return false
}

// Current returns the visible page, its index and the page count.
// Frames without pages report a zero Page and a count of zero.
func (p *Pager) Current() (Page, int, int) {
	if len(p.pages) == 0 {
		return Page{}, 0, 0
	}
	return p.pages[p.index], p.index, len(p.pages)
}

// Header returns the title of a paginated frame, with a page indicator when
// there is more than one page. index is zero-based.
func Header(title string, index, count int) string {
	if count <= 1 {
		return title
	}
	return fmt.Sprintf("%s (%d/%d)", title, index+1, count)
}
