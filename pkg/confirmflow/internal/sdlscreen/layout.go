package sdlscreen

import (
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/paging"
)

const (
	iconSize = 14
	gap      = 4
	margin   = 2
)

// Frame is everything the screen needs to draw one step: the step content
// and, for paginated steps, the page the backend is showing.
type Frame struct {
	Layout    constants.Layout
	Content   flow.Content
	Page      paging.Page
	PageIndex int
	PageCount int
}

type alignment int

const (
	alignCenter alignment = iota
	alignLeft
)

// element is one positioned item of a frame, in logical pixels.
type element struct {
	icon  constants.Icon
	text  string
	bold  bool
	align alignment
	y     int32
}

func (e element) isIcon() bool {
	return e.icon != constants.IconNone
}

// plan positions the parts of f on a screen of the given height. Blocks are
// centred vertically except for paginated frames, which fill from the top.
func plan(f Frame, lineHeight, height int32) []element {
	var els []element
	line := func(text string, bold bool, y int32) {
		if text != "" {
			els = append(els, element{text: text, bold: bold, align: alignCenter, y: y})
		}
	}

	hasIcon := f.Content.Icon != constants.IconNone
	blockTop := func(lines int32) int32 {
		h := lines * lineHeight
		if hasIcon {
			h += iconSize + gap
		}
		return max((height-h)/2, 0)
	}
	iconThen := func(y int32) int32 {
		if !hasIcon {
			return y
		}
		els = append(els, element{icon: f.Content.Icon, y: y})
		return y + iconSize + gap
	}

	switch f.Layout {
	case constants.LayoutIconButton:
		y := iconThen(blockTop(1))
		line(f.Content.Title, true, y)

	case constants.LayoutIconTwoLines:
		y := iconThen(blockTop(2))
		line(f.Content.Title, true, y)
		line(f.Content.Text, false, y+lineHeight)

	case constants.LayoutIconTwoLineButton:
		y := iconThen(blockTop(2))
		line(f.Content.Title, true, y)
		line(f.Content.Text, true, y+lineHeight)

	case constants.LayoutTwoLines:
		y := blockTop(2)
		line(f.Content.Title, true, y)
		line(f.Content.Text, false, y+lineHeight)

	case constants.LayoutPaging:
		line(paging.Header(f.Content.Title, f.PageIndex, f.PageCount), true, 0)
		for i, text := range f.Page.Lines {
			if text == "" {
				continue
			}
			els = append(els, element{
				text:  text,
				align: alignLeft,
				y:     lineHeight + margin + int32(i)*lineHeight,
			})
		}
	}

	return els
}
