// Package staging holds the fixed-capacity title/text storage that stateful
// steps render into before their content is drawn.
//
// A Buffer is allocated once and reused by every stateful step. Each write
// zero-fills the destination and copies at most capacity-1 bytes, so the
// buffer never holds content from two steps and never holds bytes past the
// copied length.
package staging

import (
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
)

// Buffer is the shared staging area. The zero value is ready to use.
// A Buffer is not safe for concurrent writers; render hooks run one at a time.
type Buffer struct {
	title    [constants.TitleCapacity]byte
	text     [constants.TextCapacity]byte
	titleLen int
	textLen  int
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// SetTitle replaces the title. It returns true when title did not fit and
// was truncated to TitleCapacity-1 bytes.
func (b *Buffer) SetTitle(title string) bool {
	return write(b.title[:], &b.titleLen, title, "step title too long")
}

// SetText replaces the text. It returns true when text did not fit and was
// truncated to TextCapacity-1 bytes.
func (b *Buffer) SetText(text string) bool {
	return write(b.text[:], &b.textLen, text, "step text too long")
}

// Title returns the current title.
func (b *Buffer) Title() string {
	return string(b.title[:b.titleLen])
}

// Text returns the current text.
func (b *Buffer) Text() string {
	return string(b.text[:b.textLen])
}

// Reset clears both regions.
func (b *Buffer) Reset() {
	clear(b.title[:])
	clear(b.text[:])
	b.titleLen = 0
	b.textLen = 0
}

func write(dst []byte, n *int, src string, warning string) bool {
	clear(dst)

	length := len(src)
	limit := len(dst) - 1
	truncated := length > limit
	if truncated {
		internal.GetInternalLogger().Warn(warning, "capacity", len(dst), "length", length)
		length = limit
	}

	*n = copy(dst, src[:length])
	return truncated
}
