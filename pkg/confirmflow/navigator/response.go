package navigator

import (
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
)

// Response is the single boolean outcome slot shared by all flows.
// It is written at most once per flow execution and cleared by Start.
type Response struct {
	value   atomic.Bool
	written atomic.Bool
}

// NewResponse returns an empty response slot.
func NewResponse() *Response {
	return &Response{}
}

// Set commits the outcome. Only the first write after Clear is kept.
func (r *Response) Set(approved bool) {
	if r.written.Load() {
		internal.GetInternalLogger().Warn("response already committed, ignoring write",
			"kept", r.value.Load(), "ignored", approved)
		return
	}
	r.value.Store(approved)
	r.written.Store(true)
}

// Read returns the committed outcome and whether one has been written.
func (r *Response) Read() (approved bool, ok bool) {
	if !r.written.Load() {
		return false, false
	}
	return r.value.Load(), true
}

// Clear empties the slot.
func (r *Response) Clear() {
	r.written.Store(false)
	r.value.Store(false)
}
