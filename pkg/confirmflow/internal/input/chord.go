// Package input turns raw presses of the two device buttons into navigator events.
package input

import (
	"time"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
)

// ChordDecoder tracks the two buttons and emits events:
//
//   - Left pressed and released alone: Previous.
//   - Right pressed and released alone: Next.
//   - Both held at the same time, then both released: Activate.
//   - One button held alone repeats its event, first after the repeat delay
//     and then every repeat interval. The release after a repeat emits nothing.
//   - A chord formed while the first button was already repeating emits
//     nothing, so a held move never turns into an approval.
//
// Callers pass the current time so timing is deterministic under test.
type ChordDecoder struct {
	held struct {
		left, right bool
	}
	chord          bool
	spoiled        bool // chord formed after a repeat fired
	hasRepeated    bool
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
}

// NewChordDecoder creates a decoder with default timing.
func NewChordDecoder() *ChordDecoder {
	return NewChordDecoderWithTiming(constants.DefaultRepeatDelay, constants.DefaultRepeatInterval)
}

// NewChordDecoderWithTiming creates a decoder with custom repeat timing.
func NewChordDecoderWithTiming(delay, interval time.Duration) *ChordDecoder {
	return &ChordDecoder{
		repeatDelay:    delay,
		repeatInterval: interval,
	}
}

// Press records a button going down.
func (d *ChordDecoder) Press(button constants.Button, now time.Time) constants.Event {
	switch button {
	case constants.ButtonLeft:
		d.held.left = true
	case constants.ButtonRight:
		d.held.right = true
	default:
		return constants.EventNone
	}

	if d.held.left && d.held.right && !d.chord {
		d.chord = true
		d.spoiled = d.hasRepeated
	}
	d.hasRepeated = false
	d.lastRepeatTime = now
	return constants.EventNone
}

// Release records a button going up and returns the event it completes, if any.
func (d *ChordDecoder) Release(button constants.Button, now time.Time) constants.Event {
	switch button {
	case constants.ButtonLeft:
		if !d.held.left {
			return constants.EventNone
		}
		d.held.left = false
	case constants.ButtonRight:
		if !d.held.right {
			return constants.EventNone
		}
		d.held.right = false
	default:
		return constants.EventNone
	}

	if d.chord {
		if d.held.left || d.held.right {
			return constants.EventNone
		}
		d.chord = false
		if d.spoiled {
			d.spoiled = false
			return constants.EventNone
		}
		return constants.EventActivate
	}

	repeated := d.hasRepeated
	d.hasRepeated = false
	d.lastRepeatTime = now
	if repeated {
		return constants.EventNone
	}
	return eventFor(button)
}

// Update returns a repeat event when a single held button is due one.
// Call it periodically.
func (d *ChordDecoder) Update(now time.Time) constants.Event {
	button := d.heldAlone()
	if button == constants.ButtonUnassigned {
		return constants.EventNone
	}

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if now.Sub(d.lastRepeatTime) >= threshold {
		d.lastRepeatTime = now
		d.hasRepeated = true
		return eventFor(button)
	}
	return constants.EventNone
}

// Reset forgets all held state.
func (d *ChordDecoder) Reset() {
	d.held.left = false
	d.held.right = false
	d.chord = false
	d.spoiled = false
	d.hasRepeated = false
}

func (d *ChordDecoder) heldAlone() constants.Button {
	switch {
	case d.chord:
		return constants.ButtonUnassigned
	case d.held.left && !d.held.right:
		return constants.ButtonLeft
	case d.held.right && !d.held.left:
		return constants.ButtonRight
	default:
		return constants.ButtonUnassigned
	}
}

func eventFor(button constants.Button) constants.Event {
	switch button {
	case constants.ButtonLeft:
		return constants.EventPrevious
	case constants.ButtonRight:
		return constants.EventNext
	default:
		return constants.EventNone
	}
}
