package flow

import (
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/staging"
)

// Kind distinguishes the three step variants.
type Kind int

const (
	KindDisplay  Kind = iota // Fixed content, no hooks
	KindAction               // Fixed content with an activation hook
	KindStateful             // Content rendered from external data on every entry
)

func (k Kind) GetName() string {
	switch k {
	case KindDisplay:
		return "Display"
	case KindAction:
		return "Action"
	case KindStateful:
		return "Stateful"
	default:
		return "Unknown"
	}
}

// Content is everything a renderer needs besides the layout.
// Which fields are drawn depends on the layout: button and two-line layouts
// use Title as the first line and Text as the second.
type Content struct {
	Icon  constants.Icon
	Title string
	Text  string
}

// Signal is returned by an activation hook to tell the navigator what to do next.
type Signal int

const (
	SignalContinue  Signal = iota // Stay on the current step
	SignalTerminate               // End the flow; the response has been committed
)

// Responder receives the outcome of a flow from an activation hook.
type Responder interface {
	Set(approved bool)
}

// RenderFunc copies externally owned data into the staging buffer.
// It must set both title and text on every call.
type RenderFunc func(buf *staging.Buffer)

// ActivateFunc runs when the user activates an actionable step.
type ActivateFunc func(r Responder) Signal

// Respond returns an activation hook that commits approved and ends the flow.
func Respond(approved bool) ActivateFunc {
	return func(r Responder) Signal {
		r.Set(approved)
		return SignalTerminate
	}
}

// Approve commits a positive response and ends the flow.
func Approve(r Responder) Signal {
	return Respond(true)(r)
}

// Reject commits a negative response and ends the flow.
func Reject(r Responder) Signal {
	return Respond(false)(r)
}

// Step is one immutable, statically defined screen. Steps may be shared
// between flows; they never own the data they display.
type Step struct {
	name     string
	kind     Kind
	layout   constants.Layout
	content  Content
	render   RenderFunc
	activate ActivateFunc
}

// Display creates a step that shows fixed content.
func Display(name string, layout constants.Layout, content Content) *Step {
	return &Step{name: name, kind: KindDisplay, layout: layout, content: content}
}

// Action creates a step that shows fixed content and ends the flow when activated.
func Action(name string, layout constants.Layout, content Content, activate ActivateFunc) *Step {
	return &Step{name: name, kind: KindAction, layout: layout, content: content, activate: activate}
}

// Stateful creates a step whose title and text come from the staging buffer,
// populated by render each time the step is entered.
func Stateful(name string, layout constants.Layout, icon constants.Icon, render RenderFunc) *Step {
	return &Step{name: name, kind: KindStateful, layout: layout, content: Content{Icon: icon}, render: render}
}

func (s *Step) Name() string {
	return s.name
}

func (s *Step) Kind() Kind {
	return s.kind
}

func (s *Step) Layout() constants.Layout {
	return s.layout
}

// Actionable reports whether activating the step runs a hook.
func (s *Step) Actionable() bool {
	return s.kind == KindAction
}

// Render resolves the step's content. Stateful steps run their render hook
// against buf first and then read from it; other steps ignore buf.
func (s *Step) Render(buf *staging.Buffer) (constants.Layout, Content) {
	if s.kind != KindStateful {
		return s.layout, s.content
	}

	s.render(buf)
	return s.layout, Content{
		Icon:  s.content.Icon,
		Title: buf.Title(),
		Text:  buf.Text(),
	}
}

// Activate runs the activation hook. Non-actionable steps return SignalContinue
// without touching r.
func (s *Step) Activate(r Responder) Signal {
	if s.kind != KindAction {
		return SignalContinue
	}
	return s.activate(r)
}

func (s *Step) validate() error {
	if !s.layout.Valid() {
		return ErrInvalidLayout
	}
	switch s.kind {
	case KindAction:
		if s.activate == nil {
			return ErrMissingHook
		}
	case KindStateful:
		if s.render == nil {
			return ErrMissingHook
		}
	}
	return nil
}
