package flow

import (
	"errors"
	"fmt"
)

// Construction errors. They are always wrapped in a *ValidationError.
var (
	ErrEmptyFlow      = errors.New("flow has no steps")
	ErrNilStep        = errors.New("flow contains a nil step")
	ErrInvalidLayout  = errors.New("step has an unknown layout")
	ErrMissingHook    = errors.New("step is missing its hook")
	ErrNoTerminalStep = errors.New("flow has no actionable step")
	ErrDeadEnd        = errors.New("flow does not end on an actionable step")
)

// ValidationError reports why a flow definition was rejected.
type ValidationError struct {
	Flow  string // Name of the flow being built
	Index int    // Offending step index, or -1 for flow-level defects
	Err   error  // One of the Err* sentinels
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("flow %q: step %d: %v", e.Flow, e.Index, e.Err)
	}
	return fmt.Sprintf("flow %q: %v", e.Flow, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Flow is an immutable ordered sequence of steps. The order is the only
// navigation order. A Flow may be started any number of times.
type Flow struct {
	name  string
	steps []*Step
}

// New validates steps and returns a Flow over a private copy of them.
//
// A flow is valid when it has at least one step, every step is well formed,
// and its last step is actionable, so moving forward from the first step
// always reaches a step that can terminate it.
func New(name string, steps ...*Step) (*Flow, error) {
	if len(steps) == 0 {
		return nil, &ValidationError{Flow: name, Index: -1, Err: ErrEmptyFlow}
	}

	actionable := false
	for i, s := range steps {
		if s == nil {
			return nil, &ValidationError{Flow: name, Index: i, Err: ErrNilStep}
		}
		if err := s.validate(); err != nil {
			return nil, &ValidationError{Flow: name, Index: i, Err: err}
		}
		actionable = actionable || s.Actionable()
	}

	if !actionable {
		return nil, &ValidationError{Flow: name, Index: -1, Err: ErrNoTerminalStep}
	}
	if !steps[len(steps)-1].Actionable() {
		return nil, &ValidationError{Flow: name, Index: len(steps) - 1, Err: ErrDeadEnd}
	}

	return &Flow{
		name:  name,
		steps: append([]*Step(nil), steps...),
	}, nil
}

// MustNew is like New but panics on an invalid definition.
// It is meant for package-level flow tables.
func MustNew(name string, steps ...*Step) *Flow {
	f, err := New(name, steps...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Flow) Name() string {
	return f.name
}

// Len returns the number of steps.
func (f *Flow) Len() int {
	return len(f.steps)
}

// Step returns the step at index i. It panics if i is out of range.
func (f *Flow) Step(i int) *Step {
	return f.steps[i]
}
