// Package navigator drives a flow from its first step to a terminal activation.
//
// A Navigator owns the cursor into one flow at a time and borrows the shared
// staging buffer, response slot and renderer, all passed in explicitly. It is
// Idle until Start and returns to Idle when an actionable step's hook
// returns flow.SignalTerminate.
//
// # Basic Usage
//
//	buf := staging.New()
//	resp := navigator.NewResponse()
//	nav := navigator.New(buf, resp, renderer)
//
//	if err := nav.Start(f); err != nil {
//	    return err
//	}
//
//	for nav.Active() {
//	    if err := nav.Handle(<-events); err != nil {
//	        return err
//	    }
//	}
//
//	approved, err := nav.Response()
//
// # Navigation Rules
//
// Next past the last step and Previous before the first step are no-ops.
// Entering any step renders it again, so stateful steps always re-run their
// render hook and never show what an intervening step left in the buffer.
// Activating a step without a hook does nothing, which lets informational
// steps be skipped without producing a response.
//
// Nothing in this package blocks. Waiting for the next input event is the
// caller's job.
package navigator
