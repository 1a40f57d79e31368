package confirmflow

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/navigator"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled indicates the confirmation ended without a decision: the
	// context was cancelled or the input source went away. It is not a
	// rejection; the caller must treat the request as unanswered.
	ErrCancelled = errors.New("confirmation cancelled")

	// ErrSourceClosed is wrapped together with ErrCancelled when the event
	// channel closes mid-flow.
	ErrSourceClosed = errors.New("event source closed")
)

// InfrastructureError represents a failure of the confirmation machinery
// itself (the renderer failed, the display went away) rather than a user
// decision. The flow is aborted before it is returned.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "render", "start")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("confirmflow: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("confirmflow: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsCancelled checks if an error indicates the confirmation was abandoned.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsAlreadyRunning checks if an error was caused by starting a flow while
// another one was in progress on the same navigator.
func IsAlreadyRunning(err error) bool {
	return errors.Is(err, navigator.ErrAlreadyRunning)
}
