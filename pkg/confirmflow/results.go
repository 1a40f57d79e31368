package confirmflow

// ConfirmResult is the outcome of a terminated flow.
type ConfirmResult struct {
	Flow     string // Name of the flow that ran
	Approved bool   // The user's decision
}
