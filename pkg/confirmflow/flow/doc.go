// Package flow defines steps and the flows that order them.
//
// A Step is one screen. It is one of three kinds:
//
//   - Display: fixed layout and content, reusable in any flow.
//   - Action: fixed content plus an activation hook that commits the
//     flow's response and returns SignalTerminate.
//   - Stateful: a render hook that stages external data into the shared
//     staging.Buffer each time the step is entered.
//
// Flows are built once from literal step lists and validated at construction:
//
//	confirm := flow.Display("confirm", constants.LayoutIconButton,
//	    flow.Content{Icon: constants.IconEye, Title: "Confirm public key"})
//
//	pubkey := flow.Stateful("pubkey", constants.LayoutPaging, constants.IconNone,
//	    func(buf *staging.Buffer) {
//	        buf.SetTitle("Public key")
//	        buf.SetText(state.Pubkey)
//	    })
//
//	approve := flow.Action("approve", constants.LayoutIconButton,
//	    flow.Content{Icon: constants.IconValidate, Title: "Approve"}, flow.Approve)
//
//	reject := flow.Action("reject", constants.LayoutIconButton,
//	    flow.Content{Icon: constants.IconCrossmark, Title: "Reject"}, flow.Reject)
//
//	f := flow.MustNew("display_pubkey", confirm, pubkey, approve, reject)
//
// Render hooks read their source by reference, so the source must stay valid
// and unchanged while the flow is running.
package flow
