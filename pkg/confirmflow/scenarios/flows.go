package scenarios

import (
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/catalog"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/staging"
)

// Flows is the table of built-in flows. All flows are bound to one State.
type Flows struct {
	DisplayPubkey           *flow.Flow
	DisplayPubkeySuspicious *flow.Flow
	SignMessage             *flow.Flow
	RegisterWallet          *flow.Flow
	PolicyMapCosignerPubkey *flow.Flow
	ReceiveInWallet         *flow.Flow
	CanonicalWalletAddress  *flow.Flow
	SpendFromWallet         *flow.Flow
	WarningExternalInputs   *flow.Flow
	UnverifiedSegwitInputs  *flow.Flow
	NondefaultSighash       *flow.Flow
	OutputAddressAmount     *flow.Flow
	AcceptTransaction       *flow.Flow
}

func text(id string) string {
	return catalog.Text(id)
}

// paging is a stateful title/text step whose title is a fixed string.
func paging(name, titleID string, source func() string) *flow.Step {
	title := text(titleID)
	return flow.Stateful(name, constants.LayoutPaging, constants.IconNone, func(buf *staging.Buffer) {
		buf.SetTitle(title)
		buf.SetText(source())
	})
}

// Build creates every flow against state. Hooks keep a reference to state,
// so later changes to it show up the next time a step is entered.
func Build(state *State) *Flows {
	// Stateless steps, shared by any flow.
	confirmPubkey := flow.Display("confirm_pubkey", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconEye, Title: text(catalog.ConfirmPublicKey)})

	unusualPath := flow.Display("unusual_derivation_path", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconWarning, Title: text(catalog.DerivationLine1), Text: text(catalog.DerivationLine2)})

	rejectIfNotSure := flow.Action("reject_if_not_sure", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconCrossmark, Title: text(catalog.RejectIfNotSureLine1), Text: text(catalog.RejectIfNotSureLine2)},
		flow.Reject)

	approve := flow.Action("approve", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconValidate, Title: text(catalog.Approve)}, flow.Approve)

	continueStep := flow.Action("continue", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconValidate, Title: text(catalog.Continue)}, flow.Approve)

	reject := flow.Action("reject", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconCrossmark, Title: text(catalog.Reject)}, flow.Reject)

	externalInputs := flow.Display("warning_external_inputs", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconWarning, Title: text(catalog.ExternalInputsLine1), Text: text(catalog.ExternalInputsLine2)})

	unverified1 := flow.Display("unverified_segwit_inputs_1", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconWarning, Title: text(catalog.UnverifiedInputs)})
	unverified2 := flow.Display("unverified_segwit_inputs_2", constants.LayoutTwoLines,
		flow.Content{Title: text(catalog.UpdateLine1), Text: text(catalog.UpdateLine2)})
	unverified3 := flow.Display("unverified_segwit_inputs_3", constants.LayoutTwoLines,
		flow.Content{Title: text(catalog.ThirdPartyLine1), Text: text(catalog.ThirdPartyLine2)})

	nondefaultSighash := flow.Display("nondefault_sighash", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconWarning, Title: text(catalog.NondefaultSighash)})

	confirmTransaction := flow.Display("confirm_transaction", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconEye, Title: text(catalog.ConfirmLine1), Text: text(catalog.ConfirmLine2)})

	acceptAndSend := flow.Action("accept_and_send", constants.LayoutIconTwoLineButton,
		flow.Content{Icon: constants.IconValidate, Title: text(catalog.AcceptLine1), Text: text(catalog.AcceptLine2)},
		flow.Approve)

	registerWallet := flow.Display("register_wallet", constants.LayoutIconButton,
		flow.Content{Icon: constants.IconWallet, Title: text(catalog.RegisterWallet)})

	receiveInWallet := flow.Display("receive_in_registered_wallet", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconWallet, Title: text(catalog.ReceiveInLine1), Text: text(catalog.KnownWalletLine2)})

	spendFromWallet := flow.Display("spend_from_registered_wallet", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconWallet, Title: text(catalog.SpendFromLine1), Text: text(catalog.KnownWalletLine2)})

	signMessage := flow.Display("sign_message", constants.LayoutIconTwoLines,
		flow.Content{Icon: constants.IconCertificate, Title: text(catalog.SignLine1), Text: text(catalog.MessageLine2)})

	signMessageAccept := flow.Action("sign_message_accept", constants.LayoutIconTwoLineButton,
		flow.Content{Icon: constants.IconValidate, Title: text(catalog.SignLine1), Text: text(catalog.MessageLine2)},
		flow.Approve)

	// Stateful steps, each bound to one State section.
	path := paging("path", catalog.PathTitle, func() string { return state.PathAndPubkey.Path })
	pubkey := paging("pubkey", catalog.PublicKeyTitle, func() string { return state.PathAndPubkey.Pubkey })

	policyMap := paging("wallet_policy_map", catalog.WalletPolicyTitle, func() string { return state.Wallet.DescriptorTemplate })
	walletName := paging("wallet_name", catalog.WalletNameTitle, func() string { return state.Wallet.Name })
	walletAddress := paging("wallet_address", catalog.AddressTitle, func() string { return state.Wallet.Address })

	cosignerPubkey := flow.Stateful("wallet_policy_cosigner_pubkey", constants.LayoutPaging, constants.IconNone,
		func(buf *staging.Buffer) {
			buf.SetTitle(state.CosignerPubkeyAndIndex.SignerIndex)
			buf.SetText(state.CosignerPubkeyAndIndex.Pubkey)
		})

	reviewTitle := text(catalog.ReviewTitle)
	review := flow.Stateful("review_output", constants.LayoutIconTwoLines, constants.IconEye,
		func(buf *staging.Buffer) {
			buf.SetTitle(reviewTitle)
			buf.SetText(state.ValidateOutput.Index)
		})
	amount := paging("validate_amount", catalog.AmountTitle, func() string { return state.ValidateOutput.Amount })
	address := paging("validate_address", catalog.AddressTitle, func() string { return state.ValidateOutput.AddressOrDescription })

	fees := paging("confirm_transaction_fees", catalog.FeesTitle, func() string { return state.ValidateTransaction.Fee })

	messagePath := paging("message_sign_path", catalog.PathTitle, func() string { return state.PathAndHash.Path })
	messageHash := paging("message_hash", catalog.MessageHashTitle, func() string { return state.PathAndHash.HashHex })

	return &Flows{
		SignMessage: flow.MustNew("sign_message",
			signMessage, messagePath, messageHash, signMessageAccept, reject),

		DisplayPubkey: flow.MustNew("display_pubkey",
			confirmPubkey, path, pubkey, approve, reject),

		DisplayPubkeySuspicious: flow.MustNew("display_pubkey_suspicious",
			unusualPath, confirmPubkey, path, rejectIfNotSure, pubkey, approve, reject),

		RegisterWallet: flow.MustNew("register_wallet",
			registerWallet, walletName, policyMap, approve, reject),

		PolicyMapCosignerPubkey: flow.MustNew("policy_map_cosigner_pubkey",
			cosignerPubkey, approve, reject),

		ReceiveInWallet: flow.MustNew("receive_in_wallet",
			receiveInWallet, walletName, walletAddress, approve, reject),

		CanonicalWalletAddress: flow.MustNew("canonical_wallet_address",
			walletAddress, approve, reject),

		SpendFromWallet: flow.MustNew("spend_from_wallet",
			spendFromWallet, walletName, approve, reject),

		WarningExternalInputs: flow.MustNew("warning_external_inputs",
			externalInputs, rejectIfNotSure, continueStep),

		UnverifiedSegwitInputs: flow.MustNew("unverified_segwit_inputs",
			unverified1, unverified2, unverified3, continueStep, reject),

		NondefaultSighash: flow.MustNew("nondefault_sighash",
			nondefaultSighash, rejectIfNotSure, continueStep, reject),

		OutputAddressAmount: flow.MustNew("output_address_amount",
			review, amount, address, approve, reject),

		AcceptTransaction: flow.MustNew("accept_transaction",
			confirmTransaction, fees, acceptAndSend, reject),
	}
}

// OutputLabel formats the line shown under "Review" for output index.
// index is zero-based; the label shows it one-based.
func OutputLabel(index int, showIndex bool) string {
	if !showIndex {
		return catalog.Text(catalog.OutputLabel)
	}
	return catalog.Format(catalog.OutputIndexLabel, map[string]any{"Index": index + 1})
}

// SignerLabel formats the title of a cosigner key. index is the key's
// position in the wallet policy and is shown as-is.
func SignerLabel(index int, ours bool) string {
	id := catalog.CosignerTheirsLabel
	if ours {
		id = catalog.CosignerOursLabel
	}
	return catalog.Format(id, map[string]any{"Index": index})
}

// All returns every flow in declaration order.
func (f *Flows) All() []*flow.Flow {
	return []*flow.Flow{
		f.DisplayPubkey,
		f.DisplayPubkeySuspicious,
		f.SignMessage,
		f.RegisterWallet,
		f.PolicyMapCosignerPubkey,
		f.ReceiveInWallet,
		f.CanonicalWalletAddress,
		f.SpendFromWallet,
		f.WarningExternalInputs,
		f.UnverifiedSegwitInputs,
		f.NondefaultSighash,
		f.OutputAddressAmount,
		f.AcceptTransaction,
	}
}
