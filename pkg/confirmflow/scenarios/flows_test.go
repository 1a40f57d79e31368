package scenarios

import (
	"io"
	"os"
	"testing"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/navigator"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/staging"
)

func TestMain(m *testing.M) {
	internal.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

type capture struct {
	frames []flow.Content
}

func (c *capture) Render(_ constants.Layout, content flow.Content) error {
	c.frames = append(c.frames, content)
	return nil
}

func stepNames(f *flow.Flow) []string {
	names := make([]string, f.Len())
	for i := range names {
		names[i] = f.Step(i).Name()
	}
	return names
}

func TestFlowTables(t *testing.T) {
	flows := Build(&State{})

	tests := []struct {
		name string
		flow *flow.Flow
		want []string
	}{
		{"display pubkey", flows.DisplayPubkey, []string{"confirm_pubkey", "path", "pubkey", "approve", "reject"}},
		{"suspicious pubkey", flows.DisplayPubkeySuspicious, []string{"unusual_derivation_path", "confirm_pubkey", "path", "reject_if_not_sure", "pubkey", "approve", "reject"}},
		{"sign message", flows.SignMessage, []string{"sign_message", "message_sign_path", "message_hash", "sign_message_accept", "reject"}},
		{"register wallet", flows.RegisterWallet, []string{"register_wallet", "wallet_name", "wallet_policy_map", "approve", "reject"}},
		{"cosigner", flows.PolicyMapCosignerPubkey, []string{"wallet_policy_cosigner_pubkey", "approve", "reject"}},
		{"receive", flows.ReceiveInWallet, []string{"receive_in_registered_wallet", "wallet_name", "wallet_address", "approve", "reject"}},
		{"canonical address", flows.CanonicalWalletAddress, []string{"wallet_address", "approve", "reject"}},
		{"spend", flows.SpendFromWallet, []string{"spend_from_registered_wallet", "wallet_name", "approve", "reject"}},
		{"external inputs", flows.WarningExternalInputs, []string{"warning_external_inputs", "reject_if_not_sure", "continue"}},
		{"unverified inputs", flows.UnverifiedSegwitInputs, []string{"unverified_segwit_inputs_1", "unverified_segwit_inputs_2", "unverified_segwit_inputs_3", "continue", "reject"}},
		{"nondefault sighash", flows.NondefaultSighash, []string{"nondefault_sighash", "reject_if_not_sure", "continue", "reject"}},
		{"output review", flows.OutputAddressAmount, []string{"review_output", "validate_amount", "validate_address", "approve", "reject"}},
		{"accept transaction", flows.AcceptTransaction, []string{"confirm_transaction", "confirm_transaction_fees", "accept_and_send", "reject"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stepNames(tt.flow)
			if len(got) != len(tt.want) {
				t.Fatalf("steps = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDisplayPubkeyRendersState(t *testing.T) {
	state := &State{PathAndPubkey: PathAndPubkey{Path: "m/84'/0'/0'", Pubkey: "xpub6CatWdiZiodmUeTDp8LT5or8nmbKNcuyvz7WyksVFkKB4RHwCD3XyuvPEbvqAQY3rAPshWcMLoP2fMFMKHPJ4ZeZXYVUhLv1VMrjPC7PW6V"}}
	flows := Build(state)
	c := &capture{}
	nav := navigator.New(staging.New(), navigator.NewResponse(), c)

	nav.Start(flows.DisplayPubkey)
	nav.Next()
	nav.Next()

	if len(c.frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(c.frames))
	}
	if c.frames[0].Title != "Confirm public key" {
		t.Errorf("frame 0 title = %q", c.frames[0].Title)
	}
	if c.frames[1].Title != "Path" || c.frames[1].Text != state.PathAndPubkey.Path {
		t.Errorf("frame 1 = %+v, want path", c.frames[1])
	}
	if c.frames[2].Title != "Public key" || c.frames[2].Text != state.PathAndPubkey.Pubkey {
		t.Errorf("frame 2 = %+v, want pubkey", c.frames[2])
	}
}

func TestRejectIfNotSureCancels(t *testing.T) {
	flows := Build(&State{})
	nav := navigator.New(staging.New(), navigator.NewResponse(), &capture{})

	nav.Start(flows.WarningExternalInputs)
	nav.Next()
	nav.Activate()

	approved, err := nav.Response()
	if err != nil || approved {
		t.Errorf("Response() = %v, %v; want false, nil", approved, err)
	}
}

func TestReviewOutputUsesIconAndLabel(t *testing.T) {
	state := &State{ValidateOutput: ValidateOutput{Index: OutputLabel(0, true), Amount: "BTC 0.1"}}
	flows := Build(state)
	c := &capture{}
	nav := navigator.New(staging.New(), navigator.NewResponse(), c)

	nav.Start(flows.OutputAddressAmount)

	got := c.frames[0]
	if got.Icon != constants.IconEye || got.Title != "Review" || got.Text != "Output #1" {
		t.Errorf("review frame = %+v", got)
	}
}

func TestOutputLabel(t *testing.T) {
	if got := OutputLabel(4, true); got != "Output #5" {
		t.Errorf("OutputLabel(4, true) = %q", got)
	}
	if got := OutputLabel(4, false); got != "Output" {
		t.Errorf("OutputLabel(4, false) = %q", got)
	}
}

func TestSignerLabel(t *testing.T) {
	if got := SignerLabel(1, true); got != "Key @1, ours" {
		t.Errorf("SignerLabel(1, true) = %q", got)
	}
	if got := SignerLabel(2, false); got != "Key @2, theirs" {
		t.Errorf("SignerLabel(2, false) = %q", got)
	}
}

func TestAllFlowsAreDistinct(t *testing.T) {
	all := Build(&State{}).All()
	if len(all) != 13 {
		t.Fatalf("All() returned %d flows, want 13", len(all))
	}
	seen := map[string]bool{}
	for _, f := range all {
		if f == nil {
			t.Fatal("All() contains a nil flow")
		}
		if seen[f.Name()] {
			t.Errorf("flow %q listed twice", f.Name())
		}
		seen[f.Name()] = true
	}
}
