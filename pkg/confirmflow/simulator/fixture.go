package simulator

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
)

//go:embed fixtures/*.yaml
var builtinFixtures embed.FS

// DefaultFixture is the built-in fixture that walks every scenario once.
const DefaultFixture = "demo"

var ErrUnknownScenario = errors.New("unknown scenario")

// Request is one confirmation a host would ask for. Which fields apply
// depends on Scenario.
type Request struct {
	Scenario   string `yaml:"scenario"`
	Path       string `yaml:"path,omitempty"`
	Pubkey     string `yaml:"pubkey,omitempty"`
	Suspicious bool   `yaml:"suspicious,omitempty"`
	HashHex    string `yaml:"hash,omitempty"`
	WalletName string `yaml:"wallet_name,omitempty"`
	Descriptor string `yaml:"descriptor,omitempty"`
	Address    string `yaml:"address,omitempty"`
	Index      int    `yaml:"index,omitempty"`
	ShowIndex  bool   `yaml:"show_index,omitempty"`
	Ours       bool   `yaml:"ours,omitempty"`
	Amount     string `yaml:"amount,omitempty"`
	Fee        string `yaml:"fee,omitempty"`
}

// Fixture is a scripted sequence of requests.
type Fixture struct {
	Name     string    `yaml:"name"`
	Requests []Request `yaml:"requests"`
}

// ParseFixture decodes a YAML fixture. Unknown keys are rejected.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, req := range f.Requests {
		if _, ok := scenarioRunners[req.Scenario]; !ok {
			return nil, fmt.Errorf("request %d: %w: %q", i, ErrUnknownScenario, req.Scenario)
		}
	}
	return &f, nil
}

// LoadFixture reads a fixture file, or a built-in fixture when path names one.
func LoadFixture(path string) (*Fixture, error) {
	data, err := builtinFixtures.ReadFile("fixtures/" + path + ".yaml")
	if err != nil {
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("load fixture %s: %w", path, err)
		}
	}
	return ParseFixture(data)
}

// Only returns a copy of f holding just the requests for scenario.
func (f *Fixture) Only(scenario string) (*Fixture, error) {
	out := &Fixture{Name: f.Name + "/" + scenario}
	for _, req := range f.Requests {
		if req.Scenario == scenario {
			out.Requests = append(out.Requests, req)
		}
	}
	if len(out.Requests) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}
	return out, nil
}

type runner func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error)

var scenarioRunners = map[string]runner{
	"display_pubkey": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.DisplayPubkey(ctx, r.Path, r.Pubkey, r.Suspicious)
	},
	"sign_message": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.SignMessage(ctx, r.Path, r.HashHex)
	},
	"register_wallet": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.RegisterWallet(ctx, r.WalletName, r.Descriptor)
	},
	"cosigner_pubkey": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.CosignerPubkey(ctx, r.Index, r.Ours, r.Pubkey)
	},
	"receive_in_wallet": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.ReceiveInWallet(ctx, r.WalletName, r.Address)
	},
	"canonical_wallet_address": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.CanonicalWalletAddress(ctx, r.Address)
	},
	"spend_from_wallet": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.SpendFromWallet(ctx, r.WalletName)
	},
	"warning_external_inputs": func(ctx context.Context, s *confirmflow.Session, _ Request) (confirmflow.ConfirmResult, error) {
		return s.WarnExternalInputs(ctx)
	},
	"unverified_segwit_inputs": func(ctx context.Context, s *confirmflow.Session, _ Request) (confirmflow.ConfirmResult, error) {
		return s.WarnUnverifiedSegwitInputs(ctx)
	},
	"nondefault_sighash": func(ctx context.Context, s *confirmflow.Session, _ Request) (confirmflow.ConfirmResult, error) {
		return s.WarnNondefaultSighash(ctx)
	},
	"review_output": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.ReviewOutput(ctx, r.Index, r.ShowIndex, r.Amount, r.Address)
	},
	"accept_transaction": func(ctx context.Context, s *confirmflow.Session, r Request) (confirmflow.ConfirmResult, error) {
		return s.AcceptTransaction(ctx, r.Fee)
	},
}

// Play runs every request of f in order, calling report after each one.
// It stops at the first error.
func Play(ctx context.Context, s *confirmflow.Session, f *Fixture, report func(Request, confirmflow.ConfirmResult)) error {
	for _, req := range f.Requests {
		run, ok := scenarioRunners[req.Scenario]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownScenario, req.Scenario)
		}
		res, err := run(ctx, s, req)
		if err != nil {
			return fmt.Errorf("%s: %w", req.Scenario, err)
		}
		if report != nil {
			report(req, res)
		}
	}
	return nil
}
