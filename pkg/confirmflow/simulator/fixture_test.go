package simulator

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
)

func TestLoadBuiltinFixture(t *testing.T) {
	f, err := LoadFixture(DefaultFixture)
	if err != nil {
		t.Fatalf("LoadFixture() error: %v", err)
	}

	seen := map[string]bool{}
	for _, req := range f.Requests {
		seen[req.Scenario] = true
	}
	for name := range scenarioRunners {
		if !seen[name] {
			t.Errorf("demo fixture never runs %q", name)
		}
	}
}

func TestParseFixtureRejectsUnknownScenario(t *testing.T) {
	_, err := ParseFixture([]byte("requests:\n  - scenario: format_disk\n"))
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("ParseFixture() error = %v, want ErrUnknownScenario", err)
	}
}

func TestParseFixtureRejectsUnknownField(t *testing.T) {
	_, err := ParseFixture([]byte("requests:\n  - scenario: spend_from_wallet\n    walet_name: typo\n"))
	if err == nil {
		t.Error("ParseFixture() accepted an unknown field")
	}
}

func TestFixtureOnly(t *testing.T) {
	f, err := LoadFixture(DefaultFixture)
	if err != nil {
		t.Fatalf("LoadFixture() error: %v", err)
	}

	only, err := f.Only("cosigner_pubkey")
	if err != nil {
		t.Fatalf("Only() error: %v", err)
	}
	if len(only.Requests) != 2 {
		t.Errorf("Only() kept %d requests, want 2", len(only.Requests))
	}

	if _, err := f.Only("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Only(nope) error = %v, want ErrUnknownScenario", err)
	}
}

// scripted answers each request with its own batch of events once the
// request's first step is shown.
type scripted struct {
	events  chan constants.Event
	batches [][]constants.Event
	armed   bool
}

func (s *scripted) Render(constants.Layout, flow.Content) error {
	if s.armed && len(s.batches) > 0 {
		for _, ev := range s.batches[0] {
			s.events <- ev
		}
		s.batches = s.batches[1:]
	}
	s.armed = false
	return nil
}

func (s *scripted) Events() <-chan constants.Event { return s.events }

func (s *scripted) Flush() { s.armed = true }

func TestPlay(t *testing.T) {
	f := &Fixture{Requests: []Request{
		{Scenario: "warning_external_inputs"},
		{Scenario: "spend_from_wallet", WalletName: "Cold storage"},
	}}

	b := &scripted{
		events: make(chan constants.Event, 16),
		batches: [][]constants.Event{
			// external inputs: warning, reject-if-not-sure, continue
			{constants.EventNext, constants.EventNext, constants.EventActivate},
			// spend: intro, wallet name, approve, reject
			{constants.EventNext, constants.EventNext, constants.EventNext, constants.EventActivate},
		},
	}

	var got []bool
	err := Play(context.Background(), confirmflow.NewSession(b, b), f, func(_ Request, res confirmflow.ConfirmResult) {
		got = append(got, res.Approved)
	})
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("results = %v, want [true false]", got)
	}
}
