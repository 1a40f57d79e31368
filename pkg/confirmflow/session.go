package confirmflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/navigator"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/scenarios"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/staging"
)

// EventSource delivers decoded button events. Closing the channel ends any
// flow that is waiting on it.
type EventSource interface {
	Events() <-chan constants.Event
}

// Flusher is implemented by sources that hold input outside the event
// channel. Flush drops it, and the source ignores new input until the next
// step has been shown.
type Flusher interface {
	Flush()
}

// Session runs one flow at a time against a backend. It owns the staging
// buffer, the response slot and the scenario state, so a backend needs to
// know nothing about flows.
//
// Methods block until the user decides or ctx is done. Concurrent calls are
// serialised.
type Session struct {
	mu     sync.Mutex
	source EventSource
	nav    *navigator.Navigator
	state  *scenarios.State
	flows  *scenarios.Flows
}

// NewSession creates a session drawing through renderer and reading input
// from source. Backends usually implement both.
func NewSession(renderer navigator.Renderer, source EventSource) *Session {
	state := &scenarios.State{}
	return &Session{
		source: source,
		nav:    navigator.New(staging.New(), navigator.NewResponse(), renderer),
		state:  state,
		flows:  scenarios.Build(state),
	}
}

// Flows returns the built-in flows bound to this session's state. Running
// a stateful flow through Confirm shows whatever the state last held; the
// scenario methods fill it first.
func (s *Session) Flows() *scenarios.Flows {
	return s.flows
}

// Confirm runs f until its terminal step fires.
func (s *Session) Confirm(ctx context.Context, f *flow.Flow) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, f)
}

func (s *Session) run(ctx context.Context, f *flow.Flow) (ConfirmResult, error) {
	if f == nil {
		return ConfirmResult{}, navigator.ErrNilFlow
	}
	result := ConfirmResult{Flow: f.Name()}
	logger := internal.GetInternalLogger().With("flow", f.Name())

	events := s.source.Events()
	if n := s.discardPending(events); n > 0 {
		logger.Info("discarded input received before the flow started", "events", n)
	}

	if err := s.nav.Start(f); err != nil {
		if errors.Is(err, navigator.ErrAlreadyRunning) {
			return result, err
		}
		s.nav.Abort()
		return result, NewInfrastructureError("render", err)
	}

	for s.nav.Active() {
		select {
		case <-ctx.Done():
			s.nav.Abort()
			logger.Info("confirmation abandoned", "step", s.nav.Current().Name(), "reason", ctx.Err())
			return result, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())

		case ev, ok := <-events:
			if !ok {
				s.nav.Abort()
				logger.Warn("event source closed during confirmation", "step", s.nav.Current().Name())
				return result, fmt.Errorf("%w: %w", ErrCancelled, ErrSourceClosed)
			}
			logger.Debug("event", "event", ev.GetName(), "index", s.nav.Index())
			if err := s.nav.Handle(ev); err != nil {
				s.nav.Abort()
				return result, NewInfrastructureError("render", err)
			}
		}
	}

	approved, err := s.nav.Response()
	if err != nil {
		return result, NewInfrastructureError("response", err)
	}
	result.Approved = approved

	internal.GetLogger().Info("confirmation finished", "flow", f.Name(), "approved", approved)
	return result, nil
}

// discardPending drops every event queued before a flow starts, so presses
// meant for an earlier request can never answer this one.
func (s *Session) discardPending(events <-chan constants.Event) int {
	if f, ok := s.source.(Flusher); ok {
		f.Flush()
	}

	n := 0
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}

// DisplayPubkey asks the user to verify an extended public key. Suspicious
// derivation paths get an extra warning and a reject prompt.
func (s *Session) DisplayPubkey(ctx context.Context, path, pubkey string, suspicious bool) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PathAndPubkey = scenarios.PathAndPubkey{Path: path, Pubkey: pubkey}
	if suspicious {
		return s.run(ctx, s.flows.DisplayPubkeySuspicious)
	}
	return s.run(ctx, s.flows.DisplayPubkey)
}

// SignMessage asks the user to sign a message identified by its hash.
func (s *Session) SignMessage(ctx context.Context, path, hashHex string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PathAndHash = scenarios.PathAndHash{Path: path, HashHex: hashHex}
	return s.run(ctx, s.flows.SignMessage)
}

// RegisterWallet asks the user to register a named wallet policy.
func (s *Session) RegisterWallet(ctx context.Context, name, descriptorTemplate string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Wallet = scenarios.Wallet{Name: name, DescriptorTemplate: descriptorTemplate}
	return s.run(ctx, s.flows.RegisterWallet)
}

// CosignerPubkey asks the user to verify one key of a wallet policy being
// registered. ours marks the key held by this device.
func (s *Session) CosignerPubkey(ctx context.Context, index int, ours bool, pubkey string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CosignerPubkeyAndIndex = scenarios.CosignerPubkeyAndIndex{
		SignerIndex: scenarios.SignerLabel(index, ours),
		Pubkey:      pubkey,
	}
	return s.run(ctx, s.flows.PolicyMapCosignerPubkey)
}

// ReceiveInWallet asks the user to verify a receive address of a registered wallet.
func (s *Session) ReceiveInWallet(ctx context.Context, walletName, address string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Wallet = scenarios.Wallet{Name: walletName, Address: address}
	return s.run(ctx, s.flows.ReceiveInWallet)
}

// CanonicalWalletAddress asks the user to verify an address of a default wallet.
func (s *Session) CanonicalWalletAddress(ctx context.Context, address string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Wallet = scenarios.Wallet{Address: address}
	return s.run(ctx, s.flows.CanonicalWalletAddress)
}

// SpendFromWallet asks the user to confirm spending from a registered wallet.
func (s *Session) SpendFromWallet(ctx context.Context, walletName string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Wallet = scenarios.Wallet{Name: walletName}
	return s.run(ctx, s.flows.SpendFromWallet)
}

// WarnExternalInputs warns that the transaction spends inputs the device does not control.
func (s *Session) WarnExternalInputs(ctx context.Context) (ConfirmResult, error) {
	return s.Confirm(ctx, s.flows.WarningExternalInputs)
}

// WarnUnverifiedSegwitInputs warns that segwit inputs could not be verified.
func (s *Session) WarnUnverifiedSegwitInputs(ctx context.Context) (ConfirmResult, error) {
	return s.Confirm(ctx, s.flows.UnverifiedSegwitInputs)
}

// WarnNondefaultSighash warns that an input uses a non-default sighash type.
func (s *Session) WarnNondefaultSighash(ctx context.Context) (ConfirmResult, error) {
	return s.Confirm(ctx, s.flows.NondefaultSighash)
}

// ReviewOutput asks the user to validate one transaction output. index is
// zero-based; showIndex controls whether it is displayed.
func (s *Session) ReviewOutput(ctx context.Context, index int, showIndex bool, amount, addressOrDescription string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ValidateOutput = scenarios.ValidateOutput{
		Index:                scenarios.OutputLabel(index, showIndex),
		Amount:               amount,
		AddressOrDescription: addressOrDescription,
	}
	return s.run(ctx, s.flows.OutputAddressAmount)
}

// AcceptTransaction asks for final approval of a transaction paying fee.
func (s *Session) AcceptTransaction(ctx context.Context, fee string) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ValidateTransaction = scenarios.ValidateTransaction{Fee: fee}
	return s.run(ctx, s.flows.AcceptTransaction)
}
