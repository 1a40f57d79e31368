package confirmflow

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/navigator"
)

func TestMain(m *testing.M) {
	internal.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// backend records every frame. Each scripted batch of events is released
// when the first step of the next request is shown, the way a user reacts
// to the screen.
type backend struct {
	frames  []flow.Content
	events  chan constants.Event
	err     error
	batches [][]constants.Event
	armed   bool
	flushes int
}

func newBackend(events ...constants.Event) *backend {
	b := &backend{events: make(chan constants.Event, 16)}
	if len(events) > 0 {
		b.script(events...)
	}
	return b
}

func (b *backend) Render(_ constants.Layout, content flow.Content) error {
	if b.err != nil {
		return b.err
	}
	b.frames = append(b.frames, content)
	if b.armed && len(b.batches) > 0 {
		for _, ev := range b.batches[0] {
			b.events <- ev
		}
		b.batches = b.batches[1:]
	}
	b.armed = false
	return nil
}

func (b *backend) Events() <-chan constants.Event {
	return b.events
}

func (b *backend) Flush() {
	b.flushes++
	b.armed = true
}

// script queues the answer to the next request.
func (b *backend) script(events ...constants.Event) {
	b.batches = append(b.batches, events)
}

// press queues events immediately, as if the user pressed buttons while no
// request was on screen.
func (b *backend) press(events ...constants.Event) {
	for _, ev := range events {
		b.events <- ev
	}
}

func repeat(ev constants.Event, n int) []constants.Event {
	out := make([]constants.Event, n)
	for i := range out {
		out[i] = ev
	}
	return out
}

const (
	next     = constants.EventNext
	previous = constants.EventPrevious
	activate = constants.EventActivate
)

func TestDisplayPubkeyApprove(t *testing.T) {
	b := newBackend(append(repeat(next, 3), activate)...)
	s := NewSession(b, b)

	res, err := s.DisplayPubkey(context.Background(), "m/44'/1'/0'", "tpubDC...", false)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if !res.Approved || res.Flow != "display_pubkey" {
		t.Errorf("result = %+v, want approved display_pubkey", res)
	}

	if len(b.frames) != 4 {
		t.Fatalf("rendered %d frames, want 4", len(b.frames))
	}
	if b.frames[1].Title != "Path" || b.frames[1].Text != "m/44'/1'/0'" {
		t.Errorf("path frame = %+v", b.frames[1])
	}
	if b.frames[2].Text != "tpubDC..." {
		t.Errorf("pubkey frame = %+v", b.frames[2])
	}
}

func TestDisplayPubkeyReject(t *testing.T) {
	b := newBackend(append(repeat(next, 4), activate)...)
	s := NewSession(b, b)

	res, err := s.DisplayPubkey(context.Background(), "m/0", "xpub", false)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if res.Approved {
		t.Error("Approved = true after activating reject")
	}
}

func TestDisplayPubkeySuspiciousRejectIfNotSure(t *testing.T) {
	// unusual path, confirm, path, reject-if-not-sure
	b := newBackend(append(repeat(next, 3), activate)...)
	s := NewSession(b, b)

	res, err := s.DisplayPubkey(context.Background(), "m/1'/2'/3'", "xpub", true)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if res.Approved || res.Flow != "display_pubkey_suspicious" {
		t.Errorf("result = %+v, want rejected display_pubkey_suspicious", res)
	}
}

func TestActivateOnDisplayStepIsIgnored(t *testing.T) {
	b := newBackend(activate, next, next, next, activate)
	s := NewSession(b, b)

	res, err := s.DisplayPubkey(context.Background(), "m/0", "xpub", false)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if !res.Approved {
		t.Error("Approved = false, want the approve step to decide")
	}
}

func TestBackNavigationRerendersState(t *testing.T) {
	b := newBackend(next, next, previous, next, next, activate)
	s := NewSession(b, b)

	if _, err := s.SignMessage(context.Background(), "m/44'/0'/0'", "deadbeef"); err != nil {
		t.Fatalf("SignMessage() error: %v", err)
	}

	// sign, path, hash, path again, hash again, accept
	if len(b.frames) != 6 {
		t.Fatalf("rendered %d frames, want 6", len(b.frames))
	}
	if b.frames[3] != b.frames[1] {
		t.Errorf("path frame after back = %+v, want %+v", b.frames[3], b.frames[1])
	}
}

func TestContextCancelled(t *testing.T) {
	b := newBackend()
	s := NewSession(b, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AcceptTransaction(ctx, "0.0001 BTC")
	if !IsCancelled(err) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want it to wrap context.Canceled", err)
	}

	// The session is reusable and the next run starts from scratch.
	b.script(next, next, activate)
	res, err := s.AcceptTransaction(context.Background(), "0.0002 BTC")
	if err != nil {
		t.Fatalf("AcceptTransaction() after cancel error: %v", err)
	}
	if !res.Approved {
		t.Error("Approved = false, want accept_and_send to approve")
	}
	if got := b.frames[len(b.frames)-2].Text; got != "0.0002 BTC" {
		t.Errorf("fees frame text = %q, want the new fee", got)
	}
}

func TestSourceClosed(t *testing.T) {
	b := newBackend()
	close(b.events)
	s := NewSession(b, b)

	_, err := s.WarnExternalInputs(context.Background())
	if !IsCancelled(err) || !errors.Is(err, ErrSourceClosed) {
		t.Errorf("error = %v, want ErrCancelled wrapping ErrSourceClosed", err)
	}
}

func TestRenderFailureIsInfrastructure(t *testing.T) {
	b := newBackend()
	b.err = errors.New("panel unplugged")
	s := NewSession(b, b)

	_, err := s.WarnNondefaultSighash(context.Background())
	if !IsInfrastructureError(err) {
		t.Fatalf("error = %v, want InfrastructureError", err)
	}
	if !errors.Is(err, b.err) {
		t.Errorf("error = %v, want it to wrap the render error", err)
	}
}

func TestReviewOutput(t *testing.T) {
	b := newBackend(append(repeat(next, 3), activate)...)
	s := NewSession(b, b)

	res, err := s.ReviewOutput(context.Background(), 1, true, "0.5 BTC", "bc1qexample")
	if err != nil {
		t.Fatalf("ReviewOutput() error: %v", err)
	}
	if !res.Approved {
		t.Error("Approved = false")
	}

	want := []string{"Output #2", "0.5 BTC", "bc1qexample"}
	for i, text := range want {
		if b.frames[i].Text != text {
			t.Errorf("frame %d text = %q, want %q", i, b.frames[i].Text, text)
		}
	}
}

func TestCosignerPubkey(t *testing.T) {
	b := newBackend(next, activate)
	s := NewSession(b, b)

	res, err := s.CosignerPubkey(context.Background(), 0, true, "tpubD6...")
	if err != nil {
		t.Fatalf("CosignerPubkey() error: %v", err)
	}
	if !res.Approved {
		t.Error("Approved = false")
	}
	if got := b.frames[0]; got.Title != "Key @0, ours" || got.Text != "tpubD6..." {
		t.Errorf("cosigner frame = %+v", got)
	}
}

func TestConfirmNilFlow(t *testing.T) {
	b := newBackend()
	s := NewSession(b, b)

	if _, err := s.Confirm(context.Background(), nil); err == nil {
		t.Error("Confirm(nil) returned no error")
	}
}

func TestInputBeforeStartIsDiscarded(t *testing.T) {
	// Enough to approve display_pubkey if it reached the flow.
	b := newBackend(append(repeat(next, 4), activate)...)
	b.press(append(repeat(next, 3), activate)...)
	s := NewSession(b, b)

	res, err := s.DisplayPubkey(context.Background(), "m/0", "xpub", false)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if res.Approved {
		t.Error("Approved = true, queued input answered the request")
	}
	if b.flushes != 1 {
		t.Errorf("Flush() called %d times, want 1", b.flushes)
	}
	if len(b.frames) != 5 {
		t.Errorf("rendered %d frames, want 5", len(b.frames))
	}
}

// channelSource is an event source without a Flush method.
type channelSource chan constants.Event

func (c channelSource) Events() <-chan constants.Event {
	return c
}

func TestInputBeforeStartIsDiscardedWithoutFlusher(t *testing.T) {
	src := make(channelSource, 16)
	for _, ev := range append(repeat(next, 3), activate) {
		src <- ev
	}

	rendered := 0
	renderer := navigator.RendererFunc(func(constants.Layout, flow.Content) error {
		rendered++
		if rendered == 1 {
			src <- activate // ignored on the display step
			for _, ev := range append(repeat(next, 4), activate) {
				src <- ev
			}
		}
		return nil
	})

	res, err := NewSession(renderer, src).DisplayPubkey(context.Background(), "m/0", "xpub", false)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if res.Approved {
		t.Error("Approved = true, queued input answered the request")
	}
}

func TestSequentialRequestsOnOneBackend(t *testing.T) {
	b := newBackend(append(repeat(next, 3), activate)...)
	s := NewSession(b, b)

	first, err := s.DisplayPubkey(context.Background(), "m/0", "xpub", false)
	if err != nil {
		t.Fatalf("first request error: %v", err)
	}
	if !first.Approved {
		t.Fatal("first request not approved")
	}

	// The user keeps pressing after answering, then the host sends the
	// transaction. Only presses made while it is shown may answer it.
	b.press(next, next, activate, activate)
	b.script(next, next, next, activate)

	second, err := s.AcceptTransaction(context.Background(), "0.001 BTC")
	if err != nil {
		t.Fatalf("second request error: %v", err)
	}
	if second.Approved {
		t.Error("second request approved by input made before it was shown")
	}

	// display_pubkey showed 4 frames; accept_transaction shows all 4 of its steps.
	if len(b.frames) != 8 {
		t.Errorf("rendered %d frames, want 8", len(b.frames))
	}
	if got := b.frames[4].Title; got != "Confirm" {
		t.Errorf("second request opened on %q, want its first step", got)
	}
}
