package simulator

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
)

func TestMain(m *testing.M) {
	internal.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func drain(ch chan constants.Event) []constants.Event {
	var out []constants.Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestModelForwardsKeys(t *testing.T) {
	events := make(chan constants.Event, queueSize)
	m := newModel(16, 3, events)
	m.Update(frameMsg{layout: constants.LayoutIconButton, content: flow.Content{Icon: constants.IconValidate, Title: "Approve"}})

	for _, k := range []string{"right", "left", "enter", "l", "h", "x"} {
		m.Update(key(k))
	}

	got := drain(events)
	want := []constants.Event{
		constants.EventNext, constants.EventPrevious, constants.EventActivate,
		constants.EventNext, constants.EventPrevious,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i].GetName(), want[i].GetName())
		}
	}
}

func TestModelViewShowsStep(t *testing.T) {
	m := newModel(16, 3, make(chan constants.Event, 1))
	m.Update(frameMsg{
		layout:  constants.LayoutIconTwoLines,
		content: flow.Content{Icon: constants.IconEye, Title: "Confirm", Text: "transaction"},
	})

	view := m.View()
	for _, want := range []string{constants.IconEye.Glyph(), "Confirm", "transaction"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() does not contain %q:\n%s", want, view)
		}
	}
}

func TestModelPagesBeforeForwarding(t *testing.T) {
	events := make(chan constants.Event, queueSize)
	m := newModel(16, 3, events)
	m.Update(frameMsg{
		layout:  constants.LayoutPaging,
		content: flow.Content{Title: "Address", Text: strings.Repeat("a", 100)},
	})

	if view := m.View(); !strings.Contains(view, "Address (1/3)") {
		t.Fatalf("View() missing first page header:\n%s", view)
	}

	m.Update(key("right"))
	if got := drain(events); len(got) != 0 {
		t.Errorf("page turn reached the navigator: %v", got)
	}
	if view := m.View(); !strings.Contains(view, "Address (2/3)") {
		t.Errorf("View() after right missing second page header:\n%s", view)
	}

	m.Update(key("left"))
	m.Update(key("left"))
	if got := drain(events); len(got) != 1 || got[0] != constants.EventPrevious {
		t.Errorf("events = %v, want one Previous after the first page", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(16, 3, make(chan constants.Event, 1))

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelFinished(t *testing.T) {
	events := make(chan constants.Event, 1)
	m := newModel(16, 3, events)
	m.Update(reportMsg{line: "accept_transaction: approved"})
	m.Update(doneMsg{})

	if view := m.View(); !strings.Contains(view, "accept_transaction: approved") {
		t.Errorf("View() missing report line:\n%s", view)
	}

	_, cmd := m.Update(key("right"))
	if cmd == nil {
		t.Fatal("key after finish returned no command")
	}
	if got := drain(events); len(got) != 0 {
		t.Errorf("events after finish = %v, want none", got)
	}
}

func TestModelLogIsBounded(t *testing.T) {
	m := newModel(16, 3, make(chan constants.Event, 1))
	for i := 0; i < maxLogLines+3; i++ {
		m.Update(reportMsg{line: "line"})
	}
	if len(m.log) != maxLogLines {
		t.Errorf("log length = %d, want %d", len(m.log), maxLogLines)
	}
}

func TestModelIgnoresKeysAfterFlush(t *testing.T) {
	events := make(chan constants.Event, queueSize)
	m := newModel(16, 3, events)
	m.Update(frameMsg{layout: constants.LayoutIconButton, content: flow.Content{Title: "Approve"}})
	m.Update(flushMsg{})

	m.Update(key("right"))
	m.Update(key("enter"))
	if got := drain(events); len(got) != 0 {
		t.Errorf("events between flush and frame = %v, want none", got)
	}

	m.Update(frameMsg{layout: constants.LayoutIconButton, content: flow.Content{Title: "Confirm public key"}})
	m.Update(key("right"))
	if got := drain(events); len(got) != 1 || got[0] != constants.EventNext {
		t.Errorf("events after frame = %v, want one Next", got)
	}
}

// modelBackend runs a session against the model without a terminal. keys
// are typed once the first step of the request is on screen.
type modelBackend struct {
	m      *model
	events chan constants.Event
	titles []string
	keys   []string
}

func (b *modelBackend) Render(layout constants.Layout, content flow.Content) error {
	b.m.Update(frameMsg{layout: layout, content: content})
	b.titles = append(b.titles, content.Title)
	if len(b.titles) == 1 {
		for _, k := range b.keys {
			b.m.Update(key(k))
		}
	}
	return nil
}

func (b *modelBackend) Events() <-chan constants.Event { return b.events }

func (b *modelBackend) Flush() { b.m.Update(flushMsg{}) }

func TestKeysTypedBeforeRequestDoNotAnswerIt(t *testing.T) {
	events := make(chan constants.Event, queueSize)
	b := &modelBackend{
		m:      newModel(16, 3, events),
		events: events,
		keys:   []string{"right", "right", "right", "right", "enter"},
	}

	// The approve step of an earlier request is still on screen.
	b.m.Update(frameMsg{layout: constants.LayoutIconButton, content: flow.Content{Title: "Approve"}})
	for _, k := range []string{"right", "right", "right", "enter"} {
		b.m.Update(key(k))
	}

	res, err := confirmflow.NewSession(b, b).DisplayPubkey(context.Background(), "m/0", "xpub", false)
	if err != nil {
		t.Fatalf("DisplayPubkey() error: %v", err)
	}
	if res.Approved {
		t.Errorf("Approved = true, keys typed before the request answered it (frames %q)", b.titles)
	}
	if len(b.titles) != 5 {
		t.Errorf("frames = %q, want all five steps", b.titles)
	}
}
