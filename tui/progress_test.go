package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelAccumulatesAdvances(t *testing.T) {
	var m tea.Model = NewModel("gif encode", "in.mp4", 10)
	m, _ = m.Update(advanceMsg(2.5))
	m, _ = m.Update(advanceMsg(2.5))

	state := m.(Model).State()
	if state.Current != 5 {
		t.Fatalf("expected 5s, got %v", state.Current)
	}
	if state.Percent() != 0.5 {
		t.Fatalf("expected 50%%, got %v", state.Percent())
	}
	if !strings.Contains(m.View(), "50%") {
		t.Fatalf("expected view to show 50%%, got %q", m.View())
	}
}

func TestModelQuitsOnFinish(t *testing.T) {
	var m tea.Model = NewModel("trim", "in.mp4", 10)
	m, cmd := m.Update(finishMsg{ok: false})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	state := m.(Model).State()
	if !state.Done || state.OK {
		t.Fatalf("unexpected final state %+v", state)
	}
	if !strings.Contains(m.View(), "Failed") {
		t.Fatalf("expected failure marker in view, got %q", m.View())
	}
}

func TestIndicatorRunsAndFinishes(t *testing.T) {
	var out bytes.Buffer
	ind := NewIndicator(&out, "gif encode", "in.mp4", 4)
	ind.Advance(1)
	ind.Advance(3)

	done := make(chan struct{})
	go func() {
		ind.Finish(true)
		ind.Finish(true)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Finish did not return")
	}
	if !strings.Contains(out.String(), "Done") {
		t.Fatalf("expected final view in output, got %q", out.String())
	}
}
