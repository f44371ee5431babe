package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bran/ddsolve/internal/bench"
)

func TestUpdateTracksCompletedDeals(t *testing.T) {
	m := New(3)

	for i := 0; i < 3; i++ {
		updated, cmd := m.Update(DealDoneMsg{Index: i, Result: bench.DealResult{}})
		m = updated.(Model)
		if cmd != nil {
			t.Fatalf("Update(DealDoneMsg) returned a non-nil cmd at step %d", i)
		}
	}

	if m.completed != 3 {
		t.Fatalf("completed = %d, want 3", m.completed)
	}
	if len(m.Results()) != 3 {
		t.Fatalf("len(Results()) = %d, want 3", len(m.Results()))
	}
}

func TestUpdateQuitsOnBatchDone(t *testing.T) {
	m := New(1)
	_, cmd := m.Update(BatchDoneMsg{})
	if cmd == nil {
		t.Fatal("Update(BatchDoneMsg) cmd = nil, want tea.Quit")
	}
}

func TestUpdateQuitsOnCtrlC(t *testing.T) {
	m := New(1)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Update(ctrl+c) cmd = nil, want tea.Quit")
	}
}

func TestViewRendersWithoutPanicking(t *testing.T) {
	m := New(2)
	m, _ = update(m, DealDoneMsg{Index: 0, Result: bench.DealResult{}})
	if v := m.View(); v == "" {
		t.Fatal("View() returned an empty string")
	}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}
