// Package tui is a small Bubble Tea program that shows live progress
// while a benchmark batch solves, adapted from the teacher's journey-dot
// progress component into a single completed/in-flight/pending gauge.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bran/ddsolve/internal/bench"
)

var (
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27AE60"))
	inFlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498DB")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#95A5A6"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

// DealDoneMsg reports that one deal finished solving.
type DealDoneMsg struct {
	Index  int
	Result bench.DealResult
}

// BatchDoneMsg reports that every deal has finished.
type BatchDoneMsg struct{}

// Model is the Bubble Tea model for a running batch solve.
type Model struct {
	total     int
	completed int
	started   time.Time
	results   []bench.DealResult
	done      bool
}

// New builds a Model that expects total deals to complete.
func New(total int) Model {
	return Model{total: total, started: time.Now(), results: make([]bench.DealResult, 0, total)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case DealDoneMsg:
		m.completed++
		m.results = append(m.results, msg.Result)
	case BatchDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("solving %d deals", m.total)))
	b.WriteString("\n\n")
	b.WriteString(m.gauge())
	b.WriteString(fmt.Sprintf("\n\n%d/%d complete, elapsed %s\n", m.completed, m.total, time.Since(m.started).Round(time.Millisecond)))
	if m.done {
		b.WriteString("\ndone.\n")
	}
	return b.String()
}

// gauge renders one dot per deal: green for complete, blue for the one
// currently in flight, gray for pending.
func (m Model) gauge() string {
	var b strings.Builder
	for i := 0; i < m.total; i++ {
		switch {
		case i < m.completed:
			b.WriteString(completedStyle.Render("●"))
		case i == m.completed:
			b.WriteString(inFlightStyle.Render("●"))
		default:
			b.WriteString(pendingStyle.Render("○"))
		}
	}
	return b.String()
}

// Results returns every DealResult recorded so far, in completion order.
func (m Model) Results() []bench.DealResult { return m.results }
