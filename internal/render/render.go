// Package render formats solved deals for the CLI surface (spec §6):
// compact columnar rows or one-field-per-line labeled output, styled with
// the same lipgloss palette the teacher's TUI theme uses.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bran/ddsolve/internal/bench"
	"github.com/bran/ddsolve/internal/notation"
)

// Theme holds the lipgloss styles used by the CLI's compact and labeled
// output modes.
type Theme struct {
	Header lipgloss.Style
	Trump  lipgloss.Style
	Tricks lipgloss.Style
	Muted  lipgloss.Style
}

// Default returns the palette used unless output is redirected to a
// non-terminal, in which case lipgloss already strips styling.
func Default() Theme {
	return Theme{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498DB")),
		Trump:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9B59B6")),
		Tricks: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#27AE60")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#95A5A6")),
	}
}

// CompactHeader returns the header row for CompactRow's columns.
func (t Theme) CompactHeader() string {
	return t.Header.Render(fmt.Sprintf("%-6s %-4s %-6s %-10s %s", "trumps", "seat", "tricks", "elapsed", "hands"))
}

// CompactRow formats one DealResult as a single columnar line: trumps,
// seat, tricks, elapsed, hands (spec §6).
func (t Theme) CompactRow(d bench.DealResult) string {
	return fmt.Sprintf("%-6s %-4s %-6s %-10s %s",
		t.Trump.Render(d.Input.Trump.String()),
		d.Input.LeadSeat,
		t.Tricks.Render(fmt.Sprintf("%d", d.Result.TricksNS)),
		d.Elapsed.Round(1_000_000),
		notation.FormatHands(d.Input.Hands),
	)
}

// Labeled formats one DealResult as one field per line.
func (t Theme) Labeled(d bench.DealResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", t.Header.Render("trump:"), d.Input.Trump)
	fmt.Fprintf(&b, "%s %s\n", t.Header.Render("lead:"), d.Input.LeadSeat)
	fmt.Fprintf(&b, "%s %s\n", t.Header.Render("hands:"), notation.FormatHands(d.Input.Hands))
	fmt.Fprintf(&b, "%s %s\n", t.Header.Render("tricks_ns:"), t.Tricks.Render(fmt.Sprintf("%d", d.Result.TricksNS)))
	fmt.Fprintf(&b, "%s %s\n", t.Header.Render("elapsed:"), d.Elapsed)
	fmt.Fprintf(&b, "%s %s\n", t.Muted.Render("nodes_explored:"), fmt.Sprintf("%d", d.Stats.NodesExplored))
	fmt.Fprintf(&b, "%s %s\n", t.Muted.Render("tpn_entries:"), fmt.Sprintf("%d", d.Stats.TPN.Entries))
	fmt.Fprintf(&b, "%s %s\n", t.Muted.Render("tpn_buckets:"), fmt.Sprintf("%d", d.Stats.TPN.Buckets))
	fmt.Fprintf(&b, "%s %s\n", t.Muted.Render("tpn_lookup_hits:"), fmt.Sprintf("%d", d.Stats.TPN.LookupHits))
	fmt.Fprintf(&b, "%s %s\n", t.Muted.Render("tpn_lookup_misses:"), fmt.Sprintf("%d", d.Stats.TPN.LookupMisses))
	if len(d.Result.PV) > 0 {
		fmt.Fprintf(&b, "%s", t.Header.Render("pv:"))
		for _, c := range d.Result.PV {
			fmt.Fprintf(&b, " %s", notation.FormatCard(c))
		}
		b.WriteString("\n")
	}
	return b.String()
}
