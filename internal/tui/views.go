package tui

import (
	"fmt"
	"strings"

	"github.com/proofdeck/lemma/internal/core/selection"
)

// proofHeaderLines is the number of lines rendered above the first proof row.
// Mouse hit-testing subtracts it to map screen rows to proof rows.
const proofHeaderLines = 2

// gutterWidth is the number of cells every proof row is prefixed with for the
// cursor marker. Mouse hit-testing subtracts it to map screen columns to row
// text columns.
const gutterWidth = 2

// View renders the active view plus a one-line status bar.
func (m *Model) View() string {
	var body string
	switch m.view {
	case ViewProof:
		body = m.renderProof()
	case ViewGraph:
		body = m.graphv.render()
	}
	return body + "\n" + m.renderStatus()
}

func (m *Model) renderProof() string {
	var b strings.Builder

	title := m.graph.Statement()
	if m.graph.Solved() {
		title += "  " + m.theme.Solved.Render("solved")
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")

	rows := m.proof.Rows()
	visible := m.height - proofHeaderLines - 1
	if visible < 1 || visible > len(rows) {
		visible = len(rows)
	}
	end := m.offset + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i, rows[i]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderRow(i int, row Row) string {
	var line string
	switch row.Kind {
	case RowContextHeader:
		line = m.theme.Title.Render(row.Text)
	case RowSectionHeader:
		line = m.theme.Muted.Render(row.Text)
	default:
		line = row.Text
		if m.isSelected(row) {
			line = m.theme.Highlight.Render(line)
		}
		for _, region := range row.Formulas {
			if region.Err != "" {
				line += "  " + m.theme.ErrorText.Render(region.Err)
			}
		}
	}

	// Keep the gutter exactly gutterWidth cells wide; hit-testing depends
	// on it.
	if i == m.proof.Cursor() {
		return m.theme.Selected.Render("> ") + line
	}
	return "  " + line
}

// isSelected reports whether the row's statement is selected, with any
// payload. Mixed-payload comparisons ignore the payload, so a probe with a
// whole-statement payload matches sub-expression selections too.
func (m *Model) isSelected(row Row) bool {
	return m.selections.Contains(selection.Selection{
		ProofNodeID: m.graph.CurrentID(),
		Location:    row.Location,
		Address:     row.Address,
		Payload:     selection.StatementPayload{Statement: row.Stmt},
	})
}

func (m *Model) renderStatus() string {
	help := "tab view  j/k move  enter select  s save  q quit"
	if m.view == ViewGraph {
		help = "tab view  j/k move  f focus  t move  F finish  s save  q quit"
	}
	left := m.theme.Muted.Render(help)
	right := fmt.Sprintf("%d selected  %s", m.selections.Len(), m.status)
	return left + "  " + m.theme.Label.Render(right)
}
