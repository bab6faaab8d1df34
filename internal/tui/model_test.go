package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/selection"
	"github.com/proofdeck/lemma/internal/core/styles"
	"github.com/proofdeck/lemma/internal/core/typeset"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	graph := discovery.New()
	graph.Initialize("show something", testState(t))

	palette, _ := styles.GetPalette(styles.DefaultTheme)

	m := New(Options{
		Theme:      styles.NewTheme(palette),
		Engine:     typeset.NewEngine(typeset.DefaultFontSize, zerolog.Nop()),
		Graph:      graph,
		Selections: selection.NewManager(),
		Mouse:      true,
		Log:        zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ToggleSelection(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("enter"))
	assert.Equal(t, 1, m.selections.Len())

	// Same row toggles back off.
	m.Update(key("enter"))
	assert.Equal(t, 0, m.selections.Len())
}

func TestModel_ClearSelections(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("enter"))
	m.Update(key("j"))
	m.Update(key("enter"))
	require.Equal(t, 2, m.selections.Len())

	m.Update(key("C"))
	assert.Equal(t, 0, m.selections.Len())
}

func TestModel_ViewToggle(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, ViewProof, m.view)

	m.Update(key("tab"))
	assert.Equal(t, ViewGraph, m.view)

	m.Update(key("tab"))
	assert.Equal(t, ViewProof, m.view)
}

func TestModel_TransitionForm(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("tab"))

	m.Update(key("t"))
	require.True(t, m.graphv.formOpen())

	// Cycle kind once (strengthening -> weakening), type a description,
	// and commit.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "split" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(key("enter"))

	assert.False(t, m.graphv.formOpen())
	assert.Equal(t, 2, m.graph.Len())
	assert.Equal(t, 1, m.graph.CurrentID())

	edges := m.graph.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, discovery.MoveWeakening, edges[0].Move.Kind)
	assert.Equal(t, "split", edges[0].Move.Description)
	// Weakening points away from the state it weakens.
	assert.Equal(t, 0, edges[0].From)
	assert.Equal(t, 1, edges[0].To)
}

func TestModel_FocusNode(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.graph.Transition(
		discovery.Move{Kind: discovery.MoveEquivalence, Description: "rewrite"},
		testState(t),
	))
	require.Equal(t, 1, m.graph.CurrentID())

	m.Update(key("tab"))
	m.Update(key("f")) // cursor starts on node 0
	assert.Equal(t, 0, m.graph.CurrentID())
}

func TestModel_Finish(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("tab"))
	m.Update(key("F"))
	assert.True(t, m.graph.Solved())
}

func TestModel_MouseSubExpression(t *testing.T) {
	m := newTestModel(t)
	m.ready = true
	m.proof = NewProofController(stubCompile)
	m.proof.SetState(m.graph.Current().State)

	// Find the goal row and click inside its formula region.
	rows := m.proof.Rows()
	var rowIdx int
	var region FormulaRegion
	for i, r := range rows {
		if len(r.Formulas) > 0 && r.Kind == RowStatement {
			rowIdx = i
			region = r.Formulas[0]
			break
		}
	}
	require.NotNil(t, region.Compiled)

	// The formula's first character renders after the cursor gutter.
	m.Update(tea.MouseMsg{
		X:      region.StartCol + gutterWidth,
		Y:      rowIdx + proofHeaderLines,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
	require.Equal(t, 1, m.selections.Len())

	payload, ok := m.selections.Items()[0].Payload.(selection.SubExpressionPayload)
	require.True(t, ok)
	assert.Equal(t, region.Source, payload.Ref.Text)
}

func TestModel_MouseGutterOffset(t *testing.T) {
	m := newTestModel(t)
	m.ready = true
	m.proof = NewProofController(stubCompile)
	m.proof.SetState(m.graph.Current().State)

	rows := m.proof.Rows()
	var rowIdx int
	var region FormulaRegion
	for i, r := range rows {
		if len(r.Formulas) > 0 && r.Kind == RowStatement {
			rowIdx = i
			region = r.Formulas[0]
			break
		}
	}
	require.NotNil(t, region.Compiled)

	click := func(x int) {
		m.Update(tea.MouseMsg{
			X:      x,
			Y:      rowIdx + proofHeaderLines,
			Action: tea.MouseActionRelease,
			Button: tea.MouseButtonLeft,
		})
	}

	// A click on the formula's last visible character still lands inside
	// the region.
	click(region.EndCol - 1 + gutterWidth)
	assert.Equal(t, 1, m.selections.Len())

	// A click gutterWidth cells left of the formula is over the preceding
	// text, not the formula.
	click(region.StartCol)
	assert.Equal(t, 1, m.selections.Len(), "unadjusted column must not select")
}

func TestModel_ViewRenders(t *testing.T) {
	m := newTestModel(t)

	out := m.View()
	assert.Contains(t, out, "show something")
	assert.Contains(t, out, "context 1")

	m.Update(key("tab"))
	out = m.View()
	assert.Contains(t, out, "node 0")
}
