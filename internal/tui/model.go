// Package tui implements the interactive proof exploration views.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/selection"
	"github.com/proofdeck/lemma/internal/core/styles"
	"github.com/proofdeck/lemma/internal/core/typeset"
	"github.com/proofdeck/lemma/internal/data/stores"
)

// ViewType represents which view is active.
type ViewType int

const (
	ViewProof ViewType = iota
	ViewGraph
)

// String returns the lowercase name of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewProof:
		return "proof"
	case ViewGraph:
		return "graph"
	default:
		return "unknown"
	}
}

type engineReadyMsg struct {
	err error
}

type sessionSavedMsg struct {
	err error
}

// Model is the root Bubble Tea model. The graph and selection manager are
// injected; the model owns no global state.
type Model struct {
	theme      styles.Theme
	engine     *typeset.Engine
	graph      *discovery.Graph
	selections *selection.Manager
	store      *stores.SessionStore
	sessionID  string
	log        zerolog.Logger

	view    ViewType
	proof   *ProofController
	graphv  *graphView
	offset  int // first proof row shown
	status  string
	ready   bool
	width   int
	height  int
	mouseOn bool
}

// Options configures a new Model.
type Options struct {
	Theme      styles.Theme
	Engine     *typeset.Engine
	Graph      *discovery.Graph
	Selections *selection.Manager
	Store      *stores.SessionStore
	SessionID  string
	Mouse      bool
	Log        zerolog.Logger
}

// New creates the root model. The proof rows are built immediately without
// formula artwork; they are rebuilt with compiled formulas once the engine
// reports ready.
func New(opts Options) *Model {
	m := &Model{
		theme:      opts.Theme,
		engine:     opts.Engine,
		graph:      opts.Graph,
		selections: opts.Selections,
		store:      opts.Store,
		sessionID:  opts.SessionID,
		log:        opts.Log,
		proof:      NewProofController(nil),
		graphv:     newGraphView(opts.Theme),
		mouseOn:    opts.Mouse,
		status:     "typesetting engine warming up",
	}
	m.proof.SetState(m.graph.Current().State)
	return m
}

// Init waits for the engine's one-time readiness signal.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		<-m.engine.Ready()
		return engineReadyMsg{err: m.engine.Err()}
	}
}

// Update handles input and internal messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.graphv.resize(msg.Width, msg.Height-2)
		return m, nil

	case engineReadyMsg:
		if msg.err != nil {
			m.status = "engine failed: " + msg.err.Error()
			m.log.Error().Err(msg.err).Msg("typesetting engine unavailable")
			return m, nil
		}
		m.ready = true
		m.status = "engine ready"
		m.proof = NewProofController(m.engine.Compile)
		m.proof.SetState(m.graph.Current().State)
		return m, nil

	case sessionSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "session saved"
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The move form captures all input while open.
	if m.view == ViewGraph && m.graphv.formOpen() {
		cmd, committed := m.graphv.updateForm(msg)
		if committed != nil {
			m.applyTransition(*committed)
		}
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.view == ViewProof {
			m.view = ViewGraph
			m.graphv.sync(m.graph)
		} else {
			m.view = ViewProof
		}
		return m, nil
	case "s":
		return m, m.saveCmd()
	}

	switch m.view {
	case ViewProof:
		return m.handleProofKey(msg)
	case ViewGraph:
		return m.handleGraphKey(msg)
	}
	return m, nil
}

func (m *Model) handleProofKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.proof.MoveCursor(1)
	case "k", "up":
		m.proof.MoveCursor(-1)
	case "enter", " ":
		m.toggleCursorSelection()
	case "c":
		m.selections.ClearForProofState(m.graph.CurrentID())
		m.status = "cleared selections for this node"
	case "C":
		m.selections.ClearAll()
		m.status = "cleared all selections"
	}
	m.clampOffset()
	return m, nil
}

func (m *Model) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.graphv.moveCursor(1)
	case "k", "up":
		m.graphv.moveCursor(-1)
	case "f", "enter":
		if id, ok := m.graphv.cursorNode(); ok {
			if err := m.graph.Focus(id); err != nil {
				m.status = err.Error()
				break
			}
			m.proof.SetState(m.graph.Current().State)
			m.status = fmt.Sprintf("focused node %d", id)
			m.graphv.sync(m.graph)
		}
	case "t":
		m.graphv.openForm()
	case "F":
		m.graph.Finish()
		m.graphv.sync(m.graph)
		m.status = "marked solved"
	}
	return m, nil
}

// applyTransition records a move from the current node. The new snapshot
// reuses the current node's state: statement editing happens outside the
// session and lands via repair.
func (m *Model) applyTransition(move discovery.Move) {
	state := m.graph.Current().State
	if err := m.graph.Transition(move, state); err != nil {
		m.status = err.Error()
		return
	}
	m.proof.SetState(m.graph.Current().State)
	m.graphv.sync(m.graph)
	m.status = fmt.Sprintf("%s move to node %d", move.Kind, m.graph.CurrentID())
}

func (m *Model) toggleCursorSelection() {
	i := m.proof.Cursor()
	row, ok := m.proof.RowAt(i)
	if !ok || !row.Selectable() {
		return
	}
	sel := selection.Selection{
		ProofNodeID: m.graph.CurrentID(),
		Location:    row.Location,
		Address:     row.Address,
		Payload:     selection.StatementPayload{Statement: row.Stmt},
	}
	m.selections.Toggle(sel)
	m.log.Debug().
		Str("location", row.Location.Label).
		Str("address", row.Address.String()).
		Bool("active", m.selections.Contains(sel)).
		Msg("toggled selection")
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouseOn || m.view != ViewProof || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	rowIdx := msg.Y - proofHeaderLines + m.offset
	row, ok := m.proof.RowAt(rowIdx)
	if !ok {
		return m, nil
	}

	// Region columns index into the row text, which renders after the
	// cursor gutter.
	payload, hit := HitTestRow(row, msg.X-gutterWidth)
	if !hit {
		return m, nil
	}
	loc := row.Location
	if row.Kind == RowVariable {
		// Clicks land inside the variable's description, not on its name.
		loc.Kind = selection.LocationVariableBody
	}
	m.selections.Toggle(selection.Selection{
		ProofNodeID: m.graph.CurrentID(),
		Location:    loc,
		Address:     row.Address,
		Payload:     payload,
	})
	m.status = fmt.Sprintf("toggled %q", payload.Ref.Text)
	return m, nil
}

func (m *Model) saveCmd() tea.Cmd {
	if m.store == nil || m.sessionID == "" {
		m.status = "no session to save"
		return nil
	}
	snap := m.graph.Snapshot()
	id := m.sessionID
	store := m.store
	return func() tea.Msg {
		return sessionSavedMsg{err: store.Save(context.Background(), id, snap)}
	}
}

func (m *Model) clampOffset() {
	visible := m.height - proofHeaderLines - 1
	if visible < 1 {
		return
	}
	cur := m.proof.cursor
	if cur < m.offset {
		m.offset = cur
	}
	if cur >= m.offset+visible {
		m.offset = cur - visible + 1
	}
}
