package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/styles"
)

// moveKinds is the cycle order of the transition form's kind field.
var moveKinds = []discovery.MoveKind{
	discovery.MoveStrengthening,
	discovery.MoveWeakening,
	discovery.MoveEquivalence,
	discovery.MoveOther,
}

// graphView renders the discovery graph as a node list with its incident
// moves. It holds a local cursor independent of the graph's current node.
type graphView struct {
	theme  styles.Theme
	vp     viewport.Model
	cursor int

	nodes   []discovery.Node
	edges   []discovery.Edge
	current int
	solved  bool
	problem string

	form    bool
	kindIdx int
	descIn  textinput.Model
}

func newGraphView(theme styles.Theme) *graphView {
	in := textinput.New()
	in.Placeholder = "describe the move"
	in.CharLimit = 120
	return &graphView{
		theme:  theme,
		vp:     viewport.New(80, 20),
		descIn: in,
	}
}

func (g *graphView) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.vp.Width = w
	g.vp.Height = h
}

// sync copies the graph's nodes and edges into the view.
func (g *graphView) sync(graph *discovery.Graph) {
	g.nodes = graph.Nodes()
	g.edges = graph.Edges()
	g.current = graph.CurrentID()
	g.solved = graph.Solved()
	g.problem = graph.Statement()
	if g.cursor >= len(g.nodes) {
		g.cursor = len(g.nodes) - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

func (g *graphView) moveCursor(dir int) {
	next := g.cursor + dir
	if next >= 0 && next < len(g.nodes) {
		g.cursor = next
	}
}

// cursorNode returns the node id under the cursor.
func (g *graphView) cursorNode() (int, bool) {
	if g.cursor < 0 || g.cursor >= len(g.nodes) {
		return 0, false
	}
	return g.nodes[g.cursor].ID, true
}

func (g *graphView) formOpen() bool {
	return g.form
}

func (g *graphView) openForm() {
	g.form = true
	g.kindIdx = 0
	g.descIn.SetValue("")
	g.descIn.Focus()
}

// updateForm routes a key to the open form. It returns a non-nil move when
// the form is committed.
func (g *graphView) updateForm(msg tea.KeyMsg) (tea.Cmd, *discovery.Move) {
	switch msg.String() {
	case "esc":
		g.form = false
		g.descIn.Blur()
		return nil, nil
	case "ctrl+k", "shift+tab":
		g.kindIdx = (g.kindIdx + len(moveKinds) - 1) % len(moveKinds)
		return nil, nil
	case "ctrl+j", "tab":
		g.kindIdx = (g.kindIdx + 1) % len(moveKinds)
		return nil, nil
	case "enter":
		g.form = false
		g.descIn.Blur()
		move := discovery.Move{
			Kind:        moveKinds[g.kindIdx],
			Description: strings.TrimSpace(g.descIn.Value()),
		}
		return nil, &move
	}

	var cmd tea.Cmd
	g.descIn, cmd = g.descIn.Update(msg)
	return cmd, nil
}

// render draws the node list, its edges, and the form when open.
func (g *graphView) render() string {
	var b strings.Builder

	header := g.problem
	if g.solved {
		header += "  " + g.theme.Solved.Render("solved")
	}
	b.WriteString(g.theme.Title.Render(header))
	b.WriteString("\n\n")

	for i, node := range g.nodes {
		marker := "  "
		if node.ID == g.current {
			marker = g.theme.Current.Render("* ")
		}
		line := fmt.Sprintf("%snode %d", marker, node.ID)
		if i == g.cursor {
			line = g.theme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		for _, e := range g.edges {
			if e.From != node.ID && e.To != node.ID {
				continue
			}
			b.WriteString("    " + g.edgeLine(node.ID, e) + "\n")
		}
	}

	if g.form {
		b.WriteString("\n")
		b.WriteString(g.theme.Label.Render("kind: "))
		b.WriteString(moveKinds[g.kindIdx].String())
		b.WriteString(g.theme.Muted.Render("  (tab to cycle)"))
		b.WriteString("\n")
		b.WriteString(g.theme.Label.Render("move: "))
		b.WriteString(g.descIn.View())
		b.WriteString("\n")
		b.WriteString(g.theme.Muted.Render("enter to record, esc to cancel"))
		b.WriteString("\n")
	}

	g.vp.SetContent(b.String())
	return g.vp.View()
}

// edgeLine formats one edge from the perspective of node id.
func (g *graphView) edgeLine(id int, e discovery.Edge) string {
	arrow := "->"
	other := e.To
	if e.Undirected {
		arrow = "<->"
		if e.To == id {
			other = e.From
		}
	} else if e.To == id {
		arrow = "<-"
		other = e.From
	}

	line := fmt.Sprintf("%s node %d  %s", arrow, other, e.Move.Description)
	if e.Move.Kind == discovery.MoveOther {
		return g.theme.DimmedEdge.Render(line)
	}
	return line
}
