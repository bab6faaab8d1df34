package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/styles"
)

func newTestGraphView(t *testing.T) *graphView {
	t.Helper()
	palette, _ := styles.GetPalette("plain")
	return newGraphView(styles.NewTheme(palette))
}

func TestEdgeLine_NamesThePeer(t *testing.T) {
	g := newTestGraphView(t)
	move := discovery.Move{Description: "step"}

	directed := discovery.Edge{From: 0, To: 1, Move: move}
	assert.Contains(t, g.edgeLine(0, directed), "-> node 1")
	assert.Contains(t, g.edgeLine(1, directed), "<- node 0")

	// An undirected edge names the opposite endpoint under either node's
	// listing, never the node it is listed under.
	undirected := discovery.Edge{From: 0, To: 1, Undirected: true, Move: move}
	assert.Contains(t, g.edgeLine(0, undirected), "<-> node 1")
	assert.Contains(t, g.edgeLine(1, undirected), "<-> node 0")
}

func TestGraphView_EquivalenceListing(t *testing.T) {
	graph := discovery.New()
	graph.Initialize("p", testState(t))
	require.NoError(t, graph.Transition(
		discovery.Move{Kind: discovery.MoveEquivalence, Description: "rewrite"},
		testState(t),
	))

	g := newTestGraphView(t)
	g.sync(graph)
	out := g.render()

	// One listing per endpoint, each naming the peer.
	assert.Equal(t, 1, strings.Count(out, "<-> node 1"), "listing under node 0")
	assert.Equal(t, 1, strings.Count(out, "<-> node 0"), "listing under node 1")
}
