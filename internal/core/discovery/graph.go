// Package discovery tracks exploratory proof editing as a graph of
// proof-state snapshots linked by typed moves.
package discovery

import (
	"errors"
	"fmt"

	"github.com/proofdeck/lemma/internal/core/statement"
)

// ErrNoSuchNode is returned when an operation references a node id that was
// never allocated. The failed operation performs no partial mutation.
var ErrNoSuchNode = errors.New("discovery: no such node")

// MoveKind classifies the logical relation of an editing step.
type MoveKind int

const (
	// MoveStrengthening: the new state implies the prior one.
	MoveStrengthening MoveKind = iota
	// MoveWeakening: the prior state implies the new one.
	MoveWeakening
	// MoveEquivalence: the states are interderivable; the edge is undirected.
	MoveEquivalence
	// MoveOther: logical direction not asserted. Stored with its own kind so
	// downstream rendering can dim or dot the edge, but oriented like a
	// strengthening move.
	MoveOther
)

// String returns the lowercase name of the move kind.
func (k MoveKind) String() string {
	switch k {
	case MoveStrengthening:
		return "strengthening"
	case MoveWeakening:
		return "weakening"
	case MoveEquivalence:
		return "equivalence"
	case MoveOther:
		return "other"
	default:
		return "unknown"
	}
}

// Move labels an edge between two proof nodes.
type Move struct {
	Kind        MoveKind
	Description string
}

// Node is one proof-state snapshot. IDs are dense, 0-based and never reused;
// that is only safe because nodes are never removed.
type Node struct {
	ID    int
	State statement.ProofState
}

// Edge links two nodes. From/To carry the implication direction for directed
// edges; Undirected edges keep From as the older node for determinism but
// readers must treat the pair as unordered.
type Edge struct {
	From       int
	To         int
	Undirected bool
	Move       Move
}

// Graph is a single proof-exploration session: an append-only arena of
// proof-state snapshots plus the edges between them. The zero value is an
// empty graph that must be populated with Initialize before use.
//
// Graph is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
type Graph struct {
	statement string
	nodes     []Node
	edges     []Edge
	current   int
	solved    bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Initialize discards any existing graph contents and starts a fresh session:
// a single node with id 0 holding state, current node 0, unsolved. Calling it
// on a non-empty graph intentionally drops the previous exploration.
func (g *Graph) Initialize(problem string, state statement.ProofState) {
	g.statement = problem
	g.nodes = []Node{{ID: 0, State: state}}
	g.edges = nil
	g.current = 0
	g.solved = false
}

// Repair replaces the stored snapshot of an existing node in place. It is the
// only in-place mutation of graph data; the current node is unchanged.
func (g *Graph) Repair(nodeID int, state statement.ProofState) error {
	if !g.has(nodeID) {
		return fmt.Errorf("repair node %d: %w", nodeID, ErrNoSuchNode)
	}
	g.nodes[nodeID].State = state
	return nil
}

// Focus makes an existing node the current one.
func (g *Graph) Focus(nodeID int) error {
	if !g.has(nodeID) {
		return fmt.Errorf("focus node %d: %w", nodeID, ErrNoSuchNode)
	}
	g.current = nodeID
	return nil
}

// Transition appends a new node holding state and exactly one edge between it
// and the current node. Edge orientation follows the move kind:
//
//	strengthening  new -> current
//	weakening      current -> new
//	equivalence    undirected
//	other          new -> current
//
// The new node always becomes current.
func (g *Graph) Transition(move Move, state statement.ProofState) error {
	if len(g.nodes) == 0 {
		return fmt.Errorf("transition from node %d: %w", g.current, ErrNoSuchNode)
	}

	id := len(g.nodes)
	edge := Edge{Move: move}
	switch move.Kind {
	case MoveStrengthening, MoveOther:
		edge.From, edge.To = id, g.current
	case MoveWeakening:
		edge.From, edge.To = g.current, id
	case MoveEquivalence:
		edge.From, edge.To = g.current, id
		edge.Undirected = true
	default:
		return fmt.Errorf("transition: unknown move kind %d", move.Kind)
	}

	g.nodes = append(g.nodes, Node{ID: id, State: state})
	g.edges = append(g.edges, edge)
	g.current = id
	return nil
}

// Finish marks the session solved. The flag is terminal: nothing within a
// session resets it except Initialize starting a new one.
func (g *Graph) Finish() {
	g.solved = true
}

// Statement returns the natural-language problem statement.
func (g *Graph) Statement() string { return g.statement }

// Solved reports whether Finish has been called this session.
func (g *Graph) Solved() bool { return g.solved }

// CurrentID returns the id of the current node.
func (g *Graph) CurrentID() int { return g.current }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns a node by id.
func (g *Graph) Node(nodeID int) (Node, error) {
	if !g.has(nodeID) {
		return Node{}, fmt.Errorf("node %d: %w", nodeID, ErrNoSuchNode)
	}
	return g.nodes[nodeID], nil
}

// Current returns the current node. It panics if the graph is empty, which
// only happens before Initialize.
func (g *Graph) Current() Node {
	if len(g.nodes) == 0 {
		panic("discovery: Current on uninitialized graph")
	}
	return g.nodes[g.current]
}

// Nodes returns the nodes in id order. The slice is a copy; the states it
// references are shared.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgesOf returns the edges touching a node, in insertion order.
func (g *Graph) EdgesOf(nodeID int) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.From == nodeID || e.To == nodeID {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) has(nodeID int) bool {
	return nodeID >= 0 && nodeID < len(g.nodes)
}
