package discovery

import (
	"fmt"

	"github.com/proofdeck/lemma/internal/core/statement"
)

// Snapshot is the serializable form of a graph, used by the session store.
type Snapshot struct {
	Statement string         `json:"statement"`
	Nodes     []NodeSnapshot `json:"nodes"`
	Edges     []EdgeSnapshot `json:"edges"`
	CurrentID int            `json:"current_id"`
	Solved    bool           `json:"solved"`
}

// NodeSnapshot is the wire form of one node.
type NodeSnapshot struct {
	ID    int                  `json:"id"`
	State statement.ProofState `json:"state"`
}

// EdgeSnapshot is the wire form of one edge.
type EdgeSnapshot struct {
	From        int    `json:"from"`
	To          int    `json:"to"`
	Undirected  bool   `json:"undirected,omitempty"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

// Snapshot captures the graph for persistence.
func (g *Graph) Snapshot() Snapshot {
	snap := Snapshot{
		Statement: g.statement,
		CurrentID: g.current,
		Solved:    g.solved,
		Nodes:     make([]NodeSnapshot, len(g.nodes)),
		Edges:     make([]EdgeSnapshot, len(g.edges)),
	}
	for i, n := range g.nodes {
		snap.Nodes[i] = NodeSnapshot{ID: n.ID, State: n.State}
	}
	for i, e := range g.edges {
		snap.Edges[i] = EdgeSnapshot{
			From:        e.From,
			To:          e.To,
			Undirected:  e.Undirected,
			Kind:        e.Move.Kind.String(),
			Description: e.Move.Description,
		}
	}
	return snap
}

// Restore rebuilds a graph from a snapshot, replacing any existing contents.
func (g *Graph) Restore(snap Snapshot) error {
	if len(snap.Nodes) == 0 {
		return fmt.Errorf("restore: snapshot has no nodes")
	}
	if snap.CurrentID < 0 || snap.CurrentID >= len(snap.Nodes) {
		return fmt.Errorf("restore current node %d: %w", snap.CurrentID, ErrNoSuchNode)
	}

	nodes := make([]Node, len(snap.Nodes))
	for i, n := range snap.Nodes {
		if n.ID != i {
			return fmt.Errorf("restore: node ids must be dense, got %d at position %d", n.ID, i)
		}
		nodes[i] = Node{ID: n.ID, State: n.State}
	}

	edges := make([]Edge, len(snap.Edges))
	for i, e := range snap.Edges {
		kind, err := parseMoveKind(e.Kind)
		if err != nil {
			return fmt.Errorf("restore edge %d: %w", i, err)
		}
		if e.From < 0 || e.From >= len(nodes) || e.To < 0 || e.To >= len(nodes) {
			return fmt.Errorf("restore edge %d (%d->%d): %w", i, e.From, e.To, ErrNoSuchNode)
		}
		edges[i] = Edge{
			From:       e.From,
			To:         e.To,
			Undirected: e.Undirected,
			Move:       Move{Kind: kind, Description: e.Description},
		}
	}

	g.statement = snap.Statement
	g.nodes = nodes
	g.edges = edges
	g.current = snap.CurrentID
	g.solved = snap.Solved
	return nil
}

func parseMoveKind(s string) (MoveKind, error) {
	switch s {
	case "strengthening":
		return MoveStrengthening, nil
	case "weakening":
		return MoveWeakening, nil
	case "equivalence":
		return MoveEquivalence, nil
	case "other":
		return MoveOther, nil
	default:
		return 0, fmt.Errorf("unknown move kind %q", s)
	}
}
