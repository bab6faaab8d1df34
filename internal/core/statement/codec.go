package statement

import (
	"encoding/json"
	"fmt"
)

// node is the wire form of a statement tree. Kind discriminates the concrete
// type; only the fields that kind uses are populated.
type node struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Binder   *varWire `json:"binder,omitempty"`
	Children []*node  `json:"children,omitempty"`
}

type varWire struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func toWire(s Statement) *node {
	switch n := s.(type) {
	case *Atomic:
		return &node{Kind: "atomic", Text: string(n.Text)}
	case *Conjunction:
		return &node{Kind: "conjunction", Children: childWires(n.Operands)}
	case *Disjunction:
		return &node{Kind: "disjunction", Children: childWires(n.Operands)}
	case *Negation:
		return &node{Kind: "negation", Children: childWires([]Statement{n.Body})}
	case *Implication:
		return &node{Kind: "implication", Children: childWires([]Statement{n.Antecedent, n.Consequent})}
	case *Equivalence:
		return &node{Kind: "equivalence", Children: childWires([]Statement{n.Left, n.Right})}
	case *Universal:
		return &node{
			Kind:     "universal",
			Binder:   &varWire{Name: n.Binder.Name, Description: string(n.Binder.Description)},
			Children: childWires([]Statement{n.Body}),
		}
	case *Existential:
		return &node{
			Kind:     "existential",
			Binder:   &varWire{Name: n.Binder.Name, Description: string(n.Binder.Description)},
			Children: childWires([]Statement{n.Body}),
		}
	case *Highlight:
		return &node{Kind: "highlight", Children: childWires([]Statement{n.Body})}
	}
	panic("statement: unknown statement type")
}

func childWires(stmts []Statement) []*node {
	out := make([]*node, len(stmts))
	for i, s := range stmts {
		out[i] = toWire(s)
	}
	return out
}

func fromWire(n *node) (Statement, error) {
	children := func(want int) ([]Statement, error) {
		if want >= 0 && len(n.Children) != want {
			return nil, fmt.Errorf("statement kind %q: want %d children, have %d", n.Kind, want, len(n.Children))
		}
		out := make([]Statement, len(n.Children))
		for i, c := range n.Children {
			s, err := fromWire(c)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	}
	binder := func() Variable {
		if n.Binder == nil {
			return Variable{}
		}
		return Variable{Name: n.Binder.Name, Description: AtomicText(n.Binder.Description)}
	}

	switch n.Kind {
	case "atomic":
		return &Atomic{Text: AtomicText(n.Text)}, nil
	case "conjunction":
		kids, err := children(-1)
		if err != nil {
			return nil, err
		}
		return &Conjunction{Operands: kids}, nil
	case "disjunction":
		kids, err := children(-1)
		if err != nil {
			return nil, err
		}
		return &Disjunction{Operands: kids}, nil
	case "negation":
		kids, err := children(1)
		if err != nil {
			return nil, err
		}
		return &Negation{Body: kids[0]}, nil
	case "implication":
		kids, err := children(2)
		if err != nil {
			return nil, err
		}
		return &Implication{Antecedent: kids[0], Consequent: kids[1]}, nil
	case "equivalence":
		kids, err := children(2)
		if err != nil {
			return nil, err
		}
		return &Equivalence{Left: kids[0], Right: kids[1]}, nil
	case "universal":
		kids, err := children(1)
		if err != nil {
			return nil, err
		}
		return &Universal{Binder: binder(), Body: kids[0]}, nil
	case "existential":
		kids, err := children(1)
		if err != nil {
			return nil, err
		}
		return &Existential{Binder: binder(), Body: kids[0]}, nil
	case "highlight":
		kids, err := children(1)
		if err != nil {
			return nil, err
		}
		return &Highlight{Body: kids[0]}, nil
	default:
		return nil, fmt.Errorf("statement: unknown kind %q", n.Kind)
	}
}

// MarshalJSON encodes the labelled statement with a kind-discriminated tree.
func (l LabelledStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label     string `json:"label"`
		Statement *node  `json:"statement"`
	}{Label: l.Label, Statement: toWire(l.Statement)})
}

// UnmarshalJSON decodes a labelled statement.
func (l *LabelledStatement) UnmarshalJSON(data []byte) error {
	var wire struct {
		Label     string `json:"label"`
		Statement *node  `json:"statement"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Statement == nil {
		return fmt.Errorf("labelled statement %q: missing statement", wire.Label)
	}
	s, err := fromWire(wire.Statement)
	if err != nil {
		return err
	}
	l.Label = wire.Label
	l.Statement = s
	return nil
}
