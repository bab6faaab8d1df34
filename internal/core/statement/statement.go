// Package statement defines the recursive statement tree that proof states
// are built from, together with the positional addressing scheme used to
// identify sub-statements across renders.
package statement

// Statement is a node in the logical formula tree. The set of implementations
// is closed: consumers switch exhaustively over the concrete types below and
// treat an unknown type as a programming error.
type Statement interface {
	isStatement()
}

// Atomic is free text that may embed formula sub-strings delimited by '$'.
type Atomic struct {
	Text AtomicText
}

// Conjunction is an ordered sequence of conjuncts. Zero operands is legal.
type Conjunction struct {
	Operands []Statement
}

// Disjunction is an ordered sequence of disjuncts. Zero operands is legal.
type Disjunction struct {
	Operands []Statement
}

// Negation wraps a single child statement.
type Negation struct {
	Body Statement
}

// Implication is antecedent => consequent.
type Implication struct {
	Antecedent Statement
	Consequent Statement
}

// Equivalence is left <=> right.
type Equivalence struct {
	Left  Statement
	Right Statement
}

// Universal quantifies Body over Binder.
type Universal struct {
	Binder Variable
	Body   Statement
}

// Existential quantifies Body over Binder.
type Existential struct {
	Binder Variable
	Body   Statement
}

// Highlight wraps exactly one child. It is a display annotation only and
// carries no logical meaning.
type Highlight struct {
	Body Statement
}

func (*Atomic) isStatement()      {}
func (*Conjunction) isStatement() {}
func (*Disjunction) isStatement() {}
func (*Negation) isStatement()    {}
func (*Implication) isStatement() {}
func (*Equivalence) isStatement() {}
func (*Universal) isStatement()   {}
func (*Existential) isStatement() {}
func (*Highlight) isStatement()   {}

// Variable is a named binder with a free-text description.
type Variable struct {
	Name        string
	Description AtomicText
}

// VariableKind tags a context variable.
type VariableKind int

const (
	VariableFree VariableKind = iota
	VariableMeta
	VariableLet
)

// String returns the lowercase name of the variable kind.
func (k VariableKind) String() string {
	switch k {
	case VariableFree:
		return "free"
	case VariableMeta:
		return "meta"
	case VariableLet:
		return "let"
	default:
		return "unknown"
	}
}

// ContextVariable is a variable as it appears in a proof context. Value is
// only meaningful when Kind is VariableLet.
type ContextVariable struct {
	Variable Variable
	Kind     VariableKind
	Value    AtomicText
}

// LabelledStatement pairs a statement with a label unique within its list.
type LabelledStatement struct {
	Label     string
	Statement Statement
}

// Context groups the variables, hypotheses and goals of one proof context.
type Context struct {
	Variables  []ContextVariable
	Hypotheses []LabelledStatement
	Goals      []LabelledStatement
}

// ProofState is an ordered sequence of contexts. Index order is semantic: it
// is the order in which contexts must be discharged.
type ProofState []Context

// Child pairs an immediate child statement with the coordinate that reaches
// it from the parent.
type Child struct {
	Statement  Statement
	Coordinate Coordinate
}

// Children enumerates the immediate statement children of s in canonical
// field order. Addresses derived from repeated traversals are identical
// because the order is fixed per concrete type.
//
// Quantifier binders are addressable too: the binder's name and description
// are enumerated as atomic children ahead of the body. These atoms are
// synthesized per call, so they are value-equal but not pointer-identical
// across traversals.
func Children(s Statement) []Child {
	switch n := s.(type) {
	case *Atomic:
		return nil
	case *Conjunction:
		out := make([]Child, len(n.Operands))
		for i, op := range n.Operands {
			out[i] = Child{op, Coordinate{Kind: CoordConjunct, Index: i}}
		}
		return out
	case *Disjunction:
		out := make([]Child, len(n.Operands))
		for i, op := range n.Operands {
			out[i] = Child{op, Coordinate{Kind: CoordDisjunct, Index: i}}
		}
		return out
	case *Negation:
		return []Child{{n.Body, Coordinate{Kind: CoordNegationBody}}}
	case *Implication:
		return []Child{
			{n.Antecedent, Coordinate{Kind: CoordAntecedent}},
			{n.Consequent, Coordinate{Kind: CoordConsequent}},
		}
	case *Equivalence:
		return []Child{
			{n.Left, Coordinate{Kind: CoordEquivalenceLeft}},
			{n.Right, Coordinate{Kind: CoordEquivalenceRight}},
		}
	case *Universal:
		return []Child{
			{&Atomic{Text: AtomicText(n.Binder.Name)}, Coordinate{Kind: CoordUniversalVar}},
			{&Atomic{Text: n.Binder.Description}, Coordinate{Kind: CoordUniversalVarType}},
			{n.Body, Coordinate{Kind: CoordUniversalBody}},
		}
	case *Existential:
		return []Child{
			{&Atomic{Text: AtomicText(n.Binder.Name)}, Coordinate{Kind: CoordExistentialVar}},
			{&Atomic{Text: n.Binder.Description}, Coordinate{Kind: CoordExistentialVarType}},
			{n.Body, Coordinate{Kind: CoordExistentialBody}},
		}
	case *Highlight:
		return []Child{{n.Body, Coordinate{Kind: CoordHighlightBody}}}
	}
	panic("statement: unknown statement type")
}

// Walk visits s and every descendant in depth-first order, passing the
// address of each node relative to s. The address slice is only valid for
// the duration of the call; callers that retain it must copy it.
func Walk(s Statement, fn func(addr Address, s Statement)) {
	var rec func(addr Address, s Statement)
	rec = func(addr Address, s Statement) {
		fn(addr, s)
		for _, c := range Children(s) {
			rec(append(addr, c.Coordinate), c.Statement)
		}
	}
	rec(Address{}, s)
}

// At resolves an address relative to root. The second return is false when
// the address walks off the tree, which happens when the tree was edited
// after the address was minted.
func At(root Statement, addr Address) (Statement, bool) {
	cur := root
	for _, coord := range addr {
		var next Statement
		for _, c := range Children(cur) {
			if c.Coordinate.Equal(coord) {
				next = c.Statement
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
