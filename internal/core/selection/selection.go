// Package selection tracks the set of active selections across every
// rendered proof state. A selection identifies one addressable part of one
// statement tree: either the whole sub-statement at an address, or a
// sub-expression slice inside one of its rendered formulas.
package selection

import (
	"github.com/proofdeck/lemma/internal/core/geometry"
	"github.com/proofdeck/lemma/internal/core/statement"
)

// LocationKind names which slot of a proof context a statement tree sits in.
type LocationKind int

const (
	LocationVariable LocationKind = iota
	LocationVariableBody
	LocationHypothesis
	LocationGoal
)

// String returns the lowercase name of the location kind.
func (k LocationKind) String() string {
	switch k {
	case LocationVariable:
		return "variable"
	case LocationVariableBody:
		return "variable_body"
	case LocationHypothesis:
		return "hypothesis"
	case LocationGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Location identifies a named slot of a proof context.
type Location struct {
	Kind  LocationKind
	Label string
}

// Equal reports equality of both fields.
func (l Location) Equal(o Location) bool {
	return l.Kind == o.Kind && l.Label == o.Label
}

// Payload is what was selected at an address: either a whole statement or a
// sub-expression slice. Exactly one of the two implementations exists.
type Payload interface {
	isPayload()
}

// StatementPayload selects the whole sub-statement at the address.
type StatementPayload struct {
	Statement statement.Statement
}

// SubExpressionPayload selects a slice of one rendered formula.
type SubExpressionPayload struct {
	Ref geometry.SubExpressionRef
}

func (StatementPayload) isPayload()     {}
func (SubExpressionPayload) isPayload() {}

// Selection is one active selection, keyed by proof node, slot, and address.
type Selection struct {
	ProofNodeID int
	Location    Location
	Address     statement.Address
	Payload     Payload
}

// Equal implements the selection identity rule. Proof node, location and
// address always participate. Payloads are compared only when both sides are
// sub-expression payloads (text, source range and formula index must match).
// When either side selects a whole statement the payload is ignored, so at
// most one whole-statement selection can exist per address: an address
// denotes "the selection at this tree position", not a specific value.
func (s Selection) Equal(o Selection) bool {
	if s.ProofNodeID != o.ProofNodeID {
		return false
	}
	if !s.Location.Equal(o.Location) {
		return false
	}
	if !s.Address.Equal(o.Address) {
		return false
	}

	sp, sOK := s.Payload.(SubExpressionPayload)
	op, oOK := o.Payload.(SubExpressionPayload)
	if sOK && oOK {
		return sp.Ref.Text == op.Ref.Text &&
			sp.Ref.SourceStart == op.Ref.SourceStart &&
			sp.Ref.SourceEnd == op.Ref.SourceEnd &&
			sp.Ref.FormulaIndex == op.Ref.FormulaIndex
	}
	return true
}
