package statement

import (
	"fmt"
	"strings"
)

// CoordKind identifies which edge of a parent statement a coordinate follows.
// The kind encodes the parent's type, so a conjunct coordinate can never be
// equal to a disjunct coordinate even at the same index.
type CoordKind int

const (
	CoordConjunct CoordKind = iota // indexed
	CoordDisjunct                  // indexed
	CoordNegationBody
	CoordAntecedent
	CoordConsequent
	CoordEquivalenceLeft
	CoordEquivalenceRight
	CoordUniversalVar
	CoordUniversalVarType
	CoordUniversalBody
	CoordExistentialVar
	CoordExistentialVarType
	CoordExistentialBody
	CoordHighlightBody
)

// String returns a short stable name used in logs and serialized addresses.
func (k CoordKind) String() string {
	switch k {
	case CoordConjunct:
		return "conjunct"
	case CoordDisjunct:
		return "disjunct"
	case CoordNegationBody:
		return "negation"
	case CoordAntecedent:
		return "antecedent"
	case CoordConsequent:
		return "consequent"
	case CoordEquivalenceLeft:
		return "equivalence_left"
	case CoordEquivalenceRight:
		return "equivalence_right"
	case CoordUniversalVar:
		return "universal_var"
	case CoordUniversalVarType:
		return "universal_var_type"
	case CoordUniversalBody:
		return "universal_body"
	case CoordExistentialVar:
		return "existential_var"
	case CoordExistentialVarType:
		return "existential_var_type"
	case CoordExistentialBody:
		return "existential_body"
	case CoordHighlightBody:
		return "highlight"
	default:
		return "unknown"
	}
}

// indexed reports whether the kind carries a meaningful index.
func (k CoordKind) indexed() bool {
	return k == CoordConjunct || k == CoordDisjunct
}

// Coordinate is one edge label on the path from a statement to one of its
// immediate children. Index is only meaningful for indexed kinds and is zero
// otherwise.
type Coordinate struct {
	Kind  CoordKind
	Index int
}

// Equal reports structural coordinate equality: kinds must match, and for
// indexed kinds the indices must match too.
func (c Coordinate) Equal(o Coordinate) bool {
	if c.Kind != o.Kind {
		return false
	}
	if c.Kind.indexed() {
		return c.Index == o.Index
	}
	return true
}

// String renders the coordinate for logs, e.g. "conjunct[2]" or "negation".
func (c Coordinate) String() string {
	if c.Kind.indexed() {
		return fmt.Sprintf("%s[%d]", c.Kind, c.Index)
	}
	return c.Kind.String()
}

// Address is an ordered path of coordinates from a context-local root
// statement to one of its sub-statements. The empty address denotes the root
// itself.
//
// Addresses are purely positional and are recomputed on every traversal. If
// the underlying tree is edited so that structure shifts (say a conjunct is
// inserted before index 2), a previously stored address silently refers to a
// different node afterwards. That is an accepted property of the scheme, not
// something callers should try to compensate for.
type Address []Coordinate

// Equal reports order-sensitive structural equality: same length and
// pairwise-equal coordinates. Two addresses reaching equal sub-statements
// along different paths are never equal.
func (a Address) Equal(b Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	out := make(Address, len(a))
	copy(out, a)
	return out
}

// Child returns a new address extended by one coordinate. The receiver is
// not modified and does not share backing storage with the result.
func (a Address) Child(c Coordinate) Address {
	out := make(Address, len(a)+1)
	copy(out, a)
	out[len(a)] = c
	return out
}

// String renders the address as a slash-joined path, "/" for the root.
func (a Address) String() string {
	if len(a) == 0 {
		return "/"
	}
	parts := make([]string, len(a))
	for i, c := range a {
		parts[i] = c.String()
	}
	return "/" + strings.Join(parts, "/")
}
