package tui

import (
	"fmt"
	"strings"

	"github.com/proofdeck/lemma/internal/core/selection"
	"github.com/proofdeck/lemma/internal/core/statement"
	"github.com/proofdeck/lemma/internal/core/typeset"
)

// RowKind classifies rendered proof rows.
type RowKind int

const (
	RowContextHeader RowKind = iota
	RowSectionHeader
	RowVariable
	RowStatement
)

// FormulaRegion is a formula sub-string of a rendered row, with the column
// range it occupies and its compiled artwork boxes. Clicks inside the region
// are hit-tested against the compiled sub-expression boxes.
type FormulaRegion struct {
	Index    int // formula index within the atomic statement
	Source   string
	StartCol int // rune columns within the row text, end exclusive
	EndCol   int
	Compiled *typeset.Result
	Err      string // compile error message, local to this formula
}

// Row is one line of the proof view. Statement rows carry the location and
// address needed to mint selections.
type Row struct {
	Kind     RowKind
	Depth    int
	Text     string
	Location selection.Location
	Address  statement.Address
	Stmt     statement.Statement
	Formulas []FormulaRegion
}

// Selectable reports whether the cursor can rest on the row.
func (r Row) Selectable() bool {
	return r.Kind == RowStatement || r.Kind == RowVariable
}

// CompileFunc compiles one formula. The engine's Compile satisfies it; tests
// substitute a stub.
type CompileFunc func(src string) (typeset.Result, error)

// ProofController builds and owns the flattened row list for one proof-state
// snapshot. It contains pure data logic with no Bubble Tea dependencies.
type ProofController struct {
	rows    []Row
	cursor  int
	compile CompileFunc
}

// NewProofController creates a controller that compiles formulas with fn.
// A nil fn disables formula compilation (regions report not-ready).
func NewProofController(fn CompileFunc) *ProofController {
	return &ProofController{compile: fn}
}

// SetState rebuilds the rows from a proof-state snapshot. Addresses are
// minted fresh on every rebuild; they are positional, never cached across
// edits.
func (c *ProofController) SetState(ps statement.ProofState) {
	c.rows = c.buildRows(ps)
	if c.cursor >= len(c.rows) {
		c.cursor = 0
	}
	c.snapCursor(1)
}

// Rows returns the current row list.
func (c *ProofController) Rows() []Row {
	return c.rows
}

// Cursor returns the index of the row under the cursor, -1 when there are no
// selectable rows.
func (c *ProofController) Cursor() int {
	if len(c.rows) == 0 || !c.rows[c.cursor].Selectable() {
		return -1
	}
	return c.cursor
}

// MoveCursor advances the cursor to the next selectable row in the given
// direction (+1 or -1), staying put at the ends.
func (c *ProofController) MoveCursor(dir int) {
	i := c.cursor + dir
	for i >= 0 && i < len(c.rows) {
		if c.rows[i].Selectable() {
			c.cursor = i
			return
		}
		i += dir
	}
}

// snapCursor moves the cursor to the nearest selectable row in dir if it is
// not on one already.
func (c *ProofController) snapCursor(dir int) {
	if len(c.rows) == 0 {
		c.cursor = 0
		return
	}
	if c.rows[c.cursor].Selectable() {
		return
	}
	c.MoveCursor(dir)
}

// RowAt returns the row at a display index.
func (c *ProofController) RowAt(i int) (Row, bool) {
	if i < 0 || i >= len(c.rows) {
		return Row{}, false
	}
	return c.rows[i], true
}

func (c *ProofController) buildRows(ps statement.ProofState) []Row {
	var rows []Row
	for ctxIdx, pctx := range ps {
		rows = append(rows, Row{
			Kind: RowContextHeader,
			Text: fmt.Sprintf("context %d", ctxIdx+1),
		})

		if len(pctx.Variables) > 0 {
			rows = append(rows, Row{Kind: RowSectionHeader, Text: "variables"})
			for _, v := range pctx.Variables {
				rows = append(rows, c.variableRow(v))
			}
		}
		if len(pctx.Hypotheses) > 0 {
			rows = append(rows, Row{Kind: RowSectionHeader, Text: "hypotheses"})
			for _, h := range pctx.Hypotheses {
				loc := selection.Location{Kind: selection.LocationHypothesis, Label: h.Label}
				rows = append(rows, c.statementRows(loc, h.Statement)...)
			}
		}
		if len(pctx.Goals) > 0 {
			rows = append(rows, Row{Kind: RowSectionHeader, Text: "goals"})
			for _, g := range pctx.Goals {
				loc := selection.Location{Kind: selection.LocationGoal, Label: g.Label}
				rows = append(rows, c.statementRows(loc, g.Statement)...)
			}
		}
	}
	return rows
}

func (c *ProofController) variableRow(v statement.ContextVariable) Row {
	label := fmt.Sprintf("%s (%s)", v.Variable.Name, v.Kind)
	text, regions := c.renderAtomic(v.Variable.Description, runeLen(label)+runeLen(" : "))
	if v.Kind == statement.VariableLet {
		text += " := " + string(v.Value)
	}
	return Row{
		Kind:     RowVariable,
		Text:     label + " : " + text,
		Location: selection.Location{Kind: selection.LocationVariable, Label: v.Variable.Name},
		Stmt:     &statement.Atomic{Text: v.Variable.Description},
		Formulas: regions,
	}
}

// statementRows flattens a statement tree into one row per node, depth-first,
// minting an address for each.
func (c *ProofController) statementRows(loc selection.Location, root statement.Statement) []Row {
	var rows []Row
	var rec func(addr statement.Address, s statement.Statement, depth int)
	rec = func(addr statement.Address, s statement.Statement, depth int) {
		row := Row{
			Kind:     RowStatement,
			Depth:    depth,
			Location: loc,
			Address:  addr.Clone(),
			Stmt:     s,
		}
		prefix := loc.Label + ": "
		if len(addr) > 0 {
			prefix = ""
		}
		indent := strings.Repeat("  ", depth)
		head := indent + prefix

		switch n := s.(type) {
		case *statement.Atomic:
			text, regions := c.renderAtomic(n.Text, runeLen(head))
			row.Text = head + text
			row.Formulas = regions
		case *statement.Conjunction:
			row.Text = head + fmt.Sprintf("and (%d)", len(n.Operands))
		case *statement.Disjunction:
			row.Text = head + fmt.Sprintf("or (%d)", len(n.Operands))
		case *statement.Negation:
			row.Text = head + "not"
		case *statement.Implication:
			row.Text = head + "implies"
		case *statement.Equivalence:
			row.Text = head + "iff"
		case *statement.Universal:
			// The binder's name and description follow as child rows.
			row.Text = head + "for all"
		case *statement.Existential:
			row.Text = head + "exists"
		case *statement.Highlight:
			row.Text = head + "highlight"
		}

		rows = append(rows, row)
		for _, child := range statement.Children(s) {
			rec(addr.Child(child.Coordinate), child.Statement, depth+1)
		}
	}
	rec(statement.Address{}, root, 0)
	return rows
}

// renderAtomic flattens atomic text into a display string and records the
// column range of every formula segment, compiling each for hit-testing.
// startCol is the rune offset the text begins at within the final row.
func (c *ProofController) renderAtomic(text statement.AtomicText, startCol int) (string, []FormulaRegion) {
	var b strings.Builder
	var regions []FormulaRegion
	col := startCol
	formulaIdx := 0

	for _, seg := range text.Segments() {
		if seg.Kind == statement.SegmentText {
			b.WriteString(seg.Content)
			col += runeLen(seg.Content)
			continue
		}

		region := FormulaRegion{
			Index:    formulaIdx,
			Source:   seg.Content,
			StartCol: col,
			EndCol:   col + runeLen(seg.Content),
		}
		if c.compile != nil {
			res, err := c.compile(seg.Content)
			if err != nil {
				region.Err = err.Error()
			} else {
				region.Compiled = &res
			}
		}
		regions = append(regions, region)

		b.WriteString(seg.Content)
		col = region.EndCol
		formulaIdx++
	}
	return b.String(), regions
}

func runeLen(s string) int {
	return len([]rune(s))
}
