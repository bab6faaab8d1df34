package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/geometry"
	"github.com/proofdeck/lemma/internal/core/typeset"
)

// hitRow builds a row with one compiled formula region spanning columns
// [10, 15) whose artwork is 100x20 with two nested boxes: the whole formula
// and a tighter box over its left half.
func hitRow() Row {
	res := typeset.Result{
		Subexpressions: []geometry.SubExpression{
			{
				SubExpressionCore: geometry.SubExpressionCore{Text: "a + b", SourceStart: 0, SourceEnd: 5},
				Box:               geometry.Rect{X: 0, Y: 0, Width: 100, Height: 20},
				GlyphRuns:         3,
			},
			{
				SubExpressionCore: geometry.SubExpressionCore{Text: "a", SourceStart: 0, SourceEnd: 1},
				Box:               geometry.Rect{X: 0, Y: 0, Width: 40, Height: 20},
				GlyphRuns:         1,
			},
		},
		Viewport: geometry.Viewport{Origin: geometry.Rect{Width: 100, Height: 20}},
	}
	return Row{
		Kind: RowStatement,
		Text: "h: before a + b after",
		Formulas: []FormulaRegion{{
			Index:    2,
			Source:   "a + b",
			StartCol: 10,
			EndCol:   15,
			Compiled: &res,
		}},
	}
}

func TestHitTestRow(t *testing.T) {
	row := hitRow()

	// Column 10 is the leftmost cell: its centre maps to x=10, inside the
	// tighter box over "a".
	payload, ok := HitTestRow(row, 10)
	require.True(t, ok)
	assert.Equal(t, "a", payload.Ref.Text)
	assert.Equal(t, 0, payload.Ref.SourceStart)
	assert.Equal(t, 1, payload.Ref.SourceEnd)
	assert.Equal(t, 2, payload.Ref.FormulaIndex)

	// Column 13 maps past the tighter box, landing on the whole formula.
	payload, ok = HitTestRow(row, 13)
	require.True(t, ok)
	assert.Equal(t, "a + b", payload.Ref.Text)
}

func TestHitTestRow_OutsideRegion(t *testing.T) {
	row := hitRow()

	_, ok := HitTestRow(row, 3)
	assert.False(t, ok)

	_, ok = HitTestRow(row, 15)
	assert.False(t, ok, "end column is exclusive")
}

func TestHitTestRow_UncompiledRegion(t *testing.T) {
	row := hitRow()
	row.Formulas[0].Compiled = nil

	_, ok := HitTestRow(row, 12)
	assert.False(t, ok)
}

func TestHitTestRow_NoFormulas(t *testing.T) {
	_, ok := HitTestRow(Row{Kind: RowStatement, Text: "plain"}, 2)
	assert.False(t, ok)
}
