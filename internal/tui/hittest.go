package tui

import (
	"github.com/proofdeck/lemma/internal/core/geometry"
	"github.com/proofdeck/lemma/internal/core/selection"
)

// HitTestRow maps a click at a rune column of a row into a sub-expression
// payload. The formula region occupies a one-cell-high rectangle of columns
// on screen; the click is mapped through the region's viewport into the
// formula's intrinsic space and tested against its sub-expression boxes.
// ok is false when the column is outside every compiled formula region or
// no box contains the mapped point.
func HitTestRow(row Row, col int) (selection.SubExpressionPayload, bool) {
	for _, region := range row.Formulas {
		if col < region.StartCol || col >= region.EndCol || region.Compiled == nil {
			continue
		}

		screen := geometry.Rect{
			X:      float64(region.StartCol),
			Y:      0,
			Width:  float64(region.EndCol - region.StartCol),
			Height: 1,
		}
		tr := region.Compiled.Viewport.Mapping(screen)
		// Aim at the cell centre.
		fx, fy := tr.Apply(float64(col)+0.5, 0.5)

		idx, ok := geometry.HitTest(region.Compiled.Subexpressions, fx, fy)
		if !ok {
			return selection.SubExpressionPayload{}, false
		}
		sub := region.Compiled.Subexpressions[idx]
		return selection.SubExpressionPayload{Ref: geometry.SubExpressionRef{
			SubExpressionCore: sub.SubExpressionCore,
			FormulaIndex:      region.Index,
		}}, true
	}
	return selection.SubExpressionPayload{}, false
}
