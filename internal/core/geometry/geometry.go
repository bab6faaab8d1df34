// Package geometry holds the sub-expression bounding-box records produced by
// the typesetting engine and the point hit-testing used to map pointer
// coordinates to the most specific enclosing sub-expression.
package geometry

// Rect is an axis-aligned box in a formula's intrinsic coordinate space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies inside the rect. Edges are
// inclusive on all four sides.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Area returns width * height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.X+r.Width, o.X+o.Width)
	y1 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// SubExpressionCore identifies a contiguous slice of one formula's source
// text. SourceStart and SourceEnd are byte offsets into that source with
// SourceStart < SourceEnd.
type SubExpressionCore struct {
	Text        string `json:"text"`
	SourceStart int    `json:"source_start"`
	SourceEnd   int    `json:"source_end"`
}

// SubExpression extends a core with the bounding box assigned by the
// typesetting engine, plus the number of glyph runs that contributed to it.
type SubExpression struct {
	SubExpressionCore
	Box       Rect `json:"box"`
	GlyphRuns int  `json:"glyph_runs"`
}

// SubExpressionRef locates a sub-expression within a containing atomic
// statement: the core slice plus which formula (0-based, in order of
// appearance) it belongs to.
type SubExpressionRef struct {
	SubExpressionCore
	FormulaIndex int `json:"formula_index"`
}

// HitTest returns the index of the box containing (x, y) with the smallest
// area. Boxes nest, so smallest-area approximates most-specific without the
// engine exposing parent/child structure. Ties keep the first occurrence.
// ok is false when no box contains the point.
func HitTest(subs []SubExpression, x, y float64) (idx int, ok bool) {
	best := -1
	for i, sub := range subs {
		if !sub.Box.Contains(x, y) {
			continue
		}
		if best < 0 || sub.Box.Area() < subs[best].Box.Area() {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// Viewport is a formula's declared logical coordinate system: the origin and
// size its sub-expression boxes are expressed in.
type Viewport struct {
	Origin Rect `json:"origin"` // Width/Height are the viewport extent
}

// Transform maps device coordinates into a formula's intrinsic space.
type Transform struct {
	offsetX, offsetY float64
	scaleX, scaleY   float64
}

// Mapping builds the affine map from an on-screen rectangle to the viewport.
// Scale may differ per axis; there is no rotation. A degenerate screen rect
// (zero width or height) yields an identity-scale transform anchored at the
// viewport origin so callers never divide by zero.
func (v Viewport) Mapping(screen Rect) Transform {
	t := Transform{
		offsetX: v.Origin.X,
		offsetY: v.Origin.Y,
		scaleX:  1,
		scaleY:  1,
	}
	if screen.Width > 0 {
		t.scaleX = v.Origin.Width / screen.Width
	}
	if screen.Height > 0 {
		t.scaleY = v.Origin.Height / screen.Height
	}
	t.offsetX -= screen.X * t.scaleX
	t.offsetY -= screen.Y * t.scaleY
	return t
}

// Apply converts a device-space point to formula space.
func (t Transform) Apply(sx, sy float64) (fx, fy float64) {
	return t.offsetX + sx*t.scaleX, t.offsetY + sy*t.scaleY
}
