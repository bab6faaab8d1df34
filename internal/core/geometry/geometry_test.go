package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/geometry"
)

func box(x, y, w, h float64) geometry.SubExpression {
	return geometry.SubExpression{Box: geometry.Rect{X: x, Y: y, Width: w, Height: h}}
}

func TestRectContains_InclusiveEdges(t *testing.T) {
	r := geometry.Rect{X: 1, Y: 1, Width: 4, Height: 4}

	assert.True(t, r.Contains(1, 1))
	assert.True(t, r.Contains(5, 5))
	assert.True(t, r.Contains(3, 1))
	assert.False(t, r.Contains(0.99, 3))
	assert.False(t, r.Contains(3, 5.01))
}

func TestHitTest_SmallestEnclosing(t *testing.T) {
	subs := []geometry.SubExpression{
		box(0, 0, 10, 10), // A: whole formula
		box(2, 2, 4, 4),   // B: nested inside A
	}

	idx, ok := geometry.HitTest(subs, 4, 4)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "nested box wins by smaller area")

	idx, ok = geometry.HitTest(subs, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 0, idx, "point inside outer box only")

	_, ok = geometry.HitTest(subs, 20, 20)
	assert.False(t, ok, "point outside every box")
}

func TestHitTest_TieKeepsFirst(t *testing.T) {
	subs := []geometry.SubExpression{
		box(0, 0, 2, 2),
		box(0, 0, 2, 2),
	}

	idx, ok := geometry.HitTest(subs, 1, 1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestHitTest_Empty(t *testing.T) {
	_, ok := geometry.HitTest(nil, 0, 0)
	assert.False(t, ok)
}

func TestViewportMapping(t *testing.T) {
	// Formula viewport 0,0 100x50 rendered into screen rect 10,20 200x100:
	// uniform downscale by 2 per axis after removing the screen offset.
	v := geometry.Viewport{Origin: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 50}}
	tr := v.Mapping(geometry.Rect{X: 10, Y: 20, Width: 200, Height: 100})

	fx, fy := tr.Apply(10, 20)
	assert.InDelta(t, 0, fx, 1e-9)
	assert.InDelta(t, 0, fy, 1e-9)

	fx, fy = tr.Apply(210, 120)
	assert.InDelta(t, 100, fx, 1e-9)
	assert.InDelta(t, 50, fy, 1e-9)

	fx, fy = tr.Apply(110, 70)
	assert.InDelta(t, 50, fx, 1e-9)
	assert.InDelta(t, 25, fy, 1e-9)
}

func TestViewportMapping_NonUniformAndOffsetOrigin(t *testing.T) {
	v := geometry.Viewport{Origin: geometry.Rect{X: 5, Y: -10, Width: 10, Height: 40}}
	tr := v.Mapping(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 20})

	fx, fy := tr.Apply(0, 0)
	assert.InDelta(t, 5, fx, 1e-9)
	assert.InDelta(t, -10, fy, 1e-9)

	fx, fy = tr.Apply(50, 10)
	assert.InDelta(t, 10, fx, 1e-9)
	assert.InDelta(t, 10, fy, 1e-9)
}

func TestViewportMapping_DegenerateScreen(t *testing.T) {
	v := geometry.Viewport{Origin: geometry.Rect{Width: 10, Height: 10}}
	tr := v.Mapping(geometry.Rect{})

	fx, fy := tr.Apply(3, 4)
	assert.InDelta(t, 3, fx, 1e-9)
	assert.InDelta(t, 4, fy, 1e-9)
}

func TestRectUnion(t *testing.T) {
	a := geometry.Rect{X: 0, Y: 0, Width: 2, Height: 2}
	b := geometry.Rect{X: 3, Y: -1, Width: 1, Height: 2}

	u := a.Union(b)
	assert.Equal(t, geometry.Rect{X: 0, Y: -1, Width: 4, Height: 3}, u)
}
