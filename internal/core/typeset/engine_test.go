package typeset_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/geometry"
	"github.com/proofdeck/lemma/internal/core/typeset"
)

func newReadyEngine(t *testing.T) *typeset.Engine {
	t.Helper()
	e := typeset.NewEngine(typeset.DefaultFontSize, zerolog.Nop())
	select {
	case <-e.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("engine never became ready")
	}
	require.NoError(t, e.Err())
	return e
}

func findSub(t *testing.T, subs []geometry.SubExpression, text string) geometry.SubExpression {
	t.Helper()
	for _, s := range subs {
		if s.Text == text {
			return s
		}
	}
	t.Fatalf("no sub-expression with text %q in %v", text, subs)
	return geometry.SubExpression{}
}

func TestCompile_SimpleSum(t *testing.T) {
	e := newReadyEngine(t)

	res, err := e.Compile("a + b")
	require.NoError(t, err)

	// Whole formula plus both operands.
	whole := findSub(t, res.Subexpressions, "a + b")
	left := findSub(t, res.Subexpressions, "a")
	right := findSub(t, res.Subexpressions, "b")

	assert.Equal(t, 0, whole.SourceStart)
	assert.Equal(t, 5, whole.SourceEnd)
	assert.Equal(t, 0, left.SourceStart)
	assert.Equal(t, 1, left.SourceEnd)
	assert.Equal(t, 4, right.SourceStart)
	assert.Equal(t, 5, right.SourceEnd)

	// The whole-formula box encloses its operands and is strictly larger.
	assert.Less(t, left.Box.Area(), whole.Box.Area())
	assert.Less(t, right.Box.Area(), whole.Box.Area())
	assert.Less(t, left.Box.X+left.Box.Width, right.Box.X)
}

func TestCompile_HitTestFindsOperand(t *testing.T) {
	e := newReadyEngine(t)

	res, err := e.Compile("a + b")
	require.NoError(t, err)

	left := findSub(t, res.Subexpressions, "a")
	cx := left.Box.X + left.Box.Width/2
	cy := left.Box.Y + left.Box.Height/2

	idx, ok := geometry.HitTest(res.Subexpressions, cx, cy)
	require.True(t, ok)
	assert.Equal(t, "a", res.Subexpressions[idx].Text)
}

func TestCompile_FractionNests(t *testing.T) {
	e := newReadyEngine(t)

	res, err := e.Compile("(a+b)/c")
	require.NoError(t, err)

	frac := findSub(t, res.Subexpressions, "(a+b)/c")
	group := findSub(t, res.Subexpressions, "(a+b)")
	sum := findSub(t, res.Subexpressions, "a+b")
	denom := findSub(t, res.Subexpressions, "c")

	assert.Less(t, group.Box.Area(), frac.Box.Area())
	assert.Less(t, sum.Box.Area(), group.Box.Area())
	assert.Less(t, denom.Box.Area(), frac.Box.Area())
	assert.GreaterOrEqual(t, sum.GlyphRuns, 3)
}

func TestCompile_Superscript(t *testing.T) {
	e := newReadyEngine(t)

	res, err := e.Compile("x^2 + 1")
	require.NoError(t, err)

	base := findSub(t, res.Subexpressions, "x")
	sup := findSub(t, res.Subexpressions, "2")

	// Superscript sits above the base and uses the smaller face.
	assert.Less(t, sup.Box.Y, base.Box.Y)
	assert.Less(t, sup.Box.Height, base.Box.Height)
}

func TestCompile_ParseErrors(t *testing.T) {
	e := newReadyEngine(t)

	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"unbalanced paren", "(a + b"},
		{"dangling operator", "a +"},
		{"bad character", "a # b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Compile(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse error")
		})
	}
}

func TestCompile_ArtworkIsPNG(t *testing.T) {
	e := newReadyEngine(t)

	res, err := e.Compile("x = y")
	require.NoError(t, err)
	require.NotEmpty(t, res.Artwork)

	img, err := png.Decode(bytes.NewReader(res.Artwork))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.InDelta(t, res.Viewport.Origin.Width, float64(bounds.Dx()), 1)
	assert.InDelta(t, res.Viewport.Origin.Height, float64(bounds.Dy()), 1)

	// Every box stays inside the viewport.
	for _, sub := range res.Subexpressions {
		assert.GreaterOrEqual(t, sub.Box.X, 0.0)
		assert.GreaterOrEqual(t, sub.Box.Y, 0.0)
		assert.LessOrEqual(t, sub.Box.X+sub.Box.Width, res.Viewport.Origin.Width)
		assert.LessOrEqual(t, sub.Box.Y+sub.Box.Height, res.Viewport.Origin.Height)
	}
}

func TestCompile_BeforeReady(t *testing.T) {
	e := typeset.NewEngine(typeset.DefaultFontSize, zerolog.Nop())

	// Either the init goroutine hasn't finished (ErrNotReady) or it has and
	// compilation succeeds; both are legal, blocking is not.
	_, err := e.Compile("a")
	if err != nil {
		assert.ErrorIs(t, err, typeset.ErrNotReady)
	}
}

func TestCompile_Deterministic(t *testing.T) {
	e := newReadyEngine(t)

	first, err := e.Compile("a/b + c")
	require.NoError(t, err)
	second, err := e.Compile("a/b + c")
	require.NoError(t, err)

	assert.Equal(t, first.Subexpressions, second.Subexpressions)
	assert.Equal(t, first.Viewport, second.Viewport)
}
