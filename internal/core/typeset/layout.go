package typeset

import (
	"golang.org/x/image/font"

	"github.com/proofdeck/lemma/internal/core/geometry"
)

// glyphRun is one horizontally contiguous piece of drawn text, tied back to
// the source range it came from. Sub-expression boxes are built by merging
// the runs whose range falls inside the sub-expression's span.
type glyphRun struct {
	text     string
	start    int
	end      int
	x        float64 // left edge
	baseline float64
	script   bool // drawn with the smaller script face
	box      geometry.Rect
}

// layouter walks a parse tree left to right, assigning each token a glyph
// run. Fractions are laid out inline (numerator, slash, denominator);
// attachments raise or lower the script with the smaller face. The layout
// intentionally mirrors what render.go draws so that boxes and artwork agree.
type layouter struct {
	face   font.Face
	script font.Face

	ascent      float64
	descent     float64
	supAscent   float64
	supDescent  float64
	scriptRaise float64 // baseline shift for superscripts (negative is up)
	gap         float64 // spacing around infix operators

	x    float64
	runs []glyphRun
}

func newLayouter(normal, script font.Face, size float64) *layouter {
	m := normal.Metrics()
	sm := script.Metrics()
	return &layouter{
		face:        normal,
		script:      script,
		ascent:      fixedToFloat(m.Ascent),
		descent:     fixedToFloat(m.Descent),
		supAscent:   fixedToFloat(sm.Ascent),
		supDescent:  fixedToFloat(sm.Descent),
		scriptRaise: size * 0.35,
		gap:         size * 0.2,
	}
}

func (l *layouter) layout(root *parseNode) []glyphRun {
	l.node(root, 0, false)
	return l.runs
}

// node lays out a subtree at the given baseline. scriptDepth marks text that
// renders with the script face.
func (l *layouter) node(n *parseNode, baseline float64, asScript bool) {
	switch n.kind {
	case nodeLeaf:
		l.emit(n.tok, baseline, asScript)
	case nodeBinary:
		l.node(n.children[0], baseline, asScript)
		l.x += l.gap
		l.emit(n.tok, baseline, asScript)
		l.x += l.gap
		l.node(n.children[1], baseline, asScript)
	case nodeFrac:
		l.node(n.children[0], baseline, asScript)
		l.emit(n.tok, baseline, asScript)
		l.node(n.children[1], baseline, asScript)
	case nodeAttach:
		l.node(n.children[0], baseline, asScript)
		shift := -l.scriptRaise
		if !n.sup {
			shift = l.scriptRaise * 0.6
		}
		l.node(n.children[1], baseline+shift, true)
	case nodeGroup:
		open := token{text: "(", start: n.start, end: n.start + 1}
		closing := token{text: ")", start: n.end - 1, end: n.end}
		l.emit(open, baseline, asScript)
		l.node(n.children[0], baseline, asScript)
		l.emit(closing, baseline, asScript)
	}
}

// emit appends a run for one token at the cursor and advances the cursor by
// the measured width.
func (l *layouter) emit(t token, baseline float64, asScript bool) {
	face := l.face
	ascent, descent := l.ascent, l.descent
	if asScript {
		face = l.script
		ascent, descent = l.supAscent, l.supDescent
	}

	width := fixedToFloat(font.MeasureString(face, t.text))
	run := glyphRun{
		text:     t.text,
		start:    t.start,
		end:      t.end,
		x:        l.x,
		baseline: baseline,
		script:   asScript,
		box: geometry.Rect{
			X:      l.x,
			Y:      baseline - ascent,
			Width:  width,
			Height: ascent + descent,
		},
	}
	l.runs = append(l.runs, run)
	l.x += width
}

// subexpressions merges run boxes per span: a run contributes to a span when
// its source range is contained in the span's range. Spans with no
// contributing runs are dropped, matching the engine boundary contract that
// every reported sub-expression has a box.
func subexpressions(src string, spanList []sourceSpan, runs []glyphRun) []geometry.SubExpression {
	var out []geometry.SubExpression
	for _, sp := range spanList {
		var box geometry.Rect
		count := 0
		for _, run := range runs {
			if run.start < sp.start || run.end > sp.end {
				continue
			}
			if count == 0 {
				box = run.box
			} else {
				box = box.Union(run.box)
			}
			count++
		}
		if count == 0 {
			continue
		}
		out = append(out, geometry.SubExpression{
			SubExpressionCore: geometry.SubExpressionCore{
				Text:        src[sp.start:sp.end],
				SourceStart: sp.start,
				SourceEnd:   sp.end,
			},
			Box:       box,
			GlyphRuns: count,
		})
	}
	return out
}
