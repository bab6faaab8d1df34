// Package typeset compiles formula source text into vector-ish artwork and
// per-sub-expression bounding boxes. It is the process-local stand-in for a
// full math typesetting engine: a pure Compile function behind a one-time
// asynchronous initialization handshake.
package typeset

import (
	"errors"
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/math/fixed"

	"github.com/proofdeck/lemma/internal/core/geometry"
)

// ErrNotReady is returned by Compile before initialization completes.
var ErrNotReady = errors.New("typeset: engine not ready")

const (
	// DefaultFontSize is the point size formulas are laid out at.
	DefaultFontSize = 24.0
	scriptScale     = 0.7
	artworkPad      = 4.0
)

// Result is the output of one successful compilation: PNG artwork, the
// sub-expression boxes in artwork coordinates, and the viewport needed to map
// pointer coordinates back into that space.
type Result struct {
	Artwork        []byte // PNG-encoded
	Subexpressions []geometry.SubExpression
	Viewport       geometry.Viewport
}

// Engine compiles formulas after a one-time asynchronous initialization that
// parses the bundled font. Compile is synchronous once Ready is closed;
// before that it reports ErrNotReady rather than blocking.
type Engine struct {
	fontSize float64
	log      zerolog.Logger

	ready   chan struct{}
	initErr error
	face    font.Face
	script  font.Face
}

// NewEngine starts engine initialization in the background and returns
// immediately. Callers wait on Ready or accept ErrNotReady from Compile.
func NewEngine(fontSize float64, log zerolog.Logger) *Engine {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	e := &Engine{
		fontSize: fontSize,
		log:      log,
		ready:    make(chan struct{}),
	}
	go e.init()
	return e
}

func (e *Engine) init() {
	defer close(e.ready)

	parsed, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		e.initErr = fmt.Errorf("parse font: %w", err)
		e.log.Error().Err(e.initErr).Msg("engine initialization failed")
		return
	}

	e.face = truetype.NewFace(parsed, &truetype.Options{
		Size:    e.fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	e.script = truetype.NewFace(parsed, &truetype.Options{
		Size:    e.fontSize * scriptScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	e.log.Debug().Float64("font_size", e.fontSize).Msg("engine ready")
}

// Ready is closed once initialization has finished, successfully or not.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Err returns the initialization error, if any. Only meaningful after Ready.
func (e *Engine) Err() error {
	select {
	case <-e.ready:
		return e.initErr
	default:
		return ErrNotReady
	}
}

// Compile turns formula source into artwork and sub-expression boxes. It
// returns ErrNotReady before initialization completes; any other error is a
// compilation error local to this formula and safe to surface as a message
// for it alone without touching other formulas or any session state.
func (e *Engine) Compile(src string) (Result, error) {
	select {
	case <-e.ready:
	default:
		return Result{}, ErrNotReady
	}
	if e.initErr != nil {
		return Result{}, e.initErr
	}

	root, err := parseFormula(src)
	if err != nil {
		return Result{}, err
	}

	runs := newLayouter(e.face, e.script, e.fontSize).layout(root)
	runs = normalize(runs)

	subs := subexpressions(src, spans(root), runs)

	png, width, height, err := render(runs, e.face, e.script)
	if err != nil {
		return Result{}, fmt.Errorf("render formula: %w", err)
	}

	return Result{
		Artwork:        png,
		Subexpressions: subs,
		Viewport: geometry.Viewport{
			Origin: geometry.Rect{X: 0, Y: 0, Width: width, Height: height},
		},
	}, nil
}

// normalize shifts all runs so the artwork's top-left corner sits at the
// padding offset, keeping every box non-negative.
func normalize(runs []glyphRun) []glyphRun {
	if len(runs) == 0 {
		return runs
	}
	bounds := runs[0].box
	for _, r := range runs[1:] {
		bounds = bounds.Union(r.box)
	}
	dx := artworkPad - bounds.X
	dy := artworkPad - bounds.Y
	for i := range runs {
		runs[i].x += dx
		runs[i].baseline += dy
		runs[i].box.X += dx
		runs[i].box.Y += dy
	}
	return runs
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
