package typeset

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// render draws the glyph runs onto a white canvas sized to their union plus
// padding and returns PNG bytes with the canvas dimensions. Box coordinates
// in the runs are already normalized to this canvas.
func render(runs []glyphRun, normal, script font.Face) (png []byte, width, height float64, err error) {
	maxX, maxY := artworkPad, artworkPad
	for _, r := range runs {
		maxX = math.Max(maxX, r.box.X+r.box.Width)
		maxY = math.Max(maxY, r.box.Y+r.box.Height)
	}
	width = maxX + artworkPad
	height = maxY + artworkPad

	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	for _, r := range runs {
		if r.script {
			dc.SetFontFace(script)
		} else {
			dc.SetFontFace(normal)
		}
		dc.DrawString(r.text, r.x, r.baseline)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, 0, 0, err
	}
	return buf.Bytes(), width, height, nil
}
