package statement

import "strings"

// formulaMarker delimits embedded formula sub-strings inside atomic text.
const formulaMarker = '$'

// AtomicText is free text that may contain embedded formula sub-strings
// delimited by '$'. Markers alternate between plain text and formula mode
// left to right; an unmatched trailing marker closes the last open segment
// implicitly at end of string.
type AtomicText string

// SegmentKind distinguishes plain text from formula segments.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentFormula
)

// Segment is one alternating run of an atomic text.
type Segment struct {
	Kind    SegmentKind
	Content string
}

// Segments splits the text into alternating text/formula segments. Empty
// trailing text after the last marker is omitted; empty segments between
// adjacent markers are kept so formula indices stay aligned with the source.
func (t AtomicText) Segments() []Segment {
	s := string(t)
	var out []Segment
	kind := SegmentText
	for {
		i := strings.IndexByte(s, formulaMarker)
		if i < 0 {
			if s != "" {
				out = append(out, Segment{Kind: kind, Content: s})
			}
			return out
		}
		if i > 0 || kind == SegmentFormula {
			out = append(out, Segment{Kind: kind, Content: s[:i]})
		}
		s = s[i+1:]
		if kind == SegmentText {
			kind = SegmentFormula
		} else {
			kind = SegmentText
		}
	}
}

// Formulas returns only the formula segments, in order of appearance. The
// position of a formula in this slice is the formula index used by
// sub-expression selections.
func (t AtomicText) Formulas() []string {
	var out []string
	for _, seg := range t.Segments() {
		if seg.Kind == SegmentFormula {
			out = append(out, seg.Content)
		}
	}
	return out
}
