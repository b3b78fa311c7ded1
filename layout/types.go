package layout

// This file defines the layout result types shared by the layout engine,
// the renderer and the debug JSON output.

// RunStyle identifies the inline style of a single run.
type RunStyle int

const (
	RunText RunStyle = iota
	RunBold
	RunItalic
	RunUnderline
	RunStrike
	RunHighlight
	RunCode
	RunLink
)

// String returns the lowercase style name.
func (s RunStyle) String() string {
	switch s {
	case RunText:
		return "text"
	case RunBold:
		return "bold"
	case RunItalic:
		return "italic"
	case RunUnderline:
		return "underline"
	case RunStrike:
		return "strike"
	case RunHighlight:
		return "highlight"
	case RunCode:
		return "code"
	case RunLink:
		return "link"
	default:
		return "unknown"
	}
}

// Run is the atomic paint unit: a contiguous span of text sharing one
// inline style. Runs never span a line break.
type Run struct {
	Text  string   `json:"text"`
	Style RunStyle `json:"style"`
}

// LineKind distinguishes text lines from horizontal-rule lines.
type LineKind int

const (
	TextLine LineKind = iota
	RuleLine
)

// Line is one displayable line: either an ordered run list or a
// horizontal rule (single or double stroke). Runs is nil for rule lines
// and Double is false for text lines.
type Line struct {
	Kind   LineKind `json:"kind"`
	Runs   []Run    `json:"runs,omitempty"`
	Double bool     `json:"double,omitempty"`
}

// newTextLine copies the pending run list into a text line.
func newTextLine(runs []Run) Line {
	if len(runs) == 0 {
		return Line{Kind: TextLine}
	}
	out := make([]Run, len(runs))
	copy(out, runs)
	return Line{Kind: TextLine, Runs: out}
}

// Width sums the measured widths of the runs on a text line.
func (l Line) Width(m Measurer, opts Options) float64 {
	total := 0.0
	for _, run := range l.Runs {
		total += m.RunWidth(run.Text, run.Style, opts)
	}
	return total
}
