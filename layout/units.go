package layout

import (
	"fmt"
	"strings"
)

// This file defines unit-safe types for the fixed visual parameter
// scales: font sizes, alignments and node-level text styles.

// Conversion constants between pt and px. The canvas backend creates
// font faces in points while the engine works in pixel units, so the
// boundary does a px↔pt conversion exactly once.
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)

// Size is one step of the fixed font-size scale. The zero value is the
// default step M, so an unset Options.FontSize needs no explicit
// defaulting in Normalized.
type Size int

const (
	SizeM Size = iota
	SizeS
	SizeL
	SizeXL
)

// Px returns the pixel value of the scale step.
func (s Size) Px() float64 {
	switch s {
	case SizeS:
		return 14
	case SizeL:
		return 24
	case SizeXL:
		return 36
	default:
		return 16
	}
}

// String returns the scale step name (s/m/l/xl).
func (s Size) String() string {
	switch s {
	case SizeS:
		return "s"
	case SizeL:
		return "l"
	case SizeXL:
		return "xl"
	default:
		return "m"
	}
}

// ParseSize maps a scale step name onto a Size.
func ParseSize(v string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "s":
		return SizeS, nil
	case "", "m":
		return SizeM, nil
	case "l":
		return SizeL, nil
	case "xl":
		return SizeXL, nil
	default:
		return SizeM, fmt.Errorf("layout: unknown font size %q", v)
	}
}

// Align is the horizontal placement of text lines inside the box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlign maps an alignment name onto an Align.
func ParseAlign(v string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("layout: unknown alignment %q", v)
	}
}

// TextStyle is the node-level base style applied to every run on top of
// the run's own inline style.
type TextStyle int

const (
	TextNormal TextStyle = iota
	TextBold
	TextItalic
)

func (t TextStyle) String() string {
	switch t {
	case TextBold:
		return "bold"
	case TextItalic:
		return "italic"
	default:
		return "normal"
	}
}

// ParseTextStyle maps a style name onto a TextStyle.
func ParseTextStyle(v string) (TextStyle, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "normal":
		return TextNormal, nil
	case "bold":
		return TextBold, nil
	case "italic":
		return TextItalic, nil
	default:
		return TextNormal, fmt.Errorf("layout: unknown text style %q", v)
	}
}
