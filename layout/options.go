package layout

import (
	"fmt"
	"math"
	"strings"
)

// Box padding in pixels. Usable text width never drops below MinBoxSize
// regardless of how narrow the requested box is.
const (
	PadX       = 10.0
	PadY       = 8.0
	MinBoxSize = 40
)

// Defaults for every optional visual parameter.
const (
	DefaultWidth      = 280
	DefaultHeight     = 140
	DefaultFontFamily = "handwriting"
	DefaultTextColor  = "#1f2937"
)

// Options is the full visual parameter set for one render request. Two
// Options values with equal fields describe the same bitmap and share
// one cache key. Options are ephemeral: the engine never retains them
// past the render pass.
type Options struct {
	Text       string    `json:"text"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Align      Align     `json:"align"`
	FontFamily string    `json:"fontFamily"`
	FontSize   Size      `json:"fontSize"`
	TextStyle  TextStyle `json:"textStyle"`
	TextColor  string    `json:"textColor"`
}

// Normalized fills unset fields with their defaults.
func (o Options) Normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.TextColor == "" {
		o.TextColor = DefaultTextColor
	}
	return o
}

// Key returns the canonical cache key: equal for exactly the requests
// that are structurally equal field by field.
func (o Options) Key() string {
	// Text goes last: it is the only field that may itself contain the
	// separator, and every field before it is from a fixed vocabulary.
	return strings.Join([]string{
		fmt.Sprintf("%dx%d", o.Width, o.Height),
		o.Align.String(),
		o.FontFamily,
		o.FontSize.String(),
		o.TextStyle.String(),
		o.TextColor,
		o.Text,
	}, "|")
}

// UsableWidth is the pixel width available to text runs inside the box.
func (o Options) UsableWidth() float64 {
	return math.Max(MinBoxSize, float64(o.Width)-2*PadX)
}
