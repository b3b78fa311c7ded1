// Package canvasrenderer paints laid-out lines via
// github.com/tdewolff/canvas and encodes the result as PNG.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/noteraster/fonts"
	"github.com/ByLCY/noteraster/layout"
	"github.com/ByLCY/noteraster/renderer"
)

// Decoration geometry in pixels.
const (
	underlineOffset = 2.0
	doubleRuleGap   = 3.0
	decorationWidth = 1.0
	ruleOpacity     = 0.55
)

var (
	linkColor     = canvas.Hex("#2563eb")
	highlightChip = canvas.RGBA(1.0, 0.9, 0.2, 0.35)
	codeChip      = canvas.RGBA(0.55, 0.58, 0.64, 0.18)
	fallbackColor = canvas.Hex(layout.DefaultTextColor)
)

// Renderer draws layout lines onto a canvas and rasterizes them. It also
// implements layout.Measurer: run widths are measured with the exact
// font face the run will be painted with and memoized per
// (descriptor, text) pair.
type Renderer struct {
	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily

	widthMu sync.Mutex
	widths  map[widthKey]float64
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type widthKey struct {
	descriptor string
	text       string
}

// fontDescriptor is the canonical font selection for one run: family,
// resolved weight/slant and pixel size.
type fontDescriptor struct {
	family string
	bold   bool
	italic bool
	sizePx float64
}

func (d fontDescriptor) String() string {
	return fmt.Sprintf("%s|bold=%t|italic=%t|%gpx", d.family, d.bold, d.italic, d.sizePx)
}

// New creates a renderer with empty font and width caches.
func New() *Renderer {
	return &Renderer{
		fontFamilies: map[string]*canvas.FontFamily{},
		widths:       map[widthKey]float64{},
	}
}

// RunWidth implements layout.Measurer. On a memo miss the width is read
// from the real font face; if the face cannot be built the heuristic
// estimate is memoized instead (a degraded path, not an error).
func (r *Renderer) RunWidth(text string, style layout.RunStyle, opts layout.Options) float64 {
	desc := r.descriptor(style, opts)
	key := widthKey{descriptor: desc.String(), text: text}

	r.widthMu.Lock()
	if w, ok := r.widths[key]; ok {
		r.widthMu.Unlock()
		return w
	}
	r.widthMu.Unlock()

	var width float64
	face, err := r.face(desc, fallbackColor)
	if err != nil {
		width = layout.EstimateWidth(text, desc.sizePx)
	} else {
		width = face.TextWidth(text)
	}

	r.widthMu.Lock()
	r.widths[key] = width
	r.widthMu.Unlock()
	return width
}

// Render paints the lines into a box of at least 40x40 pixels and
// returns the PNG encoding. A failure to build a paint surface or to
// encode fails this render pass only.
func (r *Renderer) Render(lines []layout.Line, opts layout.Options) ([]byte, error) {
	opts = opts.Normalized()
	width := opts.Width
	height := opts.Height
	if width < layout.MinBoxSize {
		width = layout.MinBoxSize
	}
	if height < layout.MinBoxSize {
		height = layout.MinBoxSize
	}

	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, y growing down

	if err := r.paint(ctx, lines, opts, float64(width), float64(height)); err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	if img == nil {
		return nil, fmt.Errorf("canvasrenderer: no paint surface")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("canvasrenderer: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// paint walks the lines top to bottom. The block is vertically centered
// in the box, clamped so the first line never starts above the top
// padding, and lines past the bottom padding are silently dropped.
func (r *Renderer) paint(ctx *canvas.Context, lines []layout.Line, opts layout.Options, width, height float64) error {
	fontSize := opts.FontSize.Px()
	lineHeight := math.Ceil(fontSize * 1.35)
	contentHeight := math.Max(lineHeight, float64(len(lines))*lineHeight)

	y := blockTop(contentHeight, height)
	visible := visibleLineCount(len(lines), y, lineHeight, height)

	textColor := parseColor(opts.TextColor)
	for _, line := range lines[:visible] {
		switch line.Kind {
		case layout.RuleLine:
			r.paintRule(ctx, line, opts, width, y+lineHeight/2)
		default:
			if err := r.paintTextLine(ctx, line, opts, textColor, width, y, lineHeight); err != nil {
				return err
			}
		}
		y += lineHeight
	}
	return nil
}

// blockTop vertically centers a block of contentHeight within the box,
// clamped so the first line never starts above the top padding.
func blockTop(contentHeight, height float64) float64 {
	y := (height - contentHeight) / 2
	if y < layout.PadY {
		y = layout.PadY
	}
	return y
}

// visibleLineCount reports how many lines starting at top fit before
// the bottom padding. Lines past it are dropped, never an error.
func visibleLineCount(total int, top, lineHeight, height float64) int {
	n := 0
	for y := top; n < total && y+lineHeight <= height-layout.PadY; y += lineHeight {
		n++
	}
	return n
}

// paintRule strokes one horizontal divider across the padded width, with
// a second parallel stroke below it for the double variant.
func (r *Renderer) paintRule(ctx *canvas.Context, line layout.Line, opts layout.Options, width, y float64) {
	ctx.SetStrokeColor(withAlpha(parseColor(opts.TextColor), ruleOpacity))
	ctx.SetStrokeWidth(decorationWidth)

	span := width - 2*layout.PadX
	stroke := func(atY float64) {
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(span, 0)
		ctx.DrawPath(layout.PadX, atY, p)
	}
	stroke(y)
	if line.Double {
		stroke(y + doubleRuleGap)
	}
}

func (r *Renderer) paintTextLine(ctx *canvas.Context, line layout.Line, opts layout.Options, textColor color.RGBA, width, y, lineHeight float64) error {
	totalWidth := line.Width(r, opts)

	var x float64
	switch opts.Align {
	case layout.AlignRight:
		x = width - layout.PadX - totalWidth
		if x < layout.PadX {
			x = layout.PadX
		}
	case layout.AlignCenter:
		x = (width - totalWidth) / 2
	default:
		x = layout.PadX
	}

	fontSize := opts.FontSize.Px()
	for _, run := range line.Runs {
		runWidth := r.RunWidth(run.Text, run.Style, opts)

		switch run.Style {
		case layout.RunHighlight:
			paintChip(ctx, highlightChip, x, y, runWidth, lineHeight)
		case layout.RunCode:
			paintChip(ctx, codeChip, x, y, runWidth, lineHeight)
		}

		col := textColor
		if run.Style == layout.RunLink {
			col = linkColor
		}

		desc := r.descriptor(run.Style, opts)
		face, err := r.face(desc, col)
		if err != nil {
			return err
		}
		baseline := y + face.Metrics().Ascent

		if strings.TrimSpace(run.Text) != "" {
			ctx.DrawText(x, baseline, canvas.NewTextLine(face, run.Text, canvas.Left))
		}

		switch run.Style {
		case layout.RunUnderline, layout.RunLink:
			paintStroke(ctx, col, x, baseline+underlineOffset, runWidth)
		case layout.RunStrike:
			paintStroke(ctx, col, x, baseline-0.35*fontSize, runWidth)
		}

		x += runWidth
	}
	return nil
}

func paintChip(ctx *canvas.Context, col color.Color, x, y, w, h float64) {
	ctx.SetFillColor(col)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func paintStroke(ctx *canvas.Context, col color.Color, x, y, w float64) {
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(decorationWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(w, 0)
	ctx.DrawPath(x, y, p)
}

// descriptor resolves the exact font for a run: bold when the run is
// bold or the node-level style is bold (italic analogously), and the
// mono family for code runs regardless of the requested family.
func (r *Renderer) descriptor(style layout.RunStyle, opts layout.Options) fontDescriptor {
	opts = opts.Normalized()
	family := opts.FontFamily
	if !fonts.Has(family) {
		family = fonts.DefaultFamily
	}
	if style == layout.RunCode {
		family = fonts.MonoFamily
	}
	return fontDescriptor{
		family: family,
		bold:   style == layout.RunBold || opts.TextStyle == layout.TextBold,
		italic: style == layout.RunItalic || opts.TextStyle == layout.TextItalic,
		sizePx: opts.FontSize.Px(),
	}
}

// face builds a canvas font face for a descriptor. The face size is in
// points; px values convert at the boundary exactly once.
func (r *Renderer) face(desc fontDescriptor, col color.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(desc.family)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if desc.bold {
		style = canvas.FontBold
	}
	if desc.italic {
		style |= canvas.FontItalic
	}
	return family.Face(desc.sizePx*layout.PxToPt, col, style, canvas.FontNormal), nil
}

// ensureFontFamily loads all four style variants of a named family into
// one canvas family, cached for the renderer's lifetime.
func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[name]; ok {
		return family, nil
	}

	family := canvas.NewFontFamily(name)
	variants := []struct {
		bold, italic bool
		style        canvas.FontStyle
	}{
		{false, false, canvas.FontRegular},
		{true, false, canvas.FontBold},
		{false, true, canvas.FontItalic},
		{true, true, canvas.FontBold | canvas.FontItalic},
	}
	for _, v := range variants {
		data, err := fonts.Load(name, v.bold, v.italic)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, v.style); err != nil {
			return nil, fmt.Errorf("canvasrenderer: load font %s: %w", name, err)
		}
	}

	r.fontFamilies[name] = family
	return family, nil
}

// parseColor resolves a #rrggbb string, falling back to the default text
// color on malformed input. canvas.Hex panics on bad input, so the
// format is checked first.
func parseColor(hex string) color.RGBA {
	s := strings.TrimPrefix(hex, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return fallbackColor
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return fallbackColor
		}
	}
	return canvas.Hex(hex)
}

func withAlpha(c color.RGBA, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, alpha)
}
