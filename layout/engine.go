package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/noteraster/markdown"
)

// Measurer computes the pixel width of a text run under the exact font
// the run will be painted with. The canvas renderer implements it; a
// headless caller can fall back to EstimateWidth.
type Measurer interface {
	RunWidth(text string, style RunStyle, opts Options) float64
}

// EstimateWidth is the degraded-accuracy width heuristic used when no
// font-metrics backend is available. It is a fallback, not an error.
func EstimateWidth(text string, fontSizePx float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSizePx * 0.55
}

// BuildLines lays a token sequence out into displayable lines using
// greedy word wrap: whitespace-preserving chunks are appended until the
// next chunk would overflow the usable width, at which point the line is
// flushed. A chunk wider than the usable width on its own is split
// character by character. The result always contains at least one line,
// even for an empty token sequence, so downstream centering math has a
// defined line count.
func BuildLines(tokens []markdown.Token, opts Options, m Measurer) []Line {
	opts = opts.Normalized()
	usable := opts.UsableWidth()

	var lines []Line
	var runs []Run
	cursor := 0.0

	flush := func() {
		lines = append(lines, newTextLine(runs))
		runs = runs[:0]
		cursor = 0
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case markdown.KindLineBreak:
			flush()
		case markdown.KindRule, markdown.KindRuleDouble:
			if len(runs) > 0 {
				flush()
			}
			lines = append(lines, Line{Kind: RuleLine, Double: tok.Kind == markdown.KindRuleDouble})
		default:
			style := runStyleFor(tok.Kind)
			for _, chunk := range splitChunks(tok.Content) {
				if isWhitespace(chunk) {
					width := m.RunWidth(chunk, style, opts)
					if cursor > 0 && cursor+width > usable {
						flush()
					}
					// Leading whitespace at line start is dropped.
					if cursor == 0 {
						continue
					}
					runs = append(runs, Run{Text: chunk, Style: style})
					cursor += width
					continue
				}

				width := m.RunWidth(chunk, style, opts)
				if cursor > 0 && cursor+width > usable {
					flush()
				}
				if width <= usable {
					runs = append(runs, Run{Text: chunk, Style: style})
					cursor += width
					continue
				}

				// The chunk alone overflows: fall back to character-level
				// parts. The first part placed on an empty line may still
				// overflow when a single glyph is wider than the box;
				// accepting it is what keeps narrow boxes from looping.
				for _, part := range splitChunkByWidth(chunk, style, usable, opts, m) {
					partWidth := m.RunWidth(part, style, opts)
					if cursor > 0 && cursor+partWidth > usable {
						flush()
					}
					runs = append(runs, Run{Text: part, Style: style})
					cursor += partWidth
				}
			}
		}
	}

	if len(runs) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// runStyleFor maps a content-carrying token kind onto its run style.
func runStyleFor(kind markdown.Kind) RunStyle {
	switch kind {
	case markdown.KindBold:
		return RunBold
	case markdown.KindItalic:
		return RunItalic
	case markdown.KindUnderline:
		return RunUnderline
	case markdown.KindStrike:
		return RunStrike
	case markdown.KindHighlight:
		return RunHighlight
	case markdown.KindCode:
		return RunCode
	case markdown.KindLink:
		return RunLink
	default:
		return RunText
	}
}

// splitChunks cuts a token's content into alternating runs of non-space
// and space characters, preserving the whitespace itself.
func splitChunks(s string) []string {
	var chunks []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		chunks = append(chunks, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return chunks
}

func isWhitespace(chunk string) bool {
	r, _ := utf8.DecodeRuneInString(chunk)
	return unicode.IsSpace(r)
}

// splitChunkByWidth cuts an overlong chunk into parts that each fit the
// limit, keeping at least one rune per part so a glyph wider than the
// limit still makes progress.
func splitChunkByWidth(chunk string, style RunStyle, limit float64, opts Options, m Measurer) []string {
	var parts []string
	var builder strings.Builder
	runesInPart := 0
	for _, r := range chunk {
		builder.WriteRune(r)
		runesInPart++
		if runesInPart > 1 && m.RunWidth(builder.String(), style, opts) > limit {
			s := builder.String()
			_, size := utf8.DecodeLastRuneInString(s)
			parts = append(parts, s[:len(s)-size])
			builder.Reset()
			builder.WriteRune(r)
			runesInPart = 1
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
