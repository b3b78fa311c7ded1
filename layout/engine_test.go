package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/noteraster/markdown"
)

// fixedMeasurer gives every rune the same width, which makes wrap
// positions exact regardless of font availability.
type fixedMeasurer struct{ runeWidth float64 }

func (m fixedMeasurer) RunWidth(text string, _ RunStyle, _ Options) float64 {
	return float64(utf8.RuneCountInString(text)) * m.runeWidth
}

func lineText(l Line) string {
	var b strings.Builder
	for _, run := range l.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

func TestBuildLinesSingleRun(t *testing.T) {
	opts := Options{Text: "plain", Width: 280, Height: 140}
	lines := BuildLines(markdown.Tokenize("plain"), opts, fixedMeasurer{10})
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Kind != TextLine || len(lines[0].Runs) != 1 {
		t.Fatalf("expected a single text run, got %+v", lines[0])
	}
	if lines[0].Runs[0].Text != "plain" || lines[0].Runs[0].Style != RunText {
		t.Fatalf("unexpected run: %+v", lines[0].Runs[0])
	}
}

func TestBuildLinesGreedyWrap(t *testing.T) {
	// usable width = max(40, 100-20) = 80; each word is 50 wide.
	opts := Options{Width: 100, Height: 140}
	lines := BuildLines(markdown.Tokenize("hello world again"), opts, fixedMeasurer{10})
	if len(lines) != 3 {
		t.Fatalf("expected 3 wrapped lines, got %d: %+v", len(lines), lines)
	}
	// Trailing whitespace stays on the line it was appended to; only
	// leading whitespace is dropped.
	for i, want := range []string{"hello ", "world ", "again"} {
		if got := lineText(lines[i]); got != want {
			t.Fatalf("line %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestBuildLinesWidthInvariant(t *testing.T) {
	m := fixedMeasurer{9}
	opts := Options{Width: 120, Height: 400}
	text := "a few short words plus an unbreakablyenormousword and more trailing text"
	lines := BuildLines(markdown.Tokenize(text), opts, m)
	usable := opts.Normalized().UsableWidth()
	for i, line := range lines {
		if line.Kind != TextLine {
			continue
		}
		total := line.Width(m, opts)
		if total <= usable {
			continue
		}
		// The only permitted overflow is a single run that could not fit
		// even as the first run of an empty line.
		if len(line.Runs) != 1 {
			t.Fatalf("line %d overflows with %d runs: %+v", i, len(line.Runs), line)
		}
	}
}

func TestBuildLinesCharacterFallback(t *testing.T) {
	// usable = 40, runes 10 wide: an 11-rune word must split into
	// 4-rune-or-fewer parts across lines of at most 4 runes.
	opts := Options{Width: 60, Height: 400}
	lines := BuildLines(markdown.Tokenize("abcdefghijk"), opts, fixedMeasurer{10})
	if len(lines) < 3 {
		t.Fatalf("expected character-level wrapping, got %+v", lines)
	}
	var rebuilt strings.Builder
	for _, line := range lines {
		if got := lineText(line); utf8.RuneCountInString(got) > 4 {
			t.Fatalf("line %q exceeds 4 runes", got)
		}
		rebuilt.WriteString(lineText(line))
	}
	if rebuilt.String() != "abcdefghijk" {
		t.Fatalf("split lost characters: %q", rebuilt.String())
	}
}

func TestBuildLinesOverflowingSpaceWraps(t *testing.T) {
	// usable = 40, runes 10 wide: "abcd" fills the line exactly, so the
	// following space must wrap and then be dropped at the new line
	// start instead of overflowing the finished line.
	m := fixedMeasurer{10}
	opts := Options{Width: 60, Height: 400}
	lines := BuildLines(markdown.Tokenize("abcd efg"), opts, m)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", lines)
	}
	if got := lineText(lines[0]); got != "abcd" {
		t.Fatalf("full line must not keep an overflowing space, got %q", got)
	}
	if got := lineText(lines[1]); got != "efg" {
		t.Fatalf("expected %q on the wrapped line, got %q", "efg", got)
	}
	usable := opts.Normalized().UsableWidth()
	for i, line := range lines {
		if w := line.Width(m, opts); w > usable {
			t.Fatalf("line %d width %g exceeds usable %g", i, w, usable)
		}
	}
}

func TestBuildLinesLeadingWhitespaceDropped(t *testing.T) {
	opts := Options{Width: 100, Height: 140}
	lines := BuildLines(markdown.Tokenize("hello world"), opts, fixedMeasurer{10})
	if len(lines) != 2 {
		t.Fatalf("expected wrap into 2 lines, got %+v", lines)
	}
	if got := lineText(lines[1]); got != "world" {
		t.Fatalf("wrapped line must not start with whitespace, got %q", got)
	}
}

func TestBuildLinesLineBreakFlushesEmpty(t *testing.T) {
	opts := Options{Width: 280, Height: 140}
	lines := BuildLines(markdown.Tokenize("foo\n\nbar"), opts, fixedMeasurer{5})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %+v", lines)
	}
	if lineText(lines[1]) != "" {
		t.Fatalf("expected middle line blank, got %q", lineText(lines[1]))
	}
}

func TestBuildLinesRules(t *testing.T) {
	opts := Options{Width: 280, Height: 140}
	lines := BuildLines(markdown.Tokenize("above\n---\n==="), opts, fixedMeasurer{5})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %+v", lines)
	}
	if lines[0].Kind != TextLine || lineText(lines[0]) != "above" {
		t.Fatalf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Kind != RuleLine || lines[1].Double {
		t.Fatalf("expected single rule, got %+v", lines[1])
	}
	if lines[2].Kind != RuleLine || !lines[2].Double {
		t.Fatalf("expected double rule, got %+v", lines[2])
	}
}

func TestBuildLinesRuleFlushesPendingRuns(t *testing.T) {
	opts := Options{Width: 280, Height: 140}
	tokens := []markdown.Token{
		{Kind: markdown.KindText, Content: "pending"},
		{Kind: markdown.KindRule},
	}
	lines := BuildLines(tokens, opts, fixedMeasurer{5})
	if len(lines) != 2 || lines[0].Kind != TextLine || lines[1].Kind != RuleLine {
		t.Fatalf("rule must flush pending runs first: %+v", lines)
	}
}

func TestBuildLinesEmptyInputYieldsOneLine(t *testing.T) {
	opts := Options{Width: 280, Height: 140}
	lines := BuildLines(nil, opts, fixedMeasurer{5})
	if len(lines) != 1 || lines[0].Kind != TextLine || len(lines[0].Runs) != 0 {
		t.Fatalf("expected one empty text line, got %+v", lines)
	}
}

func TestBuildLinesStyleCarriesThroughWrap(t *testing.T) {
	opts := Options{Width: 100, Height: 140}
	lines := BuildLines(markdown.Tokenize("**bold words here**"), opts, fixedMeasurer{10})
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %+v", lines)
	}
	for _, line := range lines {
		for _, run := range line.Runs {
			if run.Style != RunBold {
				t.Fatalf("run lost its style across the wrap: %+v", run)
			}
		}
	}
}

func TestBuildLinesNarrowBoxStillProgresses(t *testing.T) {
	// Usable width clamps to 40 but each rune is 50 wide: every line
	// holds exactly one overflowing rune instead of looping.
	opts := Options{Width: 10, Height: 400}
	lines := BuildLines(markdown.Tokenize("abc"), opts, fixedMeasurer{50})
	if len(lines) != 3 {
		t.Fatalf("expected one rune per line, got %+v", lines)
	}
	for _, line := range lines {
		if utf8.RuneCountInString(lineText(line)) != 1 {
			t.Fatalf("expected single-rune lines, got %+v", lines)
		}
	}
}
