package markdown

import (
	"regexp"
	"strings"
)

// Shorthand sequences are rewritten to single display glyphs before any
// width measurement happens. Alternatives are ordered so the longer
// arrow forms win over their two-character prefixes.
var symbolPattern = regexp.MustCompile(`<=>|<->|->|<-|\[[vVxX]?\]`)

var symbolGlyphs = map[string]string{
	"<=>": "⇔",
	"<->": "↔",
	"->":  "→",
	"<-":  "←",
	"[]":  "☐",
	"[v]": "☑",
	"[x]": "☒",
}

// NormalizeSymbols substitutes shorthand ASCII sequences (arrows and
// checkbox shorthand, case-insensitive) with their display glyphs. It is
// pure and idempotent; input that contains no shorthand is returned as is.
func NormalizeSymbols(s string) string {
	if !strings.ContainsAny(s, "<->[") {
		return s
	}
	return symbolPattern.ReplaceAllStringFunc(s, func(match string) string {
		if glyph, ok := symbolGlyphs[strings.ToLower(match)]; ok {
			return glyph
		}
		return match
	})
}
