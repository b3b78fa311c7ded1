package markdown_test

import (
	"testing"

	"github.com/ByLCY/noteraster/markdown"
)

func TestNormalizeSymbols(t *testing.T) {
	cases := []struct{ in, want string }{
		{"->", "→"},
		{"<-", "←"},
		{"<->", "↔"},
		{"<=>", "⇔"},
		{"[]", "☐"},
		{"[v]", "☑"},
		{"[V]", "☑"},
		{"[x]", "☒"},
		{"[X]", "☒"},
		{"a -> b", "a → b"},
		{"no shorthand", "no shorthand"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := markdown.NormalizeSymbols(tc.in); got != tc.want {
			t.Fatalf("NormalizeSymbols(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSymbolsIdempotent(t *testing.T) {
	once := markdown.NormalizeSymbols("[v] done -> next")
	twice := markdown.NormalizeSymbols(once)
	if once != twice {
		t.Fatalf("normalization must be idempotent: %q vs %q", once, twice)
	}
}

func TestNormalizeInsideStyledSpan(t *testing.T) {
	tokens := markdown.Tokenize("**[v] ship it**")
	if len(tokens) != 1 || tokens[0].Kind != markdown.KindBold {
		t.Fatalf("expected single bold token, got %+v", tokens)
	}
	if tokens[0].Content != "☑ ship it" {
		t.Fatalf("shorthand inside bold must normalize, got %q", tokens[0].Content)
	}
}

func TestNormalizeAcrossDelimiterBoundary(t *testing.T) {
	// "[v]" alone hits the single-character delimiter fallback for "[",
	// so normalization has to run after adjacent text merges back together.
	tokens := markdown.Tokenize("[v] done")
	if len(tokens) != 1 || tokens[0].Kind != markdown.KindText {
		t.Fatalf("expected one text token, got %+v", tokens)
	}
	if tokens[0].Content != "☑ done" {
		t.Fatalf("expected normalized checkbox, got %q", tokens[0].Content)
	}
}
