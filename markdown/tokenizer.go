package markdown

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// The inline grammar is an ordered alternation: the lexer tries each rule
// in declaration order at the current position, so the double-delimiter
// forms (bold, strike, highlight) are listed before the single-character
// forms they would otherwise be split into. Plain stretches fall through
// to Text, and a lone delimiter character to Punct.
var inlineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Bold", Pattern: `\*\*[^*]+\*\*|__[^_]+__`},
	{Name: "Italic", Pattern: `\*[^*]+\*`},
	{Name: "Strike", Pattern: `~~[^~]+~~`},
	{Name: "Highlight", Pattern: `==[^=]+==`},
	{Name: "Underline", Pattern: `_[^_]+_`},
	{Name: "Link", Pattern: `\[[^\]]*\]\([^)]*\)`},
	{Name: "Code", Pattern: "`[^`]+`"},
	{Name: "Text", Pattern: "[^*_~=`\\[]+"},
	{Name: "Punct", Pattern: "[*_~=`\\[]"},
})

var (
	inlineTokenNames = invertSymbols(inlineLexer.Symbols())

	ruleLine       = newLinePattern('-')
	doubleRuleLine = newLinePattern('=')
)

// Tokenize scans constrained-markdown text into an ordered token
// sequence. The whole-text pass splits on line breaks first: a line of
// only dashes becomes a rule token, a line of only equals signs a
// double-rule token, and every other line is tokenized inline and
// followed by a line-break token when more lines remain. Empty input
// yields an empty sequence.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	var tokens []Token
	for i, line := range lines {
		switch {
		case ruleLine(line):
			tokens = append(tokens, Token{Kind: KindRule})
		case doubleRuleLine(line):
			tokens = append(tokens, Token{Kind: KindRuleDouble})
		default:
			tokens = append(tokens, tokenizeInline(line)...)
			if i < len(lines)-1 {
				tokens = append(tokens, Token{Kind: KindLineBreak})
			}
		}
	}
	return tokens
}

// tokenizeInline scans a single logical line (no line breaks) with the
// ordered-alternation lexer and maps lexer tokens onto inline Tokens,
// stripping delimiters and normalizing shorthand symbols. Adjacent plain
// stretches merge into one text token.
func tokenizeInline(line string) []Token {
	if line == "" {
		return nil
	}
	lex, err := inlineLexer.LexString("", line)
	if err != nil {
		// The grammar has a single-character fallback rule, so lexing
		// cannot fail on any input line; treat it as plain text anyway.
		return []Token{{Kind: KindText, Content: NormalizeSymbols(line)}}
	}

	var tokens []Token
	appendText := func(s string) {
		if n := len(tokens); n > 0 && tokens[n-1].Kind == KindText {
			tokens[n-1].Content += s
			return
		}
		tokens = append(tokens, Token{Kind: KindText, Content: s})
	}

	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			break
		}
		kind, content := mapInlineToken(inlineTokenNames[tok.Type], tok.Value)
		if kind == KindText {
			// Merge first, normalize after: a shorthand sequence may
			// straddle the boundary between a delimiter character and
			// the plain stretch that follows it (eg "[" + "v]").
			appendText(content)
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Content: NormalizeSymbols(content)})
	}

	for i := range tokens {
		if tokens[i].Kind == KindText {
			tokens[i].Content = NormalizeSymbols(tokens[i].Content)
		}
	}
	return tokens
}

// mapInlineToken strips the matched delimiters and returns the inline
// token kind with its inner content.
func mapInlineToken(name, value string) (Kind, string) {
	switch name {
	case "Bold":
		return KindBold, value[2 : len(value)-2]
	case "Italic":
		return KindItalic, value[1 : len(value)-1]
	case "Strike":
		return KindStrike, value[2 : len(value)-2]
	case "Highlight":
		return KindHighlight, value[2 : len(value)-2]
	case "Underline":
		return KindUnderline, value[1 : len(value)-1]
	case "Link":
		return KindLink, linkLabel(value)
	case "Code":
		return KindCode, value[1 : len(value)-1]
	default: // Text, Punct
		return KindText, value
	}
}

// linkLabel extracts the display label from a [label](href) match. The
// href is display-irrelevant and discarded at this layer.
func linkLabel(value string) string {
	end := strings.IndexByte(value, ']')
	if end < 1 {
		return value
	}
	return value[1:end]
}

// newLinePattern reports lines consisting solely of three or more
// repetitions of c, optionally padded with spaces or tabs.
func newLinePattern(c byte) func(string) bool {
	return func(line string) bool {
		trimmed := strings.Trim(line, " \t")
		if len(trimmed) < 3 {
			return false
		}
		for i := 0; i < len(trimmed); i++ {
			if trimmed[i] != c {
				return false
			}
		}
		return true
	}
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}
