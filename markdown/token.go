package markdown

// Kind identifies the variant of a Token.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindUnderline
	KindStrike
	KindHighlight
	KindCode
	KindLink
	KindLineBreak
	KindRule
	KindRuleDouble
)

// String returns the lowercase name of the kind, matching the
// delimiter grammar it was produced from.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindUnderline:
		return "underline"
	case KindStrike:
		return "strike"
	case KindHighlight:
		return "highlight"
	case KindCode:
		return "code"
	case KindLink:
		return "link"
	case KindLineBreak:
		return "line-break"
	case KindRule:
		return "rule"
	case KindRuleDouble:
		return "rule-double"
	default:
		return "unknown"
	}
}

// Token is one inline span or marker produced by Tokenize. Content is
// empty for the marker kinds (line-break and the two rule variants) and
// holds the delimiter-stripped, symbol-normalized text otherwise. For a
// link the content is the label; the href is dropped during tokenizing
// because only the label is ever displayed.
type Token struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content,omitempty"`
}

// HasContent reports whether the token kind carries text.
func (t Token) HasContent() bool {
	switch t.Kind {
	case KindLineBreak, KindRule, KindRuleDouble:
		return false
	default:
		return true
	}
}
