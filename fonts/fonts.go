// Package fonts maps the fixed named font set onto concrete embedded
// typefaces from golang.org/x/image/font/gofont. Exact glyph fidelity is
// not a goal; each name resolves to a complete regular/bold/italic/
// bold-italic set so style resolution never fails at paint time.
package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// MonoFamily is the family forced onto code runs regardless of the
// requested node family.
const MonoFamily = "mono"

// DefaultFamily is used when a request names no family at all.
const DefaultFamily = "handwriting"

// faceSet holds TTF bytes for the four style variants of one family.
type faceSet struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

var families = map[string]faceSet{
	// The informal display family: small caps stand in for a
	// handwriting face while staying inside the Go typeface set.
	"handwriting": {
		Regular:    gosmallcaps.TTF,
		Bold:       gomedium.TTF,
		Italic:     gosmallcapsitalic.TTF,
		BoldItalic: gomediumitalic.TTF,
	},
	"sans": {
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	},
	MonoFamily: {
		Regular:    gomono.TTF,
		Bold:       gomonobold.TTF,
		Italic:     gomonoitalic.TTF,
		BoldItalic: gomonobolditalic.TTF,
	},
}

// Names lists the valid family names.
func Names() []string {
	return []string{DefaultFamily, "sans", MonoFamily}
}

// Has reports whether name is a known family.
func Has(name string) bool {
	_, ok := families[name]
	return ok
}

// Load returns the TTF bytes for one style variant of a named family.
func Load(family string, bold, italic bool) ([]byte, error) {
	set, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("fonts: unknown family %q", family)
	}
	switch {
	case bold && italic:
		return set.BoldItalic, nil
	case bold:
		return set.Bold, nil
	case italic:
		return set.Italic, nil
	default:
		return set.Regular, nil
	}
}
