package fonts

import (
	"bytes"
	"testing"
)

func TestNamesAreLoadable(t *testing.T) {
	for _, name := range Names() {
		if !Has(name) {
			t.Fatalf("Names() lists %q but Has rejects it", name)
		}
		for _, v := range []struct {
			bold, italic bool
		}{
			{false, false},
			{true, false},
			{false, true},
			{true, true},
		} {
			data, err := Load(name, v.bold, v.italic)
			if err != nil {
				t.Fatalf("Load(%q, bold=%v, italic=%v): %v", name, v.bold, v.italic, err)
			}
			if len(data) == 0 {
				t.Fatalf("Load(%q, bold=%v, italic=%v) returned empty TTF data", name, v.bold, v.italic)
			}
		}
	}
}

func TestUnknownFamily(t *testing.T) {
	if Has("comic") {
		t.Fatal("Has accepted an unknown family")
	}
	if _, err := Load("comic", false, false); err == nil {
		t.Fatal("Load accepted an unknown family")
	}
}

func TestVariantsDiffer(t *testing.T) {
	regular, err := Load("sans", false, false)
	if err != nil {
		t.Fatal(err)
	}
	bold, err := Load("sans", true, false)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(regular, bold) {
		t.Fatal("bold variant resolves to the regular face")
	}
}
