package styles

import (
	"testing"

	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/test"
)

func TestIsUnwanted(t *testing.T) {
	unwanted := []dom.StyleEntry{
		{Name: "0", Value: "background-color", Kind: dom.KindString},
		{Name: "12", Value: "color", Kind: dom.KindString},
		{Name: "MozAppearance", Value: "none", Kind: dom.KindString},
		{Name: "WebkitTransform", Value: "none", Kind: dom.KindString},
		{Name: "background-color", Value: "rgb(0, 0, 0)", Kind: dom.KindString},
		{Name: "getPropertyValue", Kind: dom.KindFunction},
		{Name: "item", Kind: dom.KindFunction},
	}
	for _, e := range unwanted {
		if !IsUnwanted(e) {
			t.Errorf("%q should be unwanted", e.Name)
		}
	}

	wanted := []dom.StyleEntry{
		{Name: "backgroundColor", Value: "rgb(0, 0, 0)", Kind: dom.KindString},
		{Name: "webkitAppearance", Value: "none", Kind: dom.KindString},
		{Name: "length", Value: "3", Kind: dom.KindNumber},
		{Name: "parentRule", Kind: dom.KindNull},
		{Name: "infinityScroll", Value: "x", Kind: dom.KindString},
	}
	for _, e := range wanted {
		if IsUnwanted(e) {
			t.Errorf("%q should be kept", e.Name)
		}
	}
}

func TestFilter(t *testing.T) {
	decl := dom.Declaration{
		{Name: "0", Value: "color", Kind: dom.KindString},
		{Name: "color", Value: "rgb(1, 2, 3)", Kind: dom.KindString},
		{Name: "font-size", Value: "12px", Kind: dom.KindString},
		{Name: "fontSize", Value: "12px", Kind: dom.KindString},
		{Name: "cssFloat", Value: "none", Kind: dom.KindString},
		{Name: "item", Kind: dom.KindFunction},
	}

	expect := dom.Declaration{
		{Name: "color", Value: "rgb(1, 2, 3)", Kind: dom.KindString},
		{Name: "fontSize", Value: "12px", Kind: dom.KindString},
		{Name: "cssFloat", Value: "none", Kind: dom.KindString},
	}

	test.Diff(t, "filtered declaration", expect, Filter(decl))
}
