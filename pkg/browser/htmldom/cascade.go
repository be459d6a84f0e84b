package htmldom

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/dom"
	"golang.org/x/net/html"
)

// inherited properties flow from the parent computed style when not set on the element.
var inherited = map[string]bool{
	"color":           true,
	"cursor":          true,
	"direction":       true,
	"font-family":     true,
	"font-size":       true,
	"font-style":      true,
	"font-variant":    true,
	"font-weight":     true,
	"letter-spacing":  true,
	"line-height":     true,
	"list-style":      true,
	"list-style-type": true,
	"quotes":          true,
	"text-align":      true,
	"text-indent":     true,
	"text-transform":  true,
	"visibility":      true,
	"white-space":     true,
	"word-spacing":    true,
}

var styleMethods = []string{
	"getPropertyPriority",
	"getPropertyValue",
	"item",
	"removeProperty",
	"setProperty",
}

var cssURLToken = regexp.MustCompile(`url\([^)]*\)`)

type rule struct {
	sel    cascadia.Sel
	pseudo string
	order  int
	decls  []*css.Declaration
}

type candidate struct {
	prop        string
	value       string
	important   bool
	inline      bool
	specificity cascadia.Specificity
	order       int
}

func (c candidate) less(o candidate) bool {
	if c.important != o.important {
		return !c.important
	}
	if c.inline != o.inline {
		return !c.inline
	}
	if c.specificity != o.specificity {
		return c.specificity.Less(o.specificity)
	}
	return c.order < o.order
}

// compileRules keeps the qualified rules of sheet whose selectors cascadia understands.
func compileRules(sheet *css.Stylesheet, order *int, logger *log.Entry) []rule {
	var rules []rule

	for _, r := range sheet.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}

		for _, s := range r.Selectors {
			base, pseudo := splitPseudo(s)

			sel, err := cascadia.Parse(base)
			if err != nil {
				logger.Debugf("skipping selector %q: %v", s, err)
				continue
			}

			rules = append(rules, rule{
				sel:    sel,
				pseudo: pseudo,
				order:  *order,
				decls:  r.Declarations,
			})
		}

		*order++
	}

	return rules
}

func splitPseudo(selector string) (string, string) {
	s := strings.TrimSpace(selector)
	lower := strings.ToLower(s)

	for _, p := range []struct {
		suffix string
		pseudo string
	}{
		{"::before", dom.PseudoBefore},
		{":before", dom.PseudoBefore},
		{"::after", dom.PseudoAfter},
		{":after", dom.PseudoAfter},
	} {
		if strings.HasSuffix(lower, p.suffix) {
			base := strings.TrimSpace(s[:len(s)-len(p.suffix)])
			if base == "" {
				base = "*"
			}
			return base, p.pseudo
		}
	}

	return s, ""
}

// ComputedStyle enumerates the cascaded style of el like a CSSStyleDeclaration: index aliases,
// camelCase and hyphenated names, and the declaration methods.
func (w *Window) ComputedStyle(_ context.Context, el dom.Element, pseudo string) (dom.Declaration, error) {
	n, err := w.node(el)
	if err != nil {
		return nil, err
	}

	if pseudo == "" {
		return declaration(w.computedStyle(n)), nil
	}
	return declaration(w.pseudoStyle(n, pseudo)), nil
}

func (w *Window) computedStyle(n *html.Node) map[string]string {
	if style, ok := w.computed[n]; ok {
		return style
	}

	var parent map[string]string
	if p := n.Parent; p != nil && p.Type == html.ElementNode {
		parent = w.computedStyle(p)
	}

	style := inherit(parent, w.cascade(n, ""))
	if _, ok := style["content"]; !ok {
		style["content"] = "normal"
	}

	if w.computed != nil {
		w.computed[n] = style
	}
	return style
}

func (w *Window) pseudoStyle(n *html.Node, pseudo string) map[string]string {
	style := inherit(w.computedStyle(n), w.cascade(n, pseudo))
	if _, ok := style["content"]; !ok {
		style["content"] = "none"
	}
	return style
}

func inherit(parent, own map[string]string) map[string]string {
	style := make(map[string]string, len(own)+len(inherited))

	for prop := range inherited {
		if v, ok := parent[prop]; ok {
			style[prop] = v
		}
	}

	for prop, v := range own {
		if strings.EqualFold(v, "inherit") {
			if pv, ok := parent[prop]; ok {
				style[prop] = pv
			} else {
				delete(style, prop)
			}
			continue
		}
		style[prop] = v
	}

	if _, ok := style["background-image"]; !ok {
		style["background-image"] = "none"
	}

	return style
}

// cascade applies matching rules by importance, origin, specificity and source order.
func (w *Window) cascade(n *html.Node, pseudo string) map[string]string {
	var cands []candidate

	for _, r := range w.rules {
		if r.pseudo != pseudo || !r.sel.Match(n) {
			continue
		}
		for _, d := range r.decls {
			cands = append(cands, candidate{
				prop:        strings.ToLower(d.Property),
				value:       d.Value,
				important:   d.Important,
				specificity: r.sel.Specificity(),
				order:       r.order,
			})
		}
	}

	if inline, ok := getAttribute("style", n); ok && pseudo == "" {
		decls, err := parser.ParseDeclarations(inline)
		if err != nil {
			w.log.Debugf("skipping inline style %q: %v", inline, err)
		}
		for _, d := range decls {
			cands = append(cands, candidate{
				prop:      strings.ToLower(d.Property),
				value:     d.Value,
				important: d.Important,
				inline:    true,
			})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].less(cands[j])
	})

	style := make(map[string]string)
	for _, c := range cands {
		style[c.prop] = c.value

		if c.prop == "background" {
			if token := cssURLToken.FindString(c.value); token != "" {
				style["background-image"] = token
			} else {
				style["background-image"] = "none"
			}
		}
	}

	return style
}

func declaration(style map[string]string) dom.Declaration {
	props := make([]string, 0, len(style))
	for prop := range style {
		props = append(props, prop)
	}
	sort.Strings(props)

	decl := make(dom.Declaration, 0, 3*len(props)+len(styleMethods)+3)

	for i, prop := range props {
		decl = append(decl, dom.StyleEntry{Name: strconv.Itoa(i), Value: prop, Kind: dom.KindString})
	}

	for _, prop := range props {
		if !strings.HasPrefix(prop, "--") {
			decl = append(decl, dom.StyleEntry{Name: camelCase(prop), Value: style[prop], Kind: dom.KindString})
		}
		if prop == "float" {
			decl = append(decl, dom.StyleEntry{Name: "cssFloat", Value: style[prop], Kind: dom.KindString})
		}
		if strings.Contains(prop, "-") {
			decl = append(decl, dom.StyleEntry{Name: prop, Value: style[prop], Kind: dom.KindString})
		}
	}

	decl = append(decl,
		dom.StyleEntry{Name: "cssText", Value: "", Kind: dom.KindString},
		dom.StyleEntry{Name: "length", Value: strconv.Itoa(len(props)), Kind: dom.KindNumber},
		dom.StyleEntry{Name: "parentRule", Kind: dom.KindNull},
	)

	for _, m := range styleMethods {
		decl = append(decl, dom.StyleEntry{Name: m, Kind: dom.KindFunction})
	}

	return decl
}

// camelCase converts a CSS property name to its CSSOM attribute, -webkit-x becoming WebkitX.
func camelCase(prop string) string {
	var b strings.Builder

	upper := false
	for _, r := range prop {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
