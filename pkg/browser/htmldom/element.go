package htmldom

import (
	"context"
	"net/url"
	"strings"

	"github.com/zdunecki/domobject/pkg/dom"
	"golang.org/x/net/html"
)

// urlProperties lists the elements reflecting href and src as resolved URL properties.
var urlProperties = map[string]map[string]bool{
	"href": {"a": true, "area": true, "link": true, "base": true},
	"src": {
		"img": true, "script": true, "iframe": true, "frame": true, "embed": true,
		"source": true, "track": true, "input": true, "audio": true, "video": true,
	},
}

type element struct {
	win  *Window
	node *html.Node
}

func (e *element) Properties(context.Context) (*dom.Properties, error) {
	n := e.node

	p := &dom.Properties{
		NodeName:    nodeName(n),
		TextContent: textContent(n),
	}

	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}

		p.Attributes = append(p.Attributes, dom.Attribute{Name: name, Value: a.Val})

		switch {
		case name == "id":
			p.ID = a.Val
		case name == "class":
			p.ClassName = a.Val
		case strings.HasPrefix(name, "data-"):
			p.Dataset = append(p.Dataset, dom.DataField{Key: datasetKey(name), Value: a.Val})
		}
	}

	return p, nil
}

func (e *element) Property(_ context.Context, name string) (interface{}, error) {
	tags, ok := urlProperties[name]
	if !ok || e.node.Namespace != "" || !tags[e.node.Data] {
		return nil, nil
	}

	v, ok := getAttribute(name, e.node)
	if !ok {
		return "", nil
	}

	ref, err := url.Parse(strings.TrimSpace(v))
	if err != nil {
		return v, nil
	}
	return e.win.base.ResolveReference(ref).String(), nil
}

func (e *element) Children(context.Context) ([]dom.Element, error) {
	var children []dom.Element

	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, e.win.element(c))
		}
	}

	return children, nil
}

func getAttribute(attrName string, n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}

	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == attrName {
			return a.Val, true
		}
	}
	return "", false
}

// nodeName upper-cases HTML tag names and keeps foreign (svg, math) names as written.
func nodeName(n *html.Node) string {
	if n.Namespace != "" {
		return n.Data
	}
	return strings.ToUpper(n.Data)
}

func textContent(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)

	return b.String()
}

// datasetKey converts data-foo-bar to fooBar.
func datasetKey(attr string) string {
	name := strings.TrimPrefix(attr, "data-")

	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' && i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z' {
			b.WriteByte(name[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
