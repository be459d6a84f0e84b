package domobject

import (
	"context"
	"errors"
	"strings"

	"github.com/zdunecki/domobject/pkg/dom"
)

type fakeElement struct {
	props    dom.Properties
	style    dom.Declaration
	before   dom.Declaration
	after    dom.Declaration
	rect     dom.Rect
	urls     map[string]string
	children []*fakeElement
}

func el(tag string, attrs map[string]string, children ...*fakeElement) *fakeElement {
	e := &fakeElement{
		props: dom.Properties{NodeName: strings.ToUpper(tag)},
		urls:  map[string]string{},
	}

	for name, value := range attrs {
		e.props.Attributes = append(e.props.Attributes, dom.Attribute{Name: name, Value: value})

		switch {
		case name == "id":
			e.props.ID = value
		case name == "class":
			e.props.ClassName = value
		case strings.HasPrefix(name, "data-"):
			e.props.Dataset = append(e.props.Dataset, dom.DataField{Key: strings.TrimPrefix(name, "data-"), Value: value})
		}
	}

	e.children = children
	return e
}

func (e *fakeElement) text(s string) *fakeElement {
	e.props.TextContent = s
	return e
}

func (e *fakeElement) Properties(context.Context) (*dom.Properties, error) {
	p := e.props
	if p.TextContent == "" {
		for _, c := range e.children {
			p.TextContent += c.props.TextContent
		}
	}
	return &p, nil
}

func (e *fakeElement) Property(_ context.Context, name string) (interface{}, error) {
	if u, ok := e.urls[name]; ok {
		return u, nil
	}
	return nil, nil
}

func (e *fakeElement) Children(context.Context) ([]dom.Element, error) {
	out := make([]dom.Element, 0, len(e.children))
	for _, c := range e.children {
		out = append(out, c)
	}
	return out, nil
}

type fakeWindow struct {
	root      *fakeElement
	scroll    dom.Scroll
	rasterErr error
	attached  int
	created   []string
}

func (w *fakeWindow) URL() string {
	return "http://example.test/"
}

func (w *fakeWindow) DocumentElement(context.Context) (dom.Element, error) {
	if w.root == nil {
		return nil, nil
	}
	return w.root, nil
}

func (w *fakeWindow) ComputedStyle(_ context.Context, el dom.Element, pseudo string) (dom.Declaration, error) {
	fe, ok := el.(*fakeElement)
	if !ok {
		return nil, errors.New("foreign element")
	}

	switch pseudo {
	case dom.PseudoBefore:
		return fe.before, nil
	case dom.PseudoAfter:
		return fe.after, nil
	default:
		return fe.style, nil
	}
}

func (w *fakeWindow) BoundingClientRect(_ context.Context, el dom.Element) (*dom.Rect, error) {
	r := el.(*fakeElement).rect
	return &r, nil
}

func (w *fakeWindow) ScrollOffset(context.Context) (*dom.Scroll, error) {
	s := w.scroll
	return &s, nil
}

func (w *fakeWindow) CreateImage(_ context.Context, src string) (dom.Element, error) {
	w.created = append(w.created, src)
	img := el("img", map[string]string{"src": src})
	img.urls["src"] = src
	return img, nil
}

func (w *fakeWindow) AttachImage(context.Context, dom.Element) error {
	w.attached++
	return nil
}

func (w *fakeWindow) DetachImage(context.Context, dom.Element) error {
	w.attached--
	return nil
}

func (w *fakeWindow) Rasterize(_ context.Context, img dom.Element) (string, error) {
	if w.rasterErr != nil {
		return "", w.rasterErr
	}
	src, _ := img.Property(context.Background(), "src")
	return "data:image/png;base64," + strings.ToUpper(src.(string)), nil
}
