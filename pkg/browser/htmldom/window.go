package htmldom

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/dom"
	"golang.org/x/net/html"
)

// Window is a parsed document. It implements browser.Session.
type Window struct {
	url  *url.URL
	base *url.URL
	doc  *goquery.Document

	root *html.Node
	body *html.Node

	rules    []rule
	computed map[*html.Node]map[string]string

	fetch func(context.Context, *url.URL) ([]byte, error)
	log   *log.Entry
}

func (w *Window) URL() string {
	return w.url.String()
}

func (w *Window) DocumentElement(context.Context) (dom.Element, error) {
	if w.root == nil {
		return nil, nil
	}
	return w.element(w.root), nil
}

// BoundingClientRect is always empty: static documents are not laid out.
func (w *Window) BoundingClientRect(_ context.Context, el dom.Element) (*dom.Rect, error) {
	if _, err := w.node(el); err != nil {
		return nil, err
	}
	return &dom.Rect{}, nil
}

func (w *Window) ScrollOffset(context.Context) (*dom.Scroll, error) {
	return &dom.Scroll{}, nil
}

func (w *Window) Close() error {
	w.computed = nil
	return nil
}

func (w *Window) element(n *html.Node) *element {
	return &element{win: w, node: n}
}

func (w *Window) node(el dom.Element) (*html.Node, error) {
	e, ok := el.(*element)
	if !ok || e.win != w {
		return nil, errForeignElement
	}
	return e.node, nil
}
