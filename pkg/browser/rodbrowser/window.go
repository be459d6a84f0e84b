package rodbrowser

import (
	"context"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/dom"
)

type element struct {
	s  *Session
	el *rod.Element
}

func (s *Session) element(el *rod.Element) *element {
	return &element{s: s, el: el}
}

func (s *Session) rodElement(el dom.Element) (*rod.Element, error) {
	e, ok := el.(*element)
	if !ok || e.s != s {
		return nil, errForeignElement
	}
	return e.el, nil
}

func decode(res *proto.RuntimeRemoteObject, v interface{}) error {
	data, err := res.Value.MarshalJSON()
	if err != nil {
		return err
	}
	return browser.Unmarshal(data, v)
}

func (s *Session) DocumentElement(ctx context.Context) (dom.Element, error) {
	el, err := s.page.Context(ctx).ElementByJS(rod.Eval(browser.ScriptDocumentElement))
	if err != nil {
		return nil, err
	}
	return s.element(el), nil
}

func (e *element) Properties(ctx context.Context) (*dom.Properties, error) {
	res, err := e.el.Context(ctx).Eval(browser.ScriptProperties)
	if err != nil {
		return nil, err
	}

	var raw browser.RawProperties
	if err := decode(res, &raw); err != nil {
		return nil, err
	}
	return raw.Properties(), nil
}

func (e *element) Property(ctx context.Context, name string) (interface{}, error) {
	res, err := e.el.Context(ctx).Eval(browser.ScriptProperty, name)
	if err != nil {
		return nil, err
	}
	if res.Value.Nil() {
		return nil, nil
	}
	return res.Value.Str(), nil
}

func (e *element) Children(ctx context.Context) ([]dom.Element, error) {
	els, err := e.el.Context(ctx).Elements(":scope > *")
	if err != nil {
		return nil, err
	}

	children := make([]dom.Element, 0, len(els))
	for _, el := range els {
		children = append(children, e.s.element(el))
	}
	return children, nil
}

func (s *Session) ComputedStyle(ctx context.Context, el dom.Element, pseudo string) (dom.Declaration, error) {
	re, err := s.rodElement(el)
	if err != nil {
		return nil, err
	}

	var arg interface{}
	if pseudo != "" {
		arg = pseudo
	}

	res, err := re.Context(ctx).Eval(browser.ScriptComputedStyle, arg)
	if err != nil {
		return nil, err
	}

	var raw browser.RawDeclaration
	if err := decode(res, &raw); err != nil {
		return nil, err
	}
	return raw.Declaration(), nil
}

func (s *Session) BoundingClientRect(ctx context.Context, el dom.Element) (*dom.Rect, error) {
	re, err := s.rodElement(el)
	if err != nil {
		return nil, err
	}

	res, err := re.Context(ctx).Eval(browser.ScriptBoundingClientRect)
	if err != nil {
		return nil, err
	}

	rect := &dom.Rect{}
	if err := decode(res, rect); err != nil {
		return nil, err
	}
	return rect, nil
}

func (s *Session) ScrollOffset(ctx context.Context) (*dom.Scroll, error) {
	res, err := s.page.Context(ctx).Eval(browser.ScriptScrollOffset)
	if err != nil {
		return nil, err
	}

	scroll := &dom.Scroll{}
	if err := decode(res, scroll); err != nil {
		return nil, err
	}
	return scroll, nil
}

func (s *Session) CreateImage(ctx context.Context, src string) (dom.Element, error) {
	el, err := s.page.Context(ctx).ElementByJS(rod.Eval(browser.ScriptCreateImage, src))
	if err != nil {
		return nil, err
	}
	return s.element(el), nil
}

func (s *Session) AttachImage(ctx context.Context, img dom.Element) error {
	return s.call(ctx, img, browser.ScriptAttachImage)
}

func (s *Session) DetachImage(ctx context.Context, img dom.Element) error {
	return s.call(ctx, img, browser.ScriptDetachImage)
}

// Rasterize fails when the canvas is tainted by a cross-origin image.
func (s *Session) Rasterize(ctx context.Context, img dom.Element) (string, error) {
	re, err := s.rodElement(img)
	if err != nil {
		return "", err
	}

	res, err := re.Context(ctx).Eval(browser.ScriptRasterize)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (s *Session) call(ctx context.Context, el dom.Element, script string) error {
	re, err := s.rodElement(el)
	if err != nil {
		return err
	}

	_, err = re.Context(ctx).Eval(script)
	return err
}
