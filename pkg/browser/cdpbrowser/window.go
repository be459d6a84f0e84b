package cdpbrowser

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/mailru/easyjson"
	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/dom"
)

type element struct {
	s  *Session
	id runtime.RemoteObjectID
}

func (s *Session) objectID(el dom.Element) (runtime.RemoteObjectID, error) {
	e, ok := el.(*element)
	if !ok || e.s != s {
		return "", errForeignElement
	}
	return e.id, nil
}

func exception(details *runtime.ExceptionDetails) error {
	if details == nil {
		return nil
	}
	return errors.New(details.Error())
}

func arguments(args []interface{}) ([]*runtime.CallArgument, error) {
	out := make([]*runtime.CallArgument, 0, len(args))
	for _, a := range args {
		raw, err := browser.Marshal(a)
		if err != nil {
			return nil, err
		}
		out = append(out, &runtime.CallArgument{Value: easyjson.RawMessage(raw)})
	}
	return out, nil
}

// call runs fn with this bound to id and decodes its JSON result into v.
func (s *Session) call(ctx context.Context, id runtime.RemoteObjectID, fn string, v interface{}, args ...interface{}) error {
	callArgs, err := arguments(args)
	if err != nil {
		return err
	}

	return s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		res, details, err := runtime.CallFunctionOn(fn).
			WithObjectID(id).
			WithArguments(callArgs).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return err
		}
		if err := exception(details); err != nil {
			return err
		}
		if v == nil || res == nil || len(res.Value) == 0 {
			return nil
		}
		return browser.Unmarshal(res.Value, v)
	}))
}

// object runs fn like call but keeps the result in the page as a remote object.
func (s *Session) object(ctx context.Context, id runtime.RemoteObjectID, fn string, args ...interface{}) (*element, error) {
	callArgs, err := arguments(args)
	if err != nil {
		return nil, err
	}

	var objectID runtime.RemoteObjectID
	err = s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		res, details, err := runtime.CallFunctionOn(fn).
			WithObjectID(id).
			WithArguments(callArgs).
			Do(ctx)
		if err != nil {
			return err
		}
		if err := exception(details); err != nil {
			return err
		}
		if res == nil || res.ObjectID == "" {
			return errNotAnObject
		}
		objectID = res.ObjectID
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return &element{s: s, id: objectID}, nil
}

// window resolves the global object so page level scripts can be called like element ones.
func (s *Session) window(ctx context.Context) (runtime.RemoteObjectID, error) {
	var id runtime.RemoteObjectID
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		res, details, err := runtime.Evaluate("window").Do(ctx)
		if err != nil {
			return err
		}
		if err := exception(details); err != nil {
			return err
		}
		id = res.ObjectID
		return nil
	}))
	return id, err
}

func (s *Session) evaluate(ctx context.Context, fn string, v interface{}) error {
	res, details, err := runtime.Evaluate(fmt.Sprintf("(%s).call(window)", fn)).
		WithReturnByValue(true).
		Do(ctx)
	if err != nil {
		return err
	}
	if err := exception(details); err != nil {
		return err
	}
	return browser.Unmarshal(res.Value, v)
}

func (s *Session) DocumentElement(ctx context.Context) (dom.Element, error) {
	win, err := s.window(ctx)
	if err != nil {
		return nil, err
	}
	return s.object(ctx, win, browser.ScriptDocumentElement)
}

func (e *element) Properties(ctx context.Context) (*dom.Properties, error) {
	var raw browser.RawProperties
	if err := e.s.call(ctx, e.id, browser.ScriptProperties, &raw); err != nil {
		return nil, err
	}
	return raw.Properties(), nil
}

func (e *element) Property(ctx context.Context, name string) (interface{}, error) {
	var value *string
	if err := e.s.call(ctx, e.id, browser.ScriptProperty, &value, name); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return *value, nil
}

func (e *element) Children(ctx context.Context) ([]dom.Element, error) {
	var count int
	if err := e.s.call(ctx, e.id, browser.ScriptChildCount, &count); err != nil {
		return nil, err
	}

	children := make([]dom.Element, 0, count)
	for i := 0; i < count; i++ {
		child, err := e.s.object(ctx, e.id, browser.ScriptChild, i)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children = append(children, child)
	}
	return children, nil
}

func (s *Session) ComputedStyle(ctx context.Context, el dom.Element, pseudo string) (dom.Declaration, error) {
	id, err := s.objectID(el)
	if err != nil {
		return nil, err
	}

	var arg interface{}
	if pseudo != "" {
		arg = pseudo
	}

	var raw browser.RawDeclaration
	if err := s.call(ctx, id, browser.ScriptComputedStyle, &raw, arg); err != nil {
		return nil, err
	}
	return raw.Declaration(), nil
}

func (s *Session) BoundingClientRect(ctx context.Context, el dom.Element) (*dom.Rect, error) {
	id, err := s.objectID(el)
	if err != nil {
		return nil, err
	}

	rect := &dom.Rect{}
	if err := s.call(ctx, id, browser.ScriptBoundingClientRect, rect); err != nil {
		return nil, err
	}
	return rect, nil
}

func (s *Session) ScrollOffset(ctx context.Context) (*dom.Scroll, error) {
	scroll := &dom.Scroll{}
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return s.evaluate(ctx, browser.ScriptScrollOffset, scroll)
	}))
	if err != nil {
		return nil, err
	}
	return scroll, nil
}

func (s *Session) CreateImage(ctx context.Context, src string) (dom.Element, error) {
	win, err := s.window(ctx)
	if err != nil {
		return nil, err
	}
	return s.object(ctx, win, browser.ScriptCreateImage, src)
}

func (s *Session) AttachImage(ctx context.Context, img dom.Element) error {
	id, err := s.objectID(img)
	if err != nil {
		return err
	}
	return s.call(ctx, id, browser.ScriptAttachImage, nil)
}

func (s *Session) DetachImage(ctx context.Context, img dom.Element) error {
	id, err := s.objectID(img)
	if err != nil {
		return err
	}
	return s.call(ctx, id, browser.ScriptDetachImage, nil)
}

func (s *Session) Rasterize(ctx context.Context, img dom.Element) (string, error) {
	id, err := s.objectID(img)
	if err != nil {
		return "", err
	}

	var data string
	if err := s.call(ctx, id, browser.ScriptRasterize, &data); err != nil {
		return "", err
	}
	return data, nil
}
