// Package domobject converts a live DOM tree into a plain object graph: layer names, filtered
// and type-cast computed styles including pseudo elements, scroll-adjusted geometry, text,
// attributes, dataset and inlined image data.
package domobject

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/pkg/inline"
	"github.com/zdunecki/domobject/pkg/styles"
	"github.com/zdunecki/domobject/pkg/typecast"
)

const (
	backgroundImage       = "backgroundImage"
	backgroundImageBase64 = "backgroundImageBase64"

	imageNodeName = "IMG"
)

type Option func(*Walker)

func WithLogger(entry *log.Entry) Option {
	return func(w *Walker) {
		w.log = entry
	}
}

// WithMaxDepth bounds the depth of the walk, 0 means unbounded.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		w.maxDepth = depth
	}
}

// Walker builds Node records depth first. It keeps no state between walks.
type Walker struct {
	win      dom.Window
	inliner  *inline.Inliner
	maxDepth int

	log *log.Entry
}

func New(win dom.Window, opts ...Option) *Walker {
	w := &Walker{
		win: win,
		log: log.WithField("component", "walker"),
	}

	for _, o := range opts {
		o(w)
	}

	w.inliner = inline.New(win, w.log.WithField("component", "inliner"))

	return w
}

// Init walks the whole document.
func Init(ctx context.Context, win dom.Window, opts ...Option) (*Result, error) {
	if win == nil {
		return nil, ErrWindowIsRequired
	}

	return New(win, opts...).Init(ctx)
}

func (w *Walker) Init(ctx context.Context) (*Result, error) {
	root, err := w.win.DocumentElement(ctx)
	if err != nil {
		return nil, fmt.Errorf("document element: %w", err)
	}
	if root == nil {
		return nil, ErrNoDocumentElement
	}

	w.log.Debugf("walking %s", w.win.URL())

	elements, err := w.Walk(ctx, root)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document: w.win,
		Elements: elements,
	}, nil
}

// Walk builds the record of el and of all its descendants.
func (w *Walker) Walk(ctx context.Context, el dom.Element) (*Node, error) {
	return w.walk(ctx, el, 0)
}

func (w *Walker) walk(ctx context.Context, el dom.Element, depth int) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if w.maxDepth > 0 && depth >= w.maxDepth {
		return nil, ErrMaxDepthExceeded
	}

	props, err := el.Properties(ctx)
	if err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}

	node := &Node{
		LayerName: LayerName(props),
		Text:      props.TextContent,
		DataSet:   DataSet(props),
		Children:  []*Node{},
	}

	if node.Styles, err = w.styles(ctx, el); err != nil {
		return nil, fmt.Errorf("%s: styles: %w", node.LayerName, err)
	}

	if node.PseudoElements, err = PseudoElementsOf(ctx, w.win, el); err != nil {
		return nil, fmt.Errorf("%s: pseudo elements: %w", node.LayerName, err)
	}

	if node.Offset, err = Offset(ctx, w.win, el); err != nil {
		return nil, fmt.Errorf("%s: offset: %w", node.LayerName, err)
	}

	if node.Attributes, err = Attributes(ctx, el, props); err != nil {
		return nil, fmt.Errorf("%s: attributes: %w", node.LayerName, err)
	}

	if props.NodeName == imageNodeName {
		data, err := w.inliner.Element(ctx, el)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.LayerName, err)
		}
		node.Base64 = &data
	}

	children, err := el.Children(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: children: %w", node.LayerName, err)
	}

	w.log.Debugf("%s: %d children at depth %d", node.LayerName, len(children), depth)

	for _, child := range children {
		childNode, err := w.walk(ctx, child, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}

	return node, nil
}

// styles collects the wanted computed style of el. The background image is also inlined
// under backgroundImageBase64.
func (w *Walker) styles(ctx context.Context, el dom.Element) (map[string]typecast.Value, error) {
	decl, err := w.win.ComputedStyle(ctx, el, "")
	if err != nil {
		return nil, err
	}

	out := make(map[string]typecast.Value)
	for _, e := range styles.Filter(decl) {
		if e.Name == backgroundImage {
			data, err := w.inliner.Background(ctx, e.Value)
			if err != nil {
				return nil, err
			}
			if data != nil {
				out[backgroundImageBase64] = *data
			}
		}

		out[e.Name] = typecast.Cast(e.Raw())
	}

	return out, nil
}
