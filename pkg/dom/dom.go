// Package dom describes the browser capabilities a DOM walk consumes: tree access, computed
// style, geometry and rasterization. Backends in pkg/browser implement them.
package dom

import "context"

// Window bundles every capability of a browsing context.
type Window interface {
	Document
	StyleComputer
	Geometry
	Rasterizer
}

type Document interface {
	URL() string

	DocumentElement(context.Context) (Element, error)
}

// Element is a read-only handle on a live element.
type Element interface {
	// Properties reads the element identity, attributes, dataset and text content.
	Properties(context.Context) (*Properties, error)

	// Property returns the IDL property with the given name, nil when the element does not have it.
	Property(ctx context.Context, name string) (interface{}, error)

	// Children returns child elements in document order.
	Children(context.Context) ([]Element, error)
}

type Properties struct {
	NodeName    string
	ID          string
	ClassName   string
	TextContent string
	Attributes  []Attribute
	Dataset     []DataField
}

type Attribute struct {
	Name  string
	Value string
}

type DataField struct {
	Key   string
	Value string
}

const (
	PseudoBefore = "::before"
	PseudoAfter  = "::after"
)

type StyleComputer interface {
	// ComputedStyle enumerates the computed style of el, or of its pseudo element when pseudo is set.
	ComputedStyle(ctx context.Context, el Element, pseudo string) (Declaration, error)
}

type Geometry interface {
	BoundingClientRect(context.Context, Element) (*Rect, error)

	ScrollOffset(context.Context) (*Scroll, error)
}

// Rasterizer draws images onto an off-screen canvas.
type Rasterizer interface {
	// CreateImage creates a detached image element loading src.
	CreateImage(ctx context.Context, src string) (Element, error)

	// AttachImage appends img to the document body.
	AttachImage(ctx context.Context, img Element) error

	// DetachImage removes img from the document body.
	DetachImage(ctx context.Context, img Element) error

	// Rasterize draws img at its natural size and exports the canvas as a PNG data URI.
	Rasterize(ctx context.Context, img Element) (string, error)
}
