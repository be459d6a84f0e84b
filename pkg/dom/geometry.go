package dom

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type RectField struct {
	Name  string
	Value float64
}

// Fields lists the rectangle in DOMRect enumeration order.
func (r *Rect) Fields() []RectField {
	return []RectField{
		{"x", r.X},
		{"y", r.Y},
		{"width", r.Width},
		{"height", r.Height},
		{"top", r.Top},
		{"right", r.Right},
		{"bottom", r.Bottom},
		{"left", r.Left},
	}
}

// Scroll holds the scroll offsets of the root element and of the body.
type Scroll struct {
	DocumentTop  float64 `json:"documentTop"`
	DocumentLeft float64 `json:"documentLeft"`
	BodyTop      float64 `json:"bodyTop"`
	BodyLeft     float64 `json:"bodyLeft"`
}
