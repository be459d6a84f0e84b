package domobject

import (
	"context"

	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/pkg/typecast"
)

// Offset returns the bounding rectangle of el moved by the page scroll. top and bottom are
// moved by the vertical scroll, every other field by the horizontal one. A field that sums to
// zero falls back to the body scroll offset.
func Offset(ctx context.Context, geo dom.Geometry, el dom.Element) (map[string]typecast.Value, error) {
	rect, err := geo.BoundingClientRect(ctx, el)
	if err != nil {
		return nil, err
	}

	scroll, err := geo.ScrollOffset(ctx)
	if err != nil {
		return nil, err
	}

	offset := make(map[string]typecast.Value)
	for _, f := range rect.Fields() {
		var v float64

		switch f.Name {
		case "top", "bottom":
			if v = f.Value + scroll.DocumentTop; v == 0 {
				v = scroll.BodyTop
			}
		default:
			if v = f.Value + scroll.DocumentLeft; v == 0 {
				v = scroll.BodyLeft
			}
		}

		offset[f.Name] = typecast.Cast(v)
	}

	return offset, nil
}
