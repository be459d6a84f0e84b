package domobject

import (
	"context"

	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/pkg/typecast"
)

// resolvedAttributes are read from the element property, which holds the absolute URL.
var resolvedAttributes = map[string]bool{
	"href": true,
	"src":  true,
}

func Attributes(ctx context.Context, el dom.Element, props *dom.Properties) (map[string]typecast.Value, error) {
	attrs := make(map[string]typecast.Value, len(props.Attributes))

	for _, a := range props.Attributes {
		if !resolvedAttributes[a.Name] {
			attrs[a.Name] = typecast.Cast(a.Value)
			continue
		}

		v, err := el.Property(ctx, a.Name)
		if err != nil {
			return nil, err
		}
		attrs[a.Name] = v
	}

	return attrs, nil
}

func DataSet(props *dom.Properties) map[string]typecast.Value {
	data := make(map[string]typecast.Value, len(props.Dataset))

	for _, d := range props.Dataset {
		data[d.Key] = typecast.Cast(d.Value)
	}

	return data
}
