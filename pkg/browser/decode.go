package browser

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/zdunecki/domobject/pkg/dom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawProperties is the result of ScriptProperties.
type RawProperties struct {
	NodeName    string      `json:"nodeName"`
	ID          string      `json:"id"`
	ClassName   string      `json:"className"`
	TextContent string      `json:"textContent"`
	Attributes  [][2]string `json:"attributes"`
	Dataset     [][2]string `json:"dataset"`
}

func (p *RawProperties) Properties() *dom.Properties {
	props := &dom.Properties{
		NodeName:    p.NodeName,
		ID:          p.ID,
		ClassName:   p.ClassName,
		TextContent: p.TextContent,
	}

	for _, a := range p.Attributes {
		props.Attributes = append(props.Attributes, dom.Attribute{Name: a[0], Value: a[1]})
	}
	for _, d := range p.Dataset {
		props.Dataset = append(props.Dataset, dom.DataField{Key: d[0], Value: d[1]})
	}

	return props
}

// RawDeclaration is the result of ScriptComputedStyle: name, value and typeof kind triples.
type RawDeclaration [][3]string

func (d RawDeclaration) Declaration() dom.Declaration {
	decl := make(dom.Declaration, 0, len(d))

	for _, e := range d {
		decl = append(decl, dom.StyleEntry{
			Name:  e[0],
			Value: e[1],
			Kind:  kindOf(e[2]),
		})
	}

	return decl
}

func kindOf(typeOf string) dom.Kind {
	switch typeOf {
	case "string":
		return dom.KindString
	case "number":
		return dom.KindNumber
	case "null", "undefined":
		return dom.KindNull
	case "function":
		return dom.KindFunction
	default:
		return dom.KindObject
	}
}

// Unmarshal decodes a JSON value returned by the page.
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
