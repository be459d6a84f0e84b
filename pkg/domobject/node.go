package domobject

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/pkg/typecast"
)

// Node mirrors one element of the walked tree.
type Node struct {
	LayerName      string                    `json:"layerName"`
	Styles         map[string]typecast.Value `json:"styles"`
	PseudoElements PseudoElements            `json:"pseudoElements"`
	Offset         map[string]typecast.Value `json:"offset"`
	Text           string                    `json:"text"`
	Attributes     map[string]typecast.Value `json:"attributes"`
	DataSet        map[string]typecast.Value `json:"dataSet"`
	Children       []*Node                   `json:"children"`

	// Base64 is set for image elements only.
	Base64 *string `json:"base64,omitempty"`
}

type PseudoElements struct {
	Before PseudoRecord `json:"before"`
	After  PseudoRecord `json:"after"`
}

type PseudoRecord struct {
	Styles map[string]typecast.Value `json:"styles"`

	// Text is the raw content property, quotes included.
	Text *string `json:"text,omitempty"`
}

// Result is the outcome of one walk over a document.
type Result struct {
	Document dom.Document
	Elements *Node
}

type documentJSON struct {
	URL string `json:"url"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	var doc *documentJSON
	if r.Document != nil {
		doc = &documentJSON{URL: r.Document.URL()}
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(struct {
		Document *documentJSON `json:"document"`
		Elements *Node         `json:"elements"`
	}{
		Document: doc,
		Elements: r.Elements,
	})
}
