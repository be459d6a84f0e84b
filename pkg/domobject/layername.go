package domobject

import (
	"strings"

	"github.com/zdunecki/domobject/pkg/dom"
)

// LayerName names an element after its tag, id and classes, e.g. div#foo.bar.baz.
func LayerName(p *dom.Properties) string {
	name := strings.ToLower(p.NodeName)

	if p.ID != "" {
		name += "#" + p.ID
	}

	if classes := strings.Fields(p.ClassName); len(classes) > 0 {
		name += "." + strings.Join(classes, ".")
	}

	return name
}
