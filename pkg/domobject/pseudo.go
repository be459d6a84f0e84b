package domobject

import (
	"context"

	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/pkg/styles"
	"github.com/zdunecki/domobject/pkg/typecast"
)

// PseudoElementsOf reads the ::after and ::before styles of el.
func PseudoElementsOf(ctx context.Context, sc dom.StyleComputer, el dom.Element) (PseudoElements, error) {
	var pseudo PseudoElements

	after, err := pseudoRecord(ctx, sc, el, dom.PseudoAfter)
	if err != nil {
		return pseudo, err
	}

	before, err := pseudoRecord(ctx, sc, el, dom.PseudoBefore)
	if err != nil {
		return pseudo, err
	}

	pseudo.After = *after
	pseudo.Before = *before

	return pseudo, nil
}

func pseudoRecord(ctx context.Context, sc dom.StyleComputer, el dom.Element, selector string) (*PseudoRecord, error) {
	decl, err := sc.ComputedStyle(ctx, el, selector)
	if err != nil {
		return nil, err
	}

	record := &PseudoRecord{
		Styles: make(map[string]typecast.Value),
	}

	for _, e := range styles.Filter(decl) {
		record.Styles[e.Name] = typecast.Cast(e.Raw())
	}

	if content, ok := decl.Get("content"); ok && content.Kind == dom.KindString {
		record.Text = &content.Value
	}

	return record, nil
}
