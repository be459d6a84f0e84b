// Package browser binds the dom capabilities to concrete engines. Each backend opens a Session
// on a target page; a Session serves one walk at a time.
package browser

import (
	"context"
	"fmt"
	"sort"

	"github.com/zdunecki/domobject/pkg/dom"
)

const (
	BackendHTML     = "html"
	BackendRod      = "rod"
	BackendChromeDP = "chromedp"
)

type Session interface {
	dom.Window

	Close() error
}

type Opener interface {
	Open(ctx context.Context, target string) (Session, error)
}

type OpenerFunc func(ctx context.Context, target string) (Session, error)

func (f OpenerFunc) Open(ctx context.Context, target string) (Session, error) {
	return f(ctx, target)
}

// Registry maps backend names to openers.
type Registry map[string]Opener

func (r Registry) Get(name string) (Opener, error) {
	o, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	return o, nil
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
