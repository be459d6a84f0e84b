package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/zdunecki/domobject/test"
)

func TestRegistry(t *testing.T) {
	noop := OpenerFunc(func(context.Context, string) (Session, error) {
		return nil, nil
	})

	r := Registry{
		BackendRod:  noop,
		BackendHTML: noop,
	}

	if _, err := r.Get(BackendHTML); err != nil {
		t.Error(err)
	}

	if _, err := r.Get("webkit"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected unknown backend, got %v", err)
	}

	test.Diff(t, "names", []string{BackendHTML, BackendRod}, r.Names())
}
