package inline

import (
	"context"
	"errors"
	"testing"

	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/test"
)

type fakeImage struct {
	src string
}

func (f *fakeImage) Properties(context.Context) (*dom.Properties, error) {
	return &dom.Properties{NodeName: "IMG"}, nil
}

func (f *fakeImage) Property(_ context.Context, name string) (interface{}, error) {
	if name == "src" {
		return f.src, nil
	}
	return nil, nil
}

func (f *fakeImage) Children(context.Context) ([]dom.Element, error) {
	return nil, nil
}

type fakeRaster struct {
	calls    []string
	attached int
	err      error
}

func (r *fakeRaster) CreateImage(_ context.Context, src string) (dom.Element, error) {
	r.calls = append(r.calls, "create "+src)
	return &fakeImage{src: src}, nil
}

func (r *fakeRaster) AttachImage(_ context.Context, img dom.Element) error {
	r.calls = append(r.calls, "attach")
	r.attached++
	return nil
}

func (r *fakeRaster) DetachImage(_ context.Context, img dom.Element) error {
	r.calls = append(r.calls, "detach")
	r.attached--
	return nil
}

func (r *fakeRaster) Rasterize(_ context.Context, img dom.Element) (string, error) {
	r.calls = append(r.calls, "rasterize")
	if r.err != nil {
		return "", r.err
	}
	return "data:image/png;base64,iVBORw0KGgo=", nil
}

func TestExtractURL(t *testing.T) {
	cases := []struct {
		css    string
		expect string
		ok     bool
	}{
		{`url("http://x/y.png")`, "http://x/y.png", true},
		{`url('http://x/y.png')`, "http://x/y.png", true},
		{`url( http://x/y.png )`, "http://x/y.png", true},
		{`url("data:image/png;base64,AAAA")`, "data:image/png;base64,AAAA", true},
		{`none`, "", false},
		{`linear-gradient(red, blue)`, "", false},
		{`url()`, "", false},
	}

	for _, c := range cases {
		src, ok := ExtractURL(c.css)
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.css, ok, c.ok)
		}
		test.Diff(t, c.css, c.expect, src)
	}
}

func TestBackground(t *testing.T) {
	raster := &fakeRaster{}
	inliner := New(raster, nil)

	data, err := inliner.Background(context.Background(), `url("http://x/y.png")`)
	if err != nil {
		t.Fatal(err)
	}
	if data == nil {
		t.Fatal("expected inlined data")
	}

	test.Diff(t, "base64", "iVBORw0KGgo=", *data)
	test.Diff(t, "calls", []string{"create http://x/y.png", "attach", "rasterize", "detach"}, raster.calls)

	if raster.attached != 0 {
		t.Error("helper image should be detached")
	}
}

func TestBackgroundNone(t *testing.T) {
	raster := &fakeRaster{}

	data, err := New(raster, nil).Background(context.Background(), "none")
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Error("expected nil for none")
	}
	if len(raster.calls) != 0 {
		t.Error("rasterizer should not be touched")
	}
}

func TestBackgroundRasterizeError(t *testing.T) {
	tainted := errors.New("tainted canvas")
	raster := &fakeRaster{err: tainted}

	_, err := New(raster, nil).Background(context.Background(), `url(http://other/y.png)`)
	if !errors.Is(err, tainted) {
		t.Fatalf("expected tainted canvas error, got %v", err)
	}
	if raster.attached != 0 {
		t.Error("helper image should be detached after a failure")
	}
}

func TestElement(t *testing.T) {
	raster := &fakeRaster{}

	data, err := New(raster, nil).Element(context.Background(), &fakeImage{src: "http://x/y.png"})
	if err != nil {
		t.Fatal(err)
	}

	test.Diff(t, "base64", "iVBORw0KGgo=", data)
	test.Diff(t, "calls", []string{"rasterize"}, raster.calls)
}
