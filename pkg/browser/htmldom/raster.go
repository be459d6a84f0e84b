package htmldom

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/url"

	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/dom"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blankDataURL is what a browser exports for a zero sized canvas.
const blankDataURL = "data:,"

func (w *Window) CreateImage(_ context.Context, src string) (dom.Element, error) {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	}
	return w.element(n), nil
}

func (w *Window) AttachImage(_ context.Context, img dom.Element) error {
	n, err := w.node(img)
	if err != nil {
		return err
	}
	if w.body == nil {
		return browser.ErrNoBody
	}
	if n.Parent == nil {
		w.body.AppendChild(n)
	}
	return nil
}

func (w *Window) DetachImage(_ context.Context, img dom.Element) error {
	n, err := w.node(img)
	if err != nil {
		return err
	}
	if n.Parent != w.body || w.body == nil {
		return browser.ErrDetached
	}
	w.body.RemoveChild(n)
	return nil
}

// Rasterize decodes the image source and re-encodes it as PNG at its natural size. Sources that
// cannot be loaded or decoded produce a blank canvas, as an unloaded image does in a browser.
func (w *Window) Rasterize(ctx context.Context, img dom.Element) (string, error) {
	n, err := w.node(img)
	if err != nil {
		return "", err
	}
	if n.Namespace != "" || n.Data != "img" {
		return "", browser.ErrNotAnImage
	}

	src, err := img.Property(ctx, "src")
	if err != nil {
		return "", err
	}

	s, _ := src.(string)
	if s == "" {
		return blankDataURL, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		w.log.Debugf("invalid image url %s: %v", s, err)
		return blankDataURL, nil
	}

	data, err := w.fetch(ctx, u)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		w.log.Debugf("image %s not loaded: %v", s, err)
		return blankDataURL, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		w.log.Debugf("image %s not decoded: %v", s, err)
		return blankDataURL, nil
	}
	if decoded.Bounds().Empty() {
		return blankDataURL, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
