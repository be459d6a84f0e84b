// Package inline renders images and CSS background images to base64 PNG data.
//
// Background images are loaded through a transient image element that is not awaited: when the
// image is not cached yet the canvas is drawn before it loads and the result is a blank raster.
package inline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/dom"
)

const pngDataURIPrefix = "data:image/png;base64,"

var cssURL = regexp.MustCompile(`^url\s*\(\s*("|')?([^'"\)\s]+)`)

// ExtractURL returns the address of a leading url(...) token of a background-image value.
func ExtractURL(css string) (string, bool) {
	m := cssURL.FindStringSubmatch(css)
	if m == nil {
		return "", false
	}
	return m[2], true
}

type Inliner struct {
	raster dom.Rasterizer
	log    *log.Entry
}

func New(raster dom.Rasterizer, logger *log.Entry) *Inliner {
	if logger == nil {
		logger = log.WithField("component", "inliner")
	}

	return &Inliner{
		raster: raster,
		log:    logger,
	}
}

// Background inlines the image referenced by a background-image value. It returns nil when the
// value has no url(...) token, e.g. "none" or a gradient.
func (i *Inliner) Background(ctx context.Context, css string) (_ *string, err error) {
	src, ok := ExtractURL(css)
	if !ok {
		return nil, nil
	}

	img, err := i.raster.CreateImage(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("create image %s: %w", src, err)
	}

	if err := i.raster.AttachImage(ctx, img); err != nil {
		return nil, fmt.Errorf("attach image %s: %w", src, err)
	}
	defer func() {
		if detachErr := i.raster.DetachImage(ctx, img); detachErr != nil && err == nil {
			err = fmt.Errorf("detach image %s: %w", src, detachErr)
		}
	}()

	data, err := i.rasterize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", src, err)
	}

	i.log.Debugf("inlined background image %s", src)

	return &data, nil
}

// Element inlines an image element that is already part of the document.
func (i *Inliner) Element(ctx context.Context, img dom.Element) (string, error) {
	data, err := i.rasterize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("rasterize image element: %w", err)
	}
	return data, nil
}

func (i *Inliner) rasterize(ctx context.Context, img dom.Element) (string, error) {
	uri, err := i.raster.Rasterize(ctx, img)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(uri, pngDataURIPrefix), nil
}
