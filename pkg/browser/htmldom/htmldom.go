// Package htmldom is an offline backend: it parses static HTML and evaluates the document's
// style sheets without a browser. There is no layout engine, so every bounding rectangle and
// scroll offset is zero, and at-rules (media queries included) are not evaluated.
package htmldom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/parser"
	log "github.com/sirupsen/logrus"
	"github.com/zdunecki/domobject/pkg/browser"
	"golang.org/x/net/html"
)

type Option func(*Backend)

func WithHTTPClient(client *http.Client) Option {
	return func(b *Backend) {
		b.http = client
	}
}

func WithLogger(entry *log.Entry) Option {
	return func(b *Backend) {
		b.log = entry
	}
}

type Backend struct {
	http *http.Client
	log  *log.Entry
}

func New(opts ...Option) *Backend {
	b := &Backend{
		http: &http.Client{
			Timeout: time.Minute,
		},
		log: log.WithField("component", "htmldom"),
	}

	for _, o := range opts {
		o(b)
	}

	return b
}

// Open loads target, an http(s) or file URL or a local path, and parses it.
func (b *Backend) Open(ctx context.Context, target string) (browser.Session, error) {
	u, err := targetURL(target)
	if err != nil {
		return nil, err
	}

	data, err := b.fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	w, err := b.parse(ctx, bytes.NewReader(data), u)
	if err != nil {
		return nil, err
	}

	b.log.Infof("opened %s", u)

	return w, nil
}

// Parse reads a document as if it was loaded from docURL.
func Parse(r io.Reader, docURL string, opts ...Option) (*Window, error) {
	u, err := url.Parse(docURL)
	if err != nil {
		return nil, err
	}

	return New(opts...).parse(context.Background(), r, u)
}

func (b *Backend) parse(ctx context.Context, r io.Reader, u *url.URL) (*Window, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	w := &Window{
		url:      u,
		base:     u,
		doc:      doc,
		computed: make(map[*html.Node]map[string]string),
		fetch:    b.subresources(u),
		log:      b.log.WithField("url", u.String()),
	}

	if root := doc.Find("html").First(); root.Length() > 0 {
		w.root = root.Get(0)
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		w.body = body.Get(0)
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(href); err == nil {
			w.base = u.ResolveReference(ref)
		}
	}

	order := 0
	doc.Find(`style, link[rel~="stylesheet"][href]`).Each(func(_ int, s *goquery.Selection) {
		text := s.Text()

		if goquery.NodeName(s) == "link" {
			href, _ := s.Attr("href")
			sheetURL, err := w.base.Parse(href)
			if err != nil {
				w.log.Warnf("invalid stylesheet url %s: %v", href, err)
				return
			}

			data, err := w.fetch(ctx, sheetURL)
			if err != nil {
				w.log.Warnf("skipping stylesheet %s: %v", sheetURL, err)
				return
			}
			text = string(data)
		}

		sheet, err := parser.Parse(text)
		if err != nil {
			w.log.Warnf("skipping unparsable stylesheet: %v", err)
			return
		}

		w.rules = append(w.rules, compileRules(sheet, &order, w.log)...)
	})

	w.log.Debugf("parsed document with %d style rules", len(w.rules))

	return w, nil
}

func targetURL(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "file") {
		return u, nil
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}

	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

// subresources returns the fetch used for style sheets and images of the document at doc. A
// document served over http(s) may not read local files.
func (b *Backend) subresources(doc *url.URL) func(context.Context, *url.URL) ([]byte, error) {
	remote := doc.Scheme == "http" || doc.Scheme == "https"

	return func(ctx context.Context, u *url.URL) ([]byte, error) {
		if remote && u.Scheme == "file" {
			return nil, fmt.Errorf("%w: %s from %s document", browser.ErrSchemeNotAllowed, u, doc.Scheme)
		}
		return b.fetch(ctx, u)
	}
}

// fetch reads an http(s), file or data URL.
func (b *Backend) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	switch u.Scheme {
	case "data":
		return decodeDataURL(u.String())
	case "file":
		return os.ReadFile(filepath.FromSlash(u.Path))
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %d", browser.ErrHTTPNotOK, u, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
