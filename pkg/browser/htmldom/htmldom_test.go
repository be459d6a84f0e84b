package htmldom

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zdunecki/domobject/pkg/browser"
	"github.com/zdunecki/domobject/pkg/dom"
	"github.com/zdunecki/domobject/pkg/domobject"
	"github.com/zdunecki/domobject/pkg/typecast"
	"github.com/zdunecki/domobject/test"
	"gopkg.in/h2non/gock.v1"
)

const page = `<!DOCTYPE html>
<html>
<head>
<link rel="stylesheet" href="/site.css">
<style>
  body { color: rgb(10, 20, 30); font-size: 16px; }
  .card { margin-top: 12.5px; background-image: url("bg.png"); }
  #main .card { padding: 4px; }
  .card::before { content: "» "; color: red; }
  p.note:after { content: "*" }
</style>
</head>
<body>
<div id="main" class="wrap  outer" data-user-id="42" data-role="admin">
  <div class="card" style="padding: 8px">Hello <b>world</b></div>
  <a href="/about" title="About">About</a>
  <img src="logo.png" alt="logo">
  <p class="note">Note</p>
</div>
</body>
</html>`

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodedSize(t *testing.T, b64 string) image.Point {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return image.Pt(cfg.Width, cfg.Height)
}

func assertFiltered(t *testing.T, n *domobject.Node) {
	t.Helper()

	for key := range n.Styles {
		if strings.Contains(key, "-") || key[0] < 'a' {
			t.Errorf("%s: unexpected style key %q", n.LayerName, key)
		}
	}
	for _, c := range n.Children {
		assertFiltered(t, c)
	}
}

func TestOpenAndWalk(t *testing.T) {
	defer gock.Off()

	gock.New("http://example.test").
		Get("/page").
		Reply(200).
		BodyString(page)

	gock.New("http://example.test").
		Get("/site.css").
		Reply(200).
		BodyString(`.note { font-weight: 700 }`)

	gock.New("http://example.test").
		Get("/bg.png").
		Reply(200).
		Body(bytes.NewReader(pngBytes(t, 4, 4)))

	gock.New("http://example.test").
		Get("/logo.png").
		Reply(200).
		Body(bytes.NewReader(pngBytes(t, 2, 3)))

	session, err := New().Open(context.Background(), "http://example.test/page")
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	result, err := domobject.Init(context.Background(), session)
	if err != nil {
		t.Fatal(err)
	}

	root := result.Elements
	test.Diff(t, "root", "html", root.LayerName)
	test.Diff(t, "root children", 2, len(root.Children))
	assertFiltered(t, root)

	body := root.Children[1]
	test.Diff(t, "body", "body", body.LayerName)

	main := body.Children[0]
	test.Diff(t, "main", "div#main.wrap.outer", main.LayerName)
	test.Diff(t, "main children", 4, len(main.Children))
	test.Diff(t, "dataset", map[string]typecast.Value{"userId": 42, "role": "admin"}, main.DataSet)

	card := main.Children[0]
	test.Diff(t, "card", "div.card", card.LayerName)
	test.Diff(t, "card text", "Hello world", card.Text)
	test.Diff(t, "inherited color", typecast.RGB{Red: 10, Green: 20, Blue: 30}, card.Styles["color"])
	test.Diff(t, "inherited font size", 16, card.Styles["fontSize"])
	test.Diff(t, "margin", 12.5, card.Styles["marginTop"])
	test.Diff(t, "inline padding", 8, card.Styles["padding"])
	test.Diff(t, "background image", `url("bg.png")`, card.Styles["backgroundImage"])

	bg, ok := card.Styles["backgroundImageBase64"].(string)
	if !ok {
		t.Fatalf("background image not inlined: %v", card.Styles["backgroundImageBase64"])
	}
	test.Diff(t, "background size", image.Pt(4, 4), decodedSize(t, bg))

	if card.PseudoElements.Before.Text == nil {
		t.Fatal("before content missing")
	}
	test.Diff(t, "before content", `"» "`, *card.PseudoElements.Before.Text)
	test.Diff(t, "before color", "red", card.PseudoElements.Before.Styles["color"])
	test.Diff(t, "after content", "none", *card.PseudoElements.After.Text)

	link := main.Children[1]
	test.Diff(t, "href", "http://example.test/about", link.Attributes["href"])
	test.Diff(t, "title", "About", link.Attributes["title"])

	img := main.Children[2]
	if img.Base64 == nil {
		t.Fatal("image not inlined")
	}
	test.Diff(t, "image size", image.Pt(2, 3), decodedSize(t, *img.Base64))
	test.Diff(t, "src", "http://example.test/logo.png", img.Attributes["src"])

	note := main.Children[3]
	test.Diff(t, "note", "p.note", note.LayerName)
	test.Diff(t, "linked stylesheet", 700, note.Styles["fontWeight"])
	test.Diff(t, "after pseudo", `"*"`, *note.PseudoElements.After.Text)

	test.Diff(t, "offset", map[string]typecast.Value{
		"x": 0, "y": 0, "width": 0, "height": 0, "top": 0, "right": 0, "bottom": 0, "left": 0,
	}, note.Offset)
}

func TestOpenNotFound(t *testing.T) {
	defer gock.Off()

	gock.New("http://example.test").
		Get("/missing").
		Reply(404)

	_, err := New().Open(context.Background(), "http://example.test/missing")
	if !errors.Is(err, browser.ErrHTTPNotOK) {
		t.Fatalf("expected http error, got %v", err)
	}
}

func TestOpenRemoteSkipsLocalFiles(t *testing.T) {
	defer gock.Off()

	dir := t.TempDir()
	sheet := filepath.Join(dir, "local.css")
	pixel := filepath.Join(dir, "pixel.png")

	if err := os.WriteFile(sheet, []byte(`p { font-weight: 700 }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pixel, pngBytes(t, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}

	gock.New("http://example.test").
		Get("/page").
		Reply(200).
		BodyString(`<html><head><link rel="stylesheet" href="file://` + filepath.ToSlash(sheet) + `"></head>` +
			`<body><p>text</p><img src="file://` + filepath.ToSlash(pixel) + `"></body></html>`)

	session, err := New().Open(context.Background(), "http://example.test/page")
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	w := session.(*Window)
	if _, err := w.fetch(context.Background(), &url.URL{Scheme: "file", Path: filepath.ToSlash(pixel)}); !errors.Is(err, browser.ErrSchemeNotAllowed) {
		t.Fatalf("expected ErrSchemeNotAllowed, got %v", err)
	}

	result, err := domobject.Init(context.Background(), session)
	if err != nil {
		t.Fatal(err)
	}

	body := result.Elements.Children[1]
	if weight := body.Children[0].Styles["fontWeight"]; weight == 700 {
		t.Errorf("local stylesheet applied to remote document")
	}
	test.Diff(t, "local image", blankDataURL, *body.Children[1].Base64)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	if err := os.WriteFile(filepath.Join(dir, "pixel.png"), pngBytes(t, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`<html><body><img src="pixel.png"><img src="gone.png"></body></html>`), 0o644); err != nil {
		t.Fatal(err)
	}

	session, err := New().Open(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	result, err := domobject.Init(context.Background(), session)
	if err != nil {
		t.Fatal(err)
	}

	body := result.Elements.Children[1]
	test.Diff(t, "loaded image", image.Pt(1, 1), decodedSize(t, *body.Children[0].Base64))
	test.Diff(t, "unloaded image", blankDataURL, *body.Children[1].Base64)
}

func TestComputedStyleDeclaration(t *testing.T) {
	w, err := Parse(strings.NewReader(`<html><body><div style="background-color: #fff; float: left; -webkit-line-clamp: 2"></div></body></html>`), "http://example.test/")
	if err != nil {
		t.Fatal(err)
	}

	div := w.element(w.body.FirstChild)

	decl, err := w.ComputedStyle(context.Background(), div, "")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"0", "backgroundColor", "background-color", "cssFloat", "WebkitLineClamp", "getPropertyValue", "length"} {
		if _, ok := decl.Get(name); !ok {
			t.Errorf("declaration should expose %q", name)
		}
	}

	e, _ := decl.Get("getPropertyValue")
	test.Diff(t, "method kind", dom.KindFunction, e.Kind)

	e, _ = decl.Get("backgroundColor")
	test.Diff(t, "value", "#fff", e.Value)
}

func TestCascadeOrder(t *testing.T) {
	doc := `<html><head><style>
		p { color: blue !important; margin: 1px }
		.x { margin: 2px }
		p { margin: 3px }
		.y { color: red }
	</style></head><body><p class="x y" style="margin: 5px; color: green">t</p><p class="x">u</p></body></html>`

	w, err := Parse(strings.NewReader(doc), "http://example.test/")
	if err != nil {
		t.Fatal(err)
	}

	var ps []dom.Element
	children, _ := w.element(w.body).Children(context.Background())
	ps = append(ps, children...)

	first := w.computedStyle(w.body.FirstChild)
	test.Diff(t, "important beats inline", "blue", first["color"])
	test.Diff(t, "inline beats rules", "5px", first["margin"])

	second, err := w.ComputedStyle(context.Background(), ps[1], "")
	if err != nil {
		t.Fatal(err)
	}
	margin, _ := second.Get("margin")
	test.Diff(t, "specificity beats order", "2px", margin.Value)
}

func TestDatasetKey(t *testing.T) {
	test.Diff(t, "simple", "role", datasetKey("data-role"))
	test.Diff(t, "camel", "userId", datasetKey("data-user-id"))
	test.Diff(t, "digit", "x-1", datasetKey("data-x-1"))
}

func TestDecodeDataURL(t *testing.T) {
	b, err := decodeDataURL("data:text/plain;base64,aGk=")
	if err != nil {
		t.Fatal(err)
	}
	test.Diff(t, "base64", "hi", string(b))

	b, err = decodeDataURL("data:,a%20b")
	if err != nil {
		t.Fatal(err)
	}
	test.Diff(t, "plain", "a b", string(b))

	if _, err := decodeDataURL("data:nocomma"); err == nil {
		t.Error("expected error")
	}
}

func TestHelperImageLifecycle(t *testing.T) {
	w, err := Parse(strings.NewReader(`<html><body><p></p></body></html>`), "http://example.test/")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	img, err := w.CreateImage(ctx, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes(t, 3, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.AttachImage(ctx, img); err != nil {
		t.Fatal(err)
	}

	children, _ := w.element(w.body).Children(ctx)
	test.Diff(t, "attached", 2, len(children))

	uri, err := w.Rasterize(ctx, img)
	if err != nil {
		t.Fatal(err)
	}
	test.Diff(t, "size", image.Pt(3, 2), decodedSize(t, strings.TrimPrefix(uri, "data:image/png;base64,")))

	if err := w.DetachImage(ctx, img); err != nil {
		t.Fatal(err)
	}
	children, _ = w.element(w.body).Children(ctx)
	test.Diff(t, "detached", 1, len(children))

	if err := w.DetachImage(ctx, img); !errors.Is(err, browser.ErrDetached) {
		t.Errorf("expected detached error, got %v", err)
	}

	p := children[0]
	if _, err := w.Rasterize(ctx, p); !errors.Is(err, browser.ErrNotAnImage) {
		t.Errorf("expected not an image, got %v", err)
	}
}
