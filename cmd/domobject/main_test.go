package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/zdunecki/domobject/test"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "domobject.yaml")
	if err := os.WriteFile(cfgFile, []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")
	page := `<html><body><a href="/next" class="nav">next</a></body></html>`
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSnapshotStdout(t *testing.T) {
	out, err := run(t, "snapshot", writePage(t))
	if err != nil {
		t.Fatal(err)
	}

	a := jsoniter.Get([]byte(out), "elements", "children", 1, "children", 0)
	test.Diff(t, "layer name", "a.nav", a.Get("layerName").ToString())
	test.Diff(t, "href", "file:///next", a.Get("attributes", "href").ToString())
}

func TestSnapshotOutFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")

	if _, err := run(t, "snapshot", "--indent", "--out", target, writePage(t)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"document\"") {
		t.Errorf("expected indented json, got %.40s", data)
	}
}

func TestSnapshotUnknownBackend(t *testing.T) {
	if _, err := run(t, "--backend", "netscape", "snapshot", writePage(t)); err == nil {
		t.Error("expected unknown backend error")
	}
}

func TestWorkerWithoutPubSub(t *testing.T) {
	if _, err := run(t, "worker"); !errors.Is(err, errNoPubSub) {
		t.Errorf("expected errNoPubSub, got %v", err)
	}
}
