package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/strata-dev/strata/pkg/vdom"
)

func renderDoc(t *testing.T, doc Document) string {
	t.Helper()
	var buf bytes.Buffer
	if err := New(Config{}).RenderDocument(context.Background(), &buf, doc); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	return buf.String()
}

func TestDocumentWithoutHeadMetadata(t *testing.T) {
	html := renderDoc(t, Document{
		Body: vdom.H1(vdom.Text("Hello")),
	})

	if !strings.Contains(html, "<h1>Hello</h1>") {
		t.Errorf("body markup missing: %q", html)
	}
	if strings.Contains(html, "<title>") {
		t.Errorf("no title should be emitted without metadata: %q", html)
	}
	if !strings.HasPrefix(html, "<!DOCTYPE html>\n") {
		t.Errorf("missing doctype: %q", html)
	}
}

func TestDocumentTitleEmittedOnce(t *testing.T) {
	html := renderDoc(t, Document{
		Head: Head{Title: "T"},
		Body: vdom.Div(),
	})

	if got := strings.Count(html, "<title>"); got != 1 {
		t.Fatalf("title count = %d, want 1", got)
	}
	if !strings.Contains(html, "<title>T</title>") {
		t.Errorf("title text missing: %q", html)
	}
}

func TestDocumentHeadOrdering(t *testing.T) {
	html := renderDoc(t, Document{
		Head: Head{
			Title: "T",
			Meta: []MetaTag{
				{Name: "description", Content: "first"},
				{Property: "og:title", Content: "second"},
			},
			Links: []LinkTag{
				{Rel: "stylesheet", Href: "/a.css"},
				{Rel: "icon", Href: "/favicon.ico"},
			},
		},
		Body: vdom.Div(),
	})

	title := strings.Index(html, "<title>")
	metaFirst := strings.Index(html, `name="description"`)
	metaSecond := strings.Index(html, `property="og:title"`)
	linkFirst := strings.Index(html, `href="/a.css"`)
	linkSecond := strings.Index(html, `href="/favicon.ico"`)

	for name, idx := range map[string]int{
		"title": title, "meta1": metaFirst, "meta2": metaSecond,
		"link1": linkFirst, "link2": linkSecond,
	} {
		if idx < 0 {
			t.Fatalf("%s not found in %q", name, html)
		}
	}
	if !(title < metaFirst && metaFirst < metaSecond && metaSecond < linkFirst && linkFirst < linkSecond) {
		t.Errorf("head tags out of order: title=%d meta=%d,%d link=%d,%d",
			title, metaFirst, metaSecond, linkFirst, linkSecond)
	}
}

func TestDocumentTitleEscaped(t *testing.T) {
	html := renderDoc(t, Document{
		Head: Head{Title: "<evil>"},
		Body: vdom.Div(),
	})

	if strings.Contains(html, "<title><evil>") {
		t.Errorf("title not escaped: %q", html)
	}
	if !strings.Contains(html, "&lt;evil&gt;") {
		t.Errorf("escaped title missing: %q", html)
	}
}

// staticManifest is a fixed ManifestSource for frame tests.
type staticManifest string

func (m staticManifest) Manifest() (string, error) { return string(m), nil }

type failingManifest struct{}

func (failingManifest) Manifest() (string, error) {
	return "", errors.New("unserializable prop")
}

func TestDocumentManifestAndClientScript(t *testing.T) {
	html := renderDoc(t, Document{
		Body:         vdom.Div(),
		Islands:      staticManifest(`[{"id":"s1"}]`),
		ClientScript: "/_strata/client.js",
	})

	if !strings.Contains(html, `<script type="application/json" id="`+IslandManifestID+`">[{"id":"s1"}]</script>`) {
		t.Errorf("manifest script missing: %q", html)
	}
	if !strings.Contains(html, `<script src="/_strata/client.js" defer></script>`) {
		t.Errorf("client script missing: %q", html)
	}
}

func TestDocumentNoManifestWhenEmpty(t *testing.T) {
	html := renderDoc(t, Document{
		Body:         vdom.Div(),
		Islands:      staticManifest(""),
		ClientScript: "/_strata/client.js",
	})

	if strings.Contains(html, IslandManifestID) {
		t.Errorf("manifest should not be embedded for island-free pages: %q", html)
	}
	if strings.Contains(html, "client.js") {
		t.Errorf("client script should not be injected for island-free pages: %q", html)
	}
}

// growingManifest accumulates entries as the body renders, the way the
// island collector does.
type growingManifest struct {
	mu  sync.Mutex
	ids []string
}

func (g *growingManifest) add(id string) {
	g.mu.Lock()
	g.ids = append(g.ids, id)
	g.mu.Unlock()
}

func (g *growingManifest) Manifest() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.ids) == 0 {
		return "", nil
	}
	return `["` + strings.Join(g.ids, `","`) + `"]`, nil
}

func TestDocumentManifestReadAfterBodyRenders(t *testing.T) {
	manifest := &growingManifest{}
	body := vdom.Div(
		vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
			manifest.add("s1")
			return vdom.Span(vdom.Text("widget")), nil
		}),
	)

	html := renderDoc(t, Document{Body: body, Islands: manifest})

	if !strings.Contains(html, "widget") {
		t.Fatalf("async content missing: %q", html)
	}
	if !strings.Contains(html, `["s1"]`) {
		t.Errorf("manifest entry created during render missing: %q", html)
	}
	suffix := strings.Index(html, `["s1"]`)
	widget := strings.Index(html, "widget")
	if suffix < widget {
		t.Errorf("manifest should follow the body: manifest=%d body=%d", suffix, widget)
	}
}

func TestDocumentManifestErrorSurfaces(t *testing.T) {
	var buf bytes.Buffer
	err := New(Config{}).RenderDocument(context.Background(), &buf, Document{
		Body:    vdom.Div(),
		Islands: failingManifest{},
	})
	if err == nil {
		t.Fatal("expected an error from a failing manifest source")
	}
	if !strings.Contains(err.Error(), "island manifest") {
		t.Errorf("error should identify the manifest: %v", err)
	}
}

func TestHeadMerge(t *testing.T) {
	layout := Head{
		Title: "Default",
		Meta:  []MetaTag{{Name: "generator", Content: "strata"}},
	}
	page := Head{
		Title: "Page",
		Meta:  []MetaTag{{Name: "description", Content: "about"}},
	}

	merged := page.Merge(layout)
	if merged.Title != "Page" {
		t.Errorf("page title should win, got %q", merged.Title)
	}
	if len(merged.Meta) != 2 {
		t.Fatalf("len(Meta) = %d, want 2", len(merged.Meta))
	}
	if merged.Meta[0].Name != "generator" || merged.Meta[1].Name != "description" {
		t.Errorf("layout meta should precede page meta: %+v", merged.Meta)
	}

	empty := Head{}
	merged = empty.Merge(layout)
	if merged.Title != "Default" {
		t.Errorf("layout title should fill empty page title, got %q", merged.Title)
	}
}
