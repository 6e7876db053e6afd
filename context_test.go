package strata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/strata-dev/strata/pkg/render"
)

func newCtx(method, target string, params map[string]string) *requestContext {
	return newRequestContext(httptest.NewRequest(method, target, nil), params, nil)
}

func TestContextRequestInfo(t *testing.T) {
	c := newCtx(http.MethodGet, "/about/yusuke?tab=posts", map[string]string{"name": "yusuke"})

	if got := c.Path(); got != "/about/yusuke" {
		t.Errorf("Path = %q", got)
	}
	if got := c.Method(); got != http.MethodGet {
		t.Errorf("Method = %q", got)
	}
	if got := c.Param("name"); got != "yusuke" {
		t.Errorf("Param = %q", got)
	}
	if got := c.Param("missing"); got != "" {
		t.Errorf("missing Param = %q, want empty", got)
	}
	if got := c.QueryParam("tab"); got != "posts" {
		t.Errorf("QueryParam = %q", got)
	}
}

func TestContextBuffersResponseState(t *testing.T) {
	c := newCtx(http.MethodGet, "/", nil)

	if c.status != http.StatusOK {
		t.Fatalf("default status = %d", c.status)
	}
	c.Status(http.StatusAccepted)
	c.SetHeader("X-Custom", "yes")
	c.SetCookie(&http.Cookie{Name: "session", Value: "abc"})

	rec := httptest.NewRecorder()
	c.applyTo(rec)
	if got := rec.Header().Get("X-Custom"); got != "yes" {
		t.Errorf("header = %q", got)
	}
	if got := rec.Header().Get("Set-Cookie"); !strings.Contains(got, "session=abc") {
		t.Errorf("cookie = %q", got)
	}
	if c.status != http.StatusAccepted {
		t.Errorf("status = %d", c.status)
	}
}

func TestContextJSONBuffersBody(t *testing.T) {
	c := newCtx(http.MethodPost, "/api", nil)

	if err := c.JSON(http.StatusCreated, map[string]int{"n": 1}); err != nil {
		t.Fatal(err)
	}
	if !c.hasBody() {
		t.Fatal("body not buffered")
	}
	if got := c.header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := c.body.String(); !strings.Contains(got, `"n":1`) {
		t.Errorf("body = %q", got)
	}
}

func TestContextRedirectDefaultsToSeeOther(t *testing.T) {
	c := newCtx(http.MethodPost, "/form", nil)

	if _, _, ok := c.redirectInfo(); ok {
		t.Fatal("redirect set before Redirect call")
	}
	c.Redirect("/done", 0)
	url, code, ok := c.redirectInfo()
	if !ok || url != "/done" || code != http.StatusSeeOther {
		t.Errorf("redirectInfo = (%q, %d, %v)", url, code, ok)
	}
}

func TestContextHeadAccumulates(t *testing.T) {
	c := newCtx(http.MethodGet, "/", nil)

	c.SetTitle("Home")
	c.AddMeta(render.MetaTag{Name: "description", Content: "home"})
	c.AddLink(render.LinkTag{Rel: "stylesheet", Href: "/app.css"})

	if c.head.Title != "Home" {
		t.Errorf("title = %q", c.head.Title)
	}
	if len(c.head.Meta) != 1 || len(c.head.Links) != 1 {
		t.Errorf("meta/links = %d/%d", len(c.head.Meta), len(c.head.Links))
	}
}

func TestContextIslandIDsAreSequential(t *testing.T) {
	c := newCtx(http.MethodGet, "/", nil)

	first := c.Island("Counter", nil)
	second := c.Island("Chart", map[string]any{"points": 3})

	if got := first.Props["data-island"]; got != "s1" {
		t.Errorf("first island id = %v", got)
	}
	if got := second.Props["data-island"]; got != "s2" {
		t.Errorf("second island id = %v", got)
	}
}

func TestContextAssetWithoutResolver(t *testing.T) {
	c := newCtx(http.MethodGet, "/", nil)
	if got := c.Asset("app.css"); got != "/app.css" {
		t.Errorf("Asset = %q", got)
	}
}

func TestContextValues(t *testing.T) {
	c := newCtx(http.MethodGet, "/", nil)

	type key struct{}
	c.SetValue(key{}, "stored")
	if got := c.Value(key{}); got != "stored" {
		t.Errorf("Value = %v", got)
	}
	if got := c.Value("absent"); got != nil {
		t.Errorf("absent Value = %v", got)
	}
}

func TestContextLoggerFallsBackToDefault(t *testing.T) {
	c := newCtx(http.MethodGet, "/", nil)
	if c.Logger() == nil {
		t.Fatal("Logger returned nil")
	}
}
