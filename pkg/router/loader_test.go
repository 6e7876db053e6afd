package router

import (
	"testing"

	"github.com/strata-dev/strata/pkg/render"
	"github.com/strata-dev/strata/pkg/vdom"
)

func pageModule() *Module {
	return &Module{Default: func(c Ctx) *vdom.VNode { return vdom.Div() }}
}

func TestLoadBuildsTable(t *testing.T) {
	files := map[string]*Module{
		"index.go":          pageModule(),
		"about/[name].go":   pageModule(),
		"about/team.go":     pageModule(),
		"docs/[...rest].go": pageModule(),
	}

	table, _, err := Load(files)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Routes()) != 4 {
		t.Fatalf("len(Routes) = %d, want 4", len(table.Routes()))
	}
	for _, want := range []string{"/", "/about/[name]", "/about/team", "/docs/[...rest]"} {
		if table.Lookup(want) == nil {
			t.Errorf("route %s missing from table", want)
		}
	}
}

func TestLoadStaticBeforeDynamic(t *testing.T) {
	files := map[string]*Module{
		"about/[name].go":   pageModule(),
		"about/team.go":     pageModule(),
		"about/[...all].go": pageModule(),
	}

	table, _, err := Load(files)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	routes := table.Routes()
	order := make([]string, len(routes))
	for i, r := range routes {
		order[i] = r.Pattern.String()
	}
	want := []string{"/about/team", "/about/[name]", "/about/[...all]"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("registration order = %v, want %v", order, want)
		}
	}
}

func TestLoadSkipsEmptyModules(t *testing.T) {
	files := map[string]*Module{
		"about.go": {}, // exports nothing usable
		"index.go": pageModule(),
	}

	table, _, err := Load(files)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Routes()) != 1 {
		t.Errorf("empty module should contribute no routes, got %d", len(table.Routes()))
	}
	if table.Lookup("/about") != nil {
		t.Error("/about should not be registered")
	}
}

func TestLoadBindsReservedSlots(t *testing.T) {
	files := map[string]*Module{
		"_404.go":            {NotFound: func(c Ctx) *vdom.VNode { return vdom.H1(vdom.Text("404")) }},
		"_error.go":          {Error: func(c Ctx, err error) *vdom.VNode { return vdom.H1(vdom.Text("oops")) }},
		"_layout.go":         {Document: func(c Ctx, children *vdom.VNode) *render.Document { return &render.Document{Body: children} }},
		"admin/_layout.go":   {Layout: func(c Ctx, children *vdom.VNode) *vdom.VNode { return vdom.Div(children) }},
		"admin/dashboard.go": pageModule(),
	}

	table, registry, err := Load(files)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if registry.NotFoundFor("") == nil {
		t.Error("not-found slot unbound")
	}
	if registry.ErrorPageFor("") == nil {
		t.Error("error slot unbound")
	}
	if registry.Document() == nil {
		t.Error("document layout slot unbound")
	}
	if got := len(registry.LayoutsFor("admin")); got != 1 {
		t.Errorf("LayoutsFor(admin) = %d layouts, want 1", got)
	}

	// Reserved files must not appear as routes.
	if len(table.Routes()) != 1 {
		t.Errorf("len(Routes) = %d, want 1", len(table.Routes()))
	}
}

func TestLoadNestedLayoutComposition(t *testing.T) {
	noop := func(c Ctx, children *vdom.VNode) *vdom.VNode { return children }
	files := map[string]*Module{
		"a/_layout.go":     {Layout: noop},
		"a/b/_layout.go":   {Layout: noop},
		"a/b/c/_layout.go": {Layout: noop},
		"a/b/c/page.go":    pageModule(),
	}

	_, registry, err := Load(files)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(registry.LayoutsFor("a/b/c")); got != 3 {
		t.Errorf("LayoutsFor(a/b/c) = %d, want 3", got)
	}
	if got := len(registry.LayoutsFor("a/b")); got != 2 {
		t.Errorf("LayoutsFor(a/b) = %d, want 2", got)
	}
	if got := len(registry.LayoutsFor("")); got != 0 {
		t.Errorf("LayoutsFor(root) = %d, want 0", got)
	}
}

func TestLoadDuplicateSlotRejected(t *testing.T) {
	nf := func(c Ctx) *vdom.VNode { return vdom.Div() }
	files := map[string]*Module{
		"_404.go":  {NotFound: nf},
		"_404.tsx": {NotFound: nf},
	}

	if _, _, err := Load(files); err == nil {
		t.Error("duplicate not-found binding should fail")
	}
}

func TestLoadScopedReservedSlots(t *testing.T) {
	nf := func(c Ctx) *vdom.VNode { return vdom.Div() }
	files := map[string]*Module{
		"_404.go":       {NotFound: nf},
		"admin/_404.go": {NotFound: nf},
	}

	_, registry, err := Load(files)
	if err != nil {
		t.Fatalf("a scoped not-found beside the root one should load: %v", err)
	}
	if registry.NotFoundFor("admin") == nil {
		t.Error("admin scope unbound")
	}
	if registry.NotFoundFor("admin/users") == nil {
		t.Error("deeper paths should inherit the admin scope")
	}
	if registry.NotFoundFor("blog") == nil {
		t.Error("unrelated scopes should fall back to the root binding")
	}
}

func TestLoadDuplicatePatternRejected(t *testing.T) {
	files := map[string]*Module{
		"about.go":       pageModule(),
		"about/index.go": pageModule(),
	}

	if _, _, err := Load(files); err == nil {
		t.Error("conflicting patterns should fail")
	}
}

func TestLoadReservedFileMissingExport(t *testing.T) {
	files := map[string]*Module{
		"_404.go": {}, // reserved file without the matching export
	}

	if _, _, err := Load(files); err == nil {
		t.Error("reserved file without its export should fail")
	}
}
