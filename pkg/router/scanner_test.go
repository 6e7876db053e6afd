package router

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRouteFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScannerDiscoversRoutes(t *testing.T) {
	dir := t.TempDir()

	writeRouteFile(t, dir, "index.go", `package routes

import "github.com/strata-dev/strata/pkg/vdom"

func Page() *vdom.VNode { return nil }
`)
	writeRouteFile(t, dir, "api/health.go", `package api

func GET()  {}
func POST() {}
`)
	writeRouteFile(t, dir, "about/[name].go", `package about

func Page() {}
`)

	routes, err := NewScanner(dir).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("len(routes) = %d, want 3", len(routes))
	}

	byPattern := make(map[string]ScannedRoute)
	for _, r := range routes {
		byPattern[r.Pattern] = r
	}

	index, ok := byPattern["/"]
	if !ok || !index.HasDefault {
		t.Errorf("index route missing or lacks default: %+v", index)
	}

	health, ok := byPattern["/api/health"]
	if !ok || len(health.Methods) != 2 {
		t.Errorf("api route methods = %v, want GET and POST", health.Methods)
	}

	about, ok := byPattern["/about/[name]"]
	if !ok || len(about.Params) != 1 || about.Params[0] != "name" {
		t.Errorf("about route params = %v, want [name]", about.Params)
	}
}

func TestScannerRecognizesReservedFiles(t *testing.T) {
	dir := t.TempDir()

	writeRouteFile(t, dir, "_layout.go", "package routes\n")
	writeRouteFile(t, dir, "admin/_layout.go", "package admin\n")
	writeRouteFile(t, dir, "_404.go", "package routes\n")

	routes, err := NewScanner(dir).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	slots := make(map[string]Slot)
	for _, r := range routes {
		if r.Reserved != nil {
			slots[r.FilePath] = *r.Reserved
		}
	}

	if slots["_layout.go"] != SlotLayout {
		t.Errorf("root _layout slot = %v, want layout", slots["_layout.go"])
	}
	if slots["admin/_layout.go"] != SlotNestedLayout {
		t.Errorf("nested _layout slot = %v, want nested-layout", slots["admin/_layout.go"])
	}
	if slots["_404.go"] != SlotNotFound {
		t.Errorf("_404 slot = %v, want not-found", slots["_404.go"])
	}
}

func TestScannerSkipsTestFiles(t *testing.T) {
	dir := t.TempDir()

	writeRouteFile(t, dir, "index.go", "package routes\n\nfunc Page() {}\n")
	writeRouteFile(t, dir, "index_test.go", "package routes\n")

	routes, err := NewScanner(dir).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(routes) != 1 {
		t.Errorf("len(routes) = %d, want 1", len(routes))
	}
}
