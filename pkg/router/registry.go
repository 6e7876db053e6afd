package router

import (
	"fmt"
	"path"
	"strings"
)

// boundHandler carries the handler for one slot binding. Exactly one
// field is set, matching the slot kind.
type boundHandler struct {
	notFound  ComponentFunc
	errorPage ErrorHandler
	layout    LayoutHandler
	document  DocumentHandler
}

// Registry holds the reserved lifecycle handlers discovered by the
// loader: per-directory not-found and error pages, the root document
// layout, and per-directory nested layouts.
type Registry struct {
	document DocumentHandler

	// Each map is keyed by directory scope (bracket notation, no
	// leading slash; "" is the routes root).
	notFound  map[string]ComponentFunc
	errorPage map[string]ErrorHandler
	nested    map[string]LayoutHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		notFound:  make(map[string]ComponentFunc),
		errorPage: make(map[string]ErrorHandler),
		nested:    make(map[string]LayoutHandler),
	}
}

// Bind binds a handler to a slot within a directory scope. Each slot
// admits at most one handler per scope.
func (r *Registry) Bind(slot Slot, dir string, h boundHandler) error {
	switch slot {
	case SlotNotFound:
		if _, ok := r.notFound[dir]; ok {
			return fmt.Errorf("router: duplicate %s handler for %q", slot, dir)
		}
		r.notFound[dir] = h.notFound
	case SlotError:
		if _, ok := r.errorPage[dir]; ok {
			return fmt.Errorf("router: duplicate %s handler for %q", slot, dir)
		}
		r.errorPage[dir] = h.errorPage
	case SlotLayout:
		if r.document != nil {
			return fmt.Errorf("router: duplicate %s handler", slot)
		}
		r.document = h.document
	case SlotNestedLayout:
		if _, ok := r.nested[dir]; ok {
			return fmt.Errorf("router: duplicate %s handler for %q", slot, dir)
		}
		r.nested[dir] = h.layout
	default:
		return fmt.Errorf("router: unknown slot %d", slot)
	}
	return nil
}

// NotFoundFor returns the not-found component nearest to dir, walking
// from dir up to the routes root. Nil when none is bound.
func (r *Registry) NotFoundFor(dir string) ComponentFunc {
	for _, scope := range scopeChain(dir) {
		if h, ok := r.notFound[scope]; ok {
			return h
		}
	}
	return nil
}

// ErrorPageFor returns the error handler nearest to dir, walking from
// dir up to the routes root. Nil when none is bound.
func (r *Registry) ErrorPageFor(dir string) ErrorHandler {
	for _, scope := range scopeChain(dir) {
		if h, ok := r.errorPage[scope]; ok {
			return h
		}
	}
	return nil
}

// scopeChain lists the directory scopes from dir up to the root,
// deepest first, ending with "" (the root scope).
func scopeChain(dir string) []string {
	var chain []string
	for dir != "" && dir != "." {
		chain = append(chain, dir)
		dir = path.Dir(dir)
		if dir == "." {
			dir = ""
		}
	}
	return append(chain, "")
}

// Document returns the root document layout, or nil.
func (r *Registry) Document() DocumentHandler {
	return r.document
}

// LayoutsFor collects the nested layouts along the directory path from
// root to dir, outermost (shallowest) first.
func (r *Registry) LayoutsFor(dir string) []LayoutHandler {
	if len(r.nested) == 0 {
		return nil
	}

	var layouts []LayoutHandler
	scope := ""
	parts := strings.Split(dir, "/")
	if dir == "" {
		parts = nil
	}
	for _, part := range parts {
		if scope == "" {
			scope = part
		} else {
			scope = scope + "/" + part
		}
		if layout, ok := r.nested[scope]; ok {
			layouts = append(layouts, layout)
		}
	}
	return layouts
}
