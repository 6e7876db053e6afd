package router

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Table is the route table. It is built once at startup and read-only
// during request handling.
type Table struct {
	routes []*Route
}

// Routes returns the table entries in registration order: most specific
// (static) patterns first.
func (t *Table) Routes() []*Route {
	return t.routes
}

// Lookup returns the route whose pattern string equals s, for tests and
// tooling.
func (t *Table) Lookup(s string) *Route {
	for _, route := range t.routes {
		if route.Pattern.String() == s {
			return route
		}
	}
	return nil
}

// Load produces the route table and the reserved handler registry from a
// mapping of discovered file paths to their loaded module exports.
//
// Files whose base name starts with an underscore bind reserved slots
// instead of routes. A module exporting neither a default component nor
// any method handler contributes no routes.
func Load(files map[string]*Module) (*Table, *Registry, error) {
	table := &Table{}
	registry := NewRegistry()

	// Deterministic iteration keeps error messages and registration
	// order stable.
	paths := make([]string, 0, len(files))
	for filePath := range files {
		paths = append(paths, filePath)
	}
	sort.Strings(paths)

	for _, filePath := range paths {
		module := files[filePath]
		if module == nil {
			continue
		}

		if name, ok := reservedName(filePath); ok {
			if err := bindReserved(registry, filePath, name, module); err != nil {
				return nil, nil, err
			}
			continue
		}

		// A module exporting neither a default component nor a handler
		// is not registered as a page handler.
		if module.Default == nil && len(module.Handlers) == 0 {
			continue
		}

		pattern, err := ParsePattern(filePath)
		if err != nil {
			return nil, nil, err
		}
		if existing := table.Lookup(pattern.String()); existing != nil {
			return nil, nil, fmt.Errorf("router: pattern %s defined by both %s and %s",
				pattern, existing.FilePath, filePath)
		}

		table.routes = append(table.routes, &Route{
			Pattern:  pattern,
			FilePath: filePath,
			Handlers: module.Handlers,
			Default:  module.Default,
		})
	}

	// Static-over-dynamic precedence: sort most specific first so the
	// composer registers in that order.
	sort.SliceStable(table.routes, func(i, j int) bool {
		a, b := table.routes[i], table.routes[j]
		if sa, sb := a.Pattern.specificity(), b.Pattern.specificity(); sa != sb {
			return sa < sb
		}
		return a.Pattern.String() < b.Pattern.String()
	})

	return table, registry, nil
}

// reservedName returns the reserved base name ("_404", "_error",
// "_layout") of an underscore-prefixed file, if it is one.
func reservedName(filePath string) (string, bool) {
	base := trimExtension(path.Base(strings.ReplaceAll(filePath, "\\", "/")))
	if !strings.HasPrefix(base, "_") {
		return "", false
	}
	return base, true
}

// bindReserved binds one reserved file into its slot.
func bindReserved(registry *Registry, filePath, name string, module *Module) error {
	dir := path.Dir(strings.ReplaceAll(filePath, "\\", "/"))
	if dir == "." {
		dir = ""
	}

	switch name {
	case "_404":
		if module.NotFound == nil {
			return fmt.Errorf("router: %s does not export a not-found component", filePath)
		}
		return registry.Bind(SlotNotFound, dir, boundHandler{notFound: module.NotFound})

	case "_error":
		if module.Error == nil {
			return fmt.Errorf("router: %s does not export an error handler", filePath)
		}
		return registry.Bind(SlotError, dir, boundHandler{errorPage: module.Error})

	case "_layout":
		if dir == "" {
			if module.Document == nil {
				return fmt.Errorf("router: root %s does not export a document layout", filePath)
			}
			return registry.Bind(SlotLayout, dir, boundHandler{document: module.Document})
		}
		if module.Layout == nil {
			return fmt.Errorf("router: %s does not export a nested layout", filePath)
		}
		return registry.Bind(SlotNestedLayout, dir, boundHandler{layout: module.Layout})

	default:
		// Unknown underscore files are not routes and bind nothing.
		return nil
	}
}
