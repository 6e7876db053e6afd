package router

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
)

// ScannedRoute describes a route file discovered on disk, without
// loading its package. Used by the CLI to print the route table and
// verify naming conventions ahead of a build.
type ScannedRoute struct {
	// Pattern is the URL pattern in bracket notation.
	Pattern string

	// FilePath is the source file path relative to the routes root.
	FilePath string

	// Package is the Go package name.
	Package string

	// Params are the parameter names in segment order.
	Params []string

	// HasDefault indicates the file exports a default page component.
	HasDefault bool

	// Methods lists the exported HTTP method handlers.
	Methods []string

	// Reserved is the bound slot for underscore files, or nil.
	Reserved *Slot
}

// exported symbol names the scanner recognizes on route files.
var (
	defaultExport = "Page"
	methodExports = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	reservedSlots = map[string]Slot{
		"_404":    SlotNotFound,
		"_error":  SlotError,
		"_layout": SlotLayout,
	}
)

// Scanner discovers route files under a directory.
type Scanner struct {
	rootDir string
}

// NewScanner creates a scanner rooted at rootDir.
func NewScanner(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Scan walks the routes directory and returns the discovered routes in
// walk order.
func (s *Scanner) Scan() ([]ScannedRoute, error) {
	var routes []ScannedRoute

	err := filepath.WalkDir(s.rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}

		route, err := s.scanFile(p)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if route != nil {
			routes = append(routes, *route)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return routes, nil
}

// scanFile parses one Go file and extracts its route shape.
func (s *Scanner) scanFile(p string) (*ScannedRoute, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, p, nil, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return nil, err
	}

	relPath, err := filepath.Rel(s.rootDir, p)
	if err != nil {
		return nil, err
	}
	relPath = filepath.ToSlash(relPath)

	route := &ScannedRoute{
		FilePath: relPath,
		Package:  f.Name.Name,
	}

	if name, ok := reservedName(relPath); ok {
		if slot, known := reservedSlots[name]; known {
			bound := slot
			if bound == SlotLayout && strings.Contains(relPath, "/") {
				bound = SlotNestedLayout
			}
			route.Reserved = &bound
		}
		return route, nil
	}

	pattern, err := ParsePattern(relPath)
	if err != nil {
		return nil, err
	}
	route.Pattern = pattern.String()
	route.Params = pattern.ParamNames()

	// Re-parse with declarations to inspect exports.
	f, err = parser.ParseFile(fset, p, nil, 0)
	if err != nil {
		return nil, err
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name == nil || !fn.Name.IsExported() || fn.Recv != nil {
			continue
		}
		name := fn.Name.Name
		if name == defaultExport {
			route.HasDefault = true
			continue
		}
		for _, method := range methodExports {
			if name == method {
				route.Methods = append(route.Methods, method)
				break
			}
		}
	}

	return route, nil
}
