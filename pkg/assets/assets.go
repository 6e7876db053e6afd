// Package assets resolves fingerprinted asset paths at runtime.
//
// A build step writes manifest.json mapping source asset names to their
// hashed versions:
//
//	{
//	  "app.css": "app.a1b2c3d4.css",
//	  "app.js": "app.e5f6a7b8.js"
//	}
//
// Components resolve assets through the request context:
//
//	vdom.Link(vdom.Rel("stylesheet"), vdom.Href(c.Asset("app.css")))
//	// <link rel="stylesheet" href="/static/app.a1b2c3d4.css">
package assets

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// Resolver maps a source asset name to the URL path to serve it from.
type Resolver interface {
	Asset(source string) string
}

// Manifest holds the mapping from source asset names to fingerprinted
// file names. Safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]string)}
}

// Load reads a manifest.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Manifest{entries: entries}, nil
}

// Set adds or replaces one mapping.
func (m *Manifest) Set(source, fingerprinted string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[source] = fingerprinted
}

// Resolve returns the fingerprinted name for source, or source itself
// when unmapped.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has reports whether source is mapped.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[source]
	return ok
}

// Len returns the number of mappings.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver that prepends prefix to each resolved
// path.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{manifest: m, prefix: normalizePrefix(prefix)}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a Resolver that applies only the
// prefix. Used in development where fingerprinting is off, so dev and
// production URLs keep the same shape.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: normalizePrefix(prefix)}
}

func (r *passthrough) Asset(source string) string {
	return r.prefix + source
}

func normalizePrefix(prefix string) string {
	if prefix == "" {
		return "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
