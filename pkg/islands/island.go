package islands

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/strata-dev/strata/pkg/vdom"
)

// Descriptor identifies one island on a rendered page. It is embedded in
// the HTML output and consumed by the client bootstrapper to locate and
// hydrate the matching DOM node.
type Descriptor struct {
	// ID is unique within the page (e.g. "s1").
	ID string `json:"id"`

	// Component is the client-side component name to invoke.
	Component string `json:"component"`

	// Props is the JSON-serializable payload passed to the component.
	Props map[string]any `json:"props,omitempty"`
}

// Collector assigns island ids and accumulates descriptors during one
// page render. A fresh collector is created per request; ids restart at
// s1 on every page. Safe for concurrent use: streaming renders resolve
// async subtrees in separate goroutines, and any of them may create
// islands.
type Collector struct {
	mu          sync.Mutex
	counter     int
	descriptors []Descriptor
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// New marks a component region as an island and returns its placeholder
// element. The children are the server-rendered markup the client will
// hydrate in place.
func (c *Collector) New(component string, props map[string]any, children ...*vdom.VNode) *vdom.VNode {
	c.mu.Lock()
	c.counter++
	id := fmt.Sprintf("s%d", c.counter)
	c.descriptors = append(c.descriptors, Descriptor{
		ID:        id,
		Component: component,
		Props:     props,
	})
	c.mu.Unlock()

	args := make([]any, 0, len(children)+2)
	args = append(args,
		vdom.Data("island", id),
		vdom.Data("component", component),
	)
	for _, child := range children {
		args = append(args, child)
	}
	return vdom.Div(args...)
}

// Count returns the number of islands collected so far.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.descriptors)
}

// Manifest serializes the collected descriptors to JSON for embedding in
// the page. It returns "" when the page has no islands. Props must
// round-trip through JSON; a non-serializable prop is an error.
func (c *Collector) Manifest() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.descriptors) == 0 {
		return "", nil
	}
	// encoding/json escapes <, > and & by default, which keeps the
	// payload safe inside a script element.
	data, err := json.Marshal(c.descriptors)
	if err != nil {
		return "", fmt.Errorf("islands: marshal manifest: %w", err)
	}
	return string(data), nil
}

// ParseManifest decodes a manifest produced by Manifest. The client
// bootstrapper does the same on the browser side; this Go form backs
// tests and tooling.
func ParseManifest(data string) ([]Descriptor, error) {
	var descriptors []Descriptor
	if err := json.Unmarshal([]byte(data), &descriptors); err != nil {
		return nil, fmt.Errorf("islands: parse manifest: %w", err)
	}
	return descriptors, nil
}
