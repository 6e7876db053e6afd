package vdom

import "context"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <section>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindComponent             // Nested component
	KindRaw                   // Raw HTML (dangerous)
	KindAsync                 // Subtree resolved asynchronously during streaming
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	case KindAsync:
		return "Async"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node produced by page components and layouts.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Stable identity within a list
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent

	// Resolve produces the subtree for KindAsync nodes. It is invoked by
	// the streaming renderer; the buffered renderer resolves it inline.
	Resolve ResolveFunc
}

// ResolveFunc resolves an asynchronous subtree. The context is cancelled
// when the client disconnects; implementations should return promptly.
type ResolveFunc func(ctx context.Context) (*VNode, error)

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
