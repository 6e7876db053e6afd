package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/strata-dev/strata/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables newlines between top-level document sections.
	// Element output itself is always compact.
	Pretty bool

	// Streaming selects the streaming render path for documents when the
	// response writer supports flushing.
	Streaming bool
}

// Renderer serializes VNode trees to HTML.
type Renderer struct {
	config Config
}

// New creates a Renderer with the given configuration.
func New(config Config) *Renderer {
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string. Asynchronous
// subtrees are resolved inline.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes a VNode tree to w. A panic inside a component surfaces as
// an error rather than tearing down the request goroutine.
func (r *Renderer) Render(ctx context.Context, w io.Writer, node *vdom.VNode) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render: component panicked: %v", rec)
		}
	}()
	return r.renderNode(ctx, w, node)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(ctx, w, node)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(ctx, w, node.Comp.Render())
	case vdom.KindAsync:
		return r.renderAsync(ctx, w, node)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderAsync resolves an async subtree inline. The streaming renderer
// overrides this path; buffered rendering simply blocks on resolution.
func (r *Renderer) renderAsync(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	if node.Resolve == nil {
		return nil
	}
	resolved, err := node.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("render: async subtree: %w", err)
	}
	return r.renderNode(ctx, w, resolved)
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(ctx context.Context, w io.Writer, node *vdom.VNode) error {
	tag := node.Tag

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := renderAttributes(w, node.Props); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		_, err := w.Write([]byte{'>'})
		return err
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := r.renderNode(ctx, w, child); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// booleanAttrs are attributes rendered by presence only.
var booleanAttrs = map[string]bool{
	"async":     true,
	"autofocus": true,
	"checked":   true,
	"defer":     true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

// renderAttributes renders props as attributes in sorted key order for
// deterministic output.
func renderAttributes(w io.Writer, props vdom.Props) error {
	if len(props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		// Internal props never reach the wire.
		if strings.HasPrefix(key, "_") {
			continue
		}

		if booleanAttrs[key] {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		strValue := attrToString(value)
		if strValue == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(strValue)); err != nil {
			return err
		}
	}

	return nil
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
