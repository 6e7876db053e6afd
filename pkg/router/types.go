package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/strata-dev/strata/pkg/render"
	"github.com/strata-dev/strata/pkg/vdom"
)

// Ctx is the per-request context passed to handlers, components, and
// layouts. The concrete implementation lives in the root strata package;
// the interface is defined here so handler types do not create an import
// cycle.
type Ctx interface {
	// Request info
	Request() *http.Request
	Path() string
	Method() string
	Param(name string) string
	Params() map[string]string
	Query() url.Values
	QueryParam(name string) string
	Header(key string) string

	// Response control. Status and headers are buffered until the
	// response is emitted.
	Status(code int)
	SetHeader(key, value string)
	SetCookie(cookie *http.Cookie)
	Redirect(url string, code int)

	// Head metadata, merged with ancestor layout defaults and consumed
	// once when the document frame is emitted.
	SetTitle(title string)
	AddMeta(meta render.MetaTag)
	AddLink(link render.LinkTag)

	// Direct responses for API handlers.
	JSON(code int, v any) error
	Text(code int, body string) error

	// Asset resolves a source asset name to its URL path, applying the
	// static prefix and any fingerprint manifest.
	Asset(source string) string

	// Island marks a component region for client-side hydration and
	// returns its placeholder node. Islands receive ids unique within
	// the page.
	Island(component string, props map[string]any, children ...*vdom.VNode) *vdom.VNode

	// Ambient
	Logger() *slog.Logger
	StdContext() context.Context
	SetValue(key, value any)
	Value(key any) any
}

// Handler handles an HTTP method on a route and writes its own response
// through the context (typically JSON or a redirect).
type Handler func(c Ctx) error

// ComponentFunc produces the page content for a route. Head metadata is
// set through the context.
type ComponentFunc func(c Ctx) *vdom.VNode

// LayoutHandler wraps child content in a nested layout. Handlers at
// deeper directories are invoked inside handlers at shallower ones.
type LayoutHandler func(c Ctx, children *vdom.VNode) *vdom.VNode

// DocumentHandler produces the outermost document frame from the fully
// wrapped page content. Bound by the root layout file.
type DocumentHandler func(c Ctx, children *vdom.VNode) *render.Document

// ErrorHandler renders the error page. It receives the triggering error
// and must return a renderable tree; nil falls back to a generic
// response.
type ErrorHandler func(c Ctx, err error) *vdom.VNode

// Slot identifies a reserved lifecycle role bound by file naming
// convention.
type Slot uint8

const (
	SlotNotFound Slot = iota
	SlotError
	SlotLayout
	SlotNestedLayout
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotNotFound:
		return "not-found"
	case SlotError:
		return "error"
	case SlotLayout:
		return "layout"
	case SlotNestedLayout:
		return "nested-layout"
	default:
		return "unknown"
	}
}

// Module is the loaded export surface of one route file. Page files set
// Default and/or Handlers; reserved files set exactly one of the
// lifecycle fields.
type Module struct {
	// Default is the default exported component. A GET request with no
	// explicit GET handler renders it.
	Default ComponentFunc

	// Handlers maps HTTP methods ("GET", "POST", ...) to explicit
	// handlers.
	Handlers map[string]Handler

	// Layout is set by "_layout" files in nested directories.
	Layout LayoutHandler

	// Document is set by the "_layout" file at the routes root.
	Document DocumentHandler

	// NotFound is set by "_404" files.
	NotFound ComponentFunc

	// Error is set by "_error" files.
	Error ErrorHandler
}

// Route is one entry of the route table.
type Route struct {
	// Pattern is derived deterministically from FilePath.
	Pattern Pattern

	// FilePath is the route module path the entry was loaded from.
	FilePath string

	// Handlers maps HTTP methods to explicit handlers.
	Handlers map[string]Handler

	// Default is the module's default component, if any.
	Default ComponentFunc
}
