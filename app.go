package strata

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	clientdist "github.com/strata-dev/strata/client/dist"
	"github.com/strata-dev/strata/pkg/assets"
	"github.com/strata-dev/strata/pkg/middleware"
	"github.com/strata-dev/strata/pkg/render"
	"github.com/strata-dev/strata/pkg/router"
	"github.com/strata-dev/strata/pkg/vdom"
)

// App composes the route table, the reserved handlers, and the renderer
// onto a chi mux. It owns the route table for the lifetime of the
// process; the table is built once by Routes and read-only afterwards.
type App struct {
	mux      *chi.Mux
	table    *router.Table
	registry *router.Registry
	renderer *render.Renderer

	staticDir    string
	staticPrefix string
	staticFS     http.FileSystem
	static       http.Handler
	assets       assets.Resolver

	config Config
	logger *slog.Logger
}

// New creates an App with the given configuration.
func New(cfg Config) *App {
	cfg.applyDefaults()

	app := &App{
		mux:          chi.NewRouter(),
		registry:     router.NewRegistry(),
		renderer:     render.New(render.Config{Pretty: cfg.DevMode, Streaming: cfg.Render.Streaming}),
		staticDir:    cfg.Static.Dir,
		staticPrefix: cfg.Static.Prefix,
		config:       cfg,
		logger:       cfg.Logger,
	}

	if cfg.Static.Dir != "" {
		app.staticFS = http.Dir(cfg.Static.Dir)
	}

	app.assets = assets.NewPassthroughResolver(cfg.Static.Prefix)
	if cfg.Static.ManifestPath != "" {
		if manifest, err := assets.Load(cfg.Static.ManifestPath); err != nil {
			app.logger.Warn("asset manifest not loaded", "path", cfg.Static.ManifestPath, "error", err)
		} else {
			app.assets = assets.NewResolver(manifest, cfg.Static.Prefix)
		}
	}

	// chi requires all middleware before the first route registration.
	if cfg.Metrics.Enabled {
		app.mux.Use(middleware.Metrics())
	}
	if cfg.Tracing.Enabled {
		app.mux.Use(middleware.Tracing(cfg.Tracing.TracerName))
	}
	if cfg.Metrics.Enabled {
		app.mux.Handle(cfg.Metrics.Path, middleware.MetricsHandler())
	}

	// Static serving bypasses the mux but carries the same middleware,
	// so static requests show up in metrics and traces too.
	static := http.Handler(http.HandlerFunc(app.serveStatic))
	if cfg.Tracing.Enabled {
		static = middleware.Tracing(cfg.Tracing.TracerName)(static)
	}
	if cfg.Metrics.Enabled {
		static = middleware.Metrics()(static)
	}
	app.static = static

	app.mux.Get(cfg.Client.ScriptPath, serveClientScript)
	app.mux.NotFound(app.handleNotFound)

	return app
}

// Routes builds the route table from discovered route modules and
// registers every entry on the underlying mux.
func (a *App) Routes(files map[string]*router.Module) error {
	if a.table != nil {
		return fmt.Errorf("strata: routes already registered")
	}

	table, registry, err := router.Load(files)
	if err != nil {
		return err
	}
	a.table = table
	a.registry = registry

	for _, route := range table.Routes() {
		a.mount(route)
	}
	return nil
}

// mount registers one route's method handlers. A GET request with no
// explicit GET handler but a default component gets a synthesized page
// handler.
func (a *App) mount(route *router.Route) {
	pattern := route.Pattern.ChiPattern()

	for method, handler := range route.Handlers {
		a.mux.Method(method, pattern, a.wrapHandler(route, handler))
	}
	if route.Default != nil {
		if _, ok := route.Handlers[http.MethodGet]; !ok {
			a.mux.Get(pattern, a.wrapPage(route))
		}
	}
}

// ServeHTTP implements http.Handler. Static files are checked first; all
// other requests resolve against the route table.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if a.staticFS != nil && a.shouldServeStatic(r.URL.Path) {
		a.static.ServeHTTP(w, a.withStaticPattern(r))
		return
	}
	a.mux.ServeHTTP(w, r)
}

// Handler returns the App as an http.Handler.
func (a *App) Handler() http.Handler {
	return a
}

// Table returns the route table, or nil before Routes is called.
func (a *App) Table() *router.Table {
	return a.table
}

// Config returns the app configuration.
func (a *App) Config() Config {
	return a.config
}

// newCtx builds the request context with the app's asset resolver
// attached.
func (a *App) newCtx(r *http.Request, params map[string]string) *requestContext {
	c := newRequestContext(r, params, a.logger)
	c.resolver = a.assets
	return c
}

// =============================================================================
// Page pipeline
// =============================================================================

// wrapPage synthesizes the GET handler that renders a route's default
// component inside its composed layouts.
func (a *App) wrapPage(route *router.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := a.newCtx(r, routeParams(r, route))
		a.renderPage(w, r, c, route, route.Default)
	}
}

// renderPage runs the component, composes layouts and the document
// frame, and emits the response. Failures route to the error reserved
// handler.
func (a *App) renderPage(w http.ResponseWriter, r *http.Request, c *requestContext, route *router.Route, component router.ComponentFunc) {
	dir := routeDir(route)

	node, err := invokeComponent(c, component)
	if err != nil {
		a.recoverError(w, r, c, dir, &requestError{kind: HandlerError, err: err})
		return
	}

	if url, code, ok := c.redirectInfo(); ok {
		c.applyTo(w)
		http.Redirect(w, r, url, code)
		return
	}
	if node == nil {
		a.recoverError(w, r, c, dir, &requestError{kind: HandlerError, err: fmt.Errorf("page returned nil")})
		return
	}

	doc := a.composeDocument(c, dir, node)
	a.emitDocument(w, r, c, dir, doc)
}

// composeDocument applies nested layouts innermost-first, then the root
// document layout, and merges head metadata.
func (a *App) composeDocument(c *requestContext, dir string, node *vdom.VNode) render.Document {
	layouts := a.registry.LayoutsFor(dir)
	for i := len(layouts) - 1; i >= 0; i-- {
		node = layouts[i](c, node)
	}

	var doc render.Document
	if document := a.registry.Document(); document != nil {
		if d := document(c, node); d != nil {
			doc = *d
		} else {
			doc.Body = node
		}
	} else {
		doc.Body = node
	}
	if doc.Lang == "" {
		doc.Lang = a.config.Render.Lang
	}

	// Page metadata wins over layout defaults; layout meta and links
	// come first in the emitted head.
	doc.Head = c.head.Merge(doc.Head)

	// Islands can still be created while the body renders (async
	// subtrees, lazy components), so the renderer reads the collector
	// after body emission rather than receiving a snapshot here.
	doc.Islands = c.islands
	doc.ClientScript = a.config.Client.ScriptPath

	return doc
}

// emitDocument writes the document in the configured render mode.
func (a *App) emitDocument(w http.ResponseWriter, r *http.Request, c *requestContext, dir string, doc render.Document) {
	if a.config.Render.Streaming {
		c.applyTo(w)
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		w.WriteHeader(c.status)
		if err := a.renderer.StreamDocument(r.Context(), w, doc); err != nil {
			// Headers are gone; all we can do is stop and log.
			a.logger.Error("streaming render aborted", "path", r.URL.Path, "error", err)
		}
		return
	}

	html, err := a.renderBuffered(r, doc)
	if err != nil {
		a.recoverError(w, r, c, dir, &requestError{kind: RenderError, err: err})
		return
	}

	c.applyTo(w)
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(c.status)
	w.Write(html)
}

// renderBuffered renders the full document into memory so a failure can
// still be recovered into an error page.
func (a *App) renderBuffered(r *http.Request, doc render.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := a.renderer.RenderDocument(r.Context(), &buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// API pipeline
// =============================================================================

// wrapHandler adapts an explicit method handler. The handler writes its
// response through the context; errors route to the error reserved
// handler.
func (a *App) wrapHandler(route *router.Route, handler router.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := a.newCtx(r, routeParams(r, route))

		err := invokeHandler(c, handler)
		if err != nil {
			a.recoverError(w, r, c, routeDir(route), &requestError{kind: HandlerError, err: err})
			return
		}

		if url, code, ok := c.redirectInfo(); ok {
			c.applyTo(w)
			http.Redirect(w, r, url, code)
			return
		}

		c.applyTo(w)
		w.WriteHeader(c.status)
		if c.hasBody() {
			w.Write(c.body.Bytes())
		}
	}
}

// =============================================================================
// Error recovery
// =============================================================================

// handleNotFound is the mux fallback when no route matches. The request
// path picks the nearest scoped not-found page.
func (a *App) handleNotFound(w http.ResponseWriter, r *http.Request) {
	c := a.newCtx(r, nil)
	a.recoverError(w, r, c, requestScope(r.URL.Path),
		&requestError{kind: RouteNotFound, err: fmt.Errorf("no route for %s", r.URL.Path)})
}

// recoverError dispatches a request failure to the nearest reserved
// handler for dir. RouteNotFound goes to the not-found page; handler and
// render errors go to the error page. A missing or failing reserved
// handler degrades to a generic response. No retries: failures surface
// within the same request's response.
func (a *App) recoverError(w http.ResponseWriter, r *http.Request, c *requestContext, dir string, reqErr *requestError) {
	switch reqErr.kind {
	case RouteNotFound:
		c.status = http.StatusNotFound
		if notFound := a.registry.NotFoundFor(dir); notFound != nil {
			if a.renderReserved(w, r, c, dir, func() *vdom.VNode { return notFound(c) }) {
				return
			}
		}
		http.NotFound(w, r)

	default:
		a.logger.Error("request failed",
			"kind", reqErr.kind.String(), "path", r.URL.Path, "error", reqErr.err)

		c.status = http.StatusInternalServerError
		if httpErr, ok := reqErr.err.(interface{ StatusCode() int }); ok {
			c.status = httpErr.StatusCode()
		}
		if errorPage := a.registry.ErrorPageFor(dir); errorPage != nil {
			if a.renderReserved(w, r, c, dir, func() *vdom.VNode { return errorPage(c, reqErr.err) }) {
				return
			}
		}
		http.Error(w, http.StatusText(c.status), c.status)
	}
}

// renderReserved renders a reserved handler's tree inside the document
// frame, with the nested layouts of its scope applied. Returns false
// when the handler itself fails, so the caller can fall back to a
// generic response.
func (a *App) renderReserved(w http.ResponseWriter, r *http.Request, c *requestContext, dir string, produce func() *vdom.VNode) bool {
	node, err := invokeComponent(c, func(router.Ctx) *vdom.VNode { return produce() })
	if err != nil || node == nil {
		if err != nil {
			a.logger.Error("reserved handler failed", "path", r.URL.Path, "error", err)
		}
		return false
	}

	doc := a.composeDocument(c, dir, node)
	html, err := a.renderBuffered(r, doc)
	if err != nil {
		a.logger.Error("reserved handler render failed", "path", r.URL.Path, "error", err)
		return false
	}

	c.applyTo(w)
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(c.status)
	w.Write(html)
	return true
}

// =============================================================================
// Helpers
// =============================================================================

// invokeComponent calls a component, converting a panic into an error.
func invokeComponent(c router.Ctx, component router.ComponentFunc) (node *vdom.VNode, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("component panicked: %v", rec)
		}
	}()
	return component(c), nil
}

// invokeHandler calls a method handler, converting a panic into an error.
func invokeHandler(c router.Ctx, handler router.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()
	return handler(c)
}

// routeDir returns the directory scope of a route's source file. Index
// files scope to their own directory, so "docs/index" still picks up the
// "docs" nested layout.
func routeDir(route *router.Route) string {
	dir := path.Dir(route.FilePath)
	if dir == "." {
		return ""
	}
	return dir
}

// requestScope maps a request path to a directory scope for reserved
// handler lookup when no route matched.
func requestScope(urlPath string) string {
	return strings.Trim(path.Clean(urlPath), "/")
}

// routeParams extracts the route's named parameters from the chi route
// context.
func routeParams(r *http.Request, route *router.Route) map[string]string {
	params := make(map[string]string)
	for _, seg := range route.Pattern.Segments {
		if !seg.IsParam() {
			continue
		}
		if seg.CatchAll {
			params[seg.Param] = chi.URLParam(r, "*")
			continue
		}
		params[seg.Param] = chi.URLParam(r, seg.Param)
	}
	return params
}

// serveClientScript serves the embedded hydration bootstrapper.
func serveClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(clientdist.StrataJS)
}
