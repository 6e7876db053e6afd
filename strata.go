// Package strata is a meta-framework for server-rendered web
// applications in Go: file-convention routing, island-based client
// hydration, and streamed or buffered HTML rendering, composed on top of
// the chi router.
//
// Usage:
//
//	app := strata.New(strata.Config{
//	    Static: strata.StaticConfig{Dir: "public"},
//	})
//
//	err := app.Routes(map[string]*strata.Module{
//	    "index.go":        {Default: pages.Index},
//	    "about/[name].go": {Default: pages.About},
//	    "_404.go":         {NotFound: pages.NotFound},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", app)
package strata

import (
	"github.com/strata-dev/strata/pkg/render"
	"github.com/strata-dev/strata/pkg/router"
	"github.com/strata-dev/strata/pkg/vdom"
)

// Version is the framework version, set at build time for releases.
var Version = "dev"

// Re-exports so applications only import the root package.

// VNode is the virtual DOM node type.
type VNode = vdom.VNode

// Ctx is the per-request context passed to handlers and components.
type Ctx = router.Ctx

// Module is the export surface of one route file.
type Module = router.Module

// Handler handles one HTTP method on a route.
type Handler = router.Handler

// ComponentFunc produces page content for a route.
type ComponentFunc = router.ComponentFunc

// LayoutHandler wraps child content in a nested layout.
type LayoutHandler = router.LayoutHandler

// DocumentHandler produces the outermost document frame.
type DocumentHandler = router.DocumentHandler

// ErrorHandler renders the error page.
type ErrorHandler = router.ErrorHandler

// Head metadata types.
type (
	Head    = render.Head
	MetaTag = render.MetaTag
	LinkTag = render.LinkTag
)
