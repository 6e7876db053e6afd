package strata

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/strata-dev/strata/pkg/assets"
	"github.com/strata-dev/strata/pkg/islands"
	"github.com/strata-dev/strata/pkg/render"
	"github.com/strata-dev/strata/pkg/router"
	"github.com/strata-dev/strata/pkg/vdom"
)

// requestContext implements router.Ctx for one request. Response status,
// headers, and any direct body are buffered until the app emits the
// response, so reserved handlers can still take over on failure.
type requestContext struct {
	request *http.Request
	params  map[string]string
	logger  *slog.Logger

	status  int
	header  http.Header
	cookies []*http.Cookie
	body    bytes.Buffer

	redirectURL  string
	redirectCode int

	head     render.Head
	islands  *islands.Collector
	resolver assets.Resolver
	values   map[any]any
}

var _ router.Ctx = (*requestContext)(nil)

func newRequestContext(r *http.Request, params map[string]string, logger *slog.Logger) *requestContext {
	if params == nil {
		params = make(map[string]string)
	}
	return &requestContext{
		request: r,
		params:  params,
		logger:  logger,
		status:  http.StatusOK,
		header:  make(http.Header),
		islands: islands.NewCollector(),
		values:  make(map[any]any),
	}
}

// Request info

func (c *requestContext) Request() *http.Request       { return c.request }
func (c *requestContext) Path() string                 { return c.request.URL.Path }
func (c *requestContext) Method() string               { return c.request.Method }
func (c *requestContext) Param(name string) string     { return c.params[name] }
func (c *requestContext) Params() map[string]string    { return c.params }
func (c *requestContext) Query() url.Values            { return c.request.URL.Query() }
func (c *requestContext) QueryParam(name string) string {
	return c.request.URL.Query().Get(name)
}
func (c *requestContext) Header(key string) string { return c.request.Header.Get(key) }

// Response control

func (c *requestContext) Status(code int)             { c.status = code }
func (c *requestContext) SetHeader(key, value string) { c.header.Set(key, value) }
func (c *requestContext) SetCookie(cookie *http.Cookie) {
	c.cookies = append(c.cookies, cookie)
}

func (c *requestContext) Redirect(url string, code int) {
	c.redirectURL = url
	c.redirectCode = code
}

func (c *requestContext) redirectInfo() (string, int, bool) {
	if c.redirectURL == "" {
		return "", 0, false
	}
	code := c.redirectCode
	if code == 0 {
		code = http.StatusSeeOther
	}
	return c.redirectURL, code, true
}

// Head metadata

func (c *requestContext) SetTitle(title string)       { c.head.Title = title }
func (c *requestContext) AddMeta(meta render.MetaTag) { c.head.Meta = append(c.head.Meta, meta) }
func (c *requestContext) AddLink(link render.LinkTag) { c.head.Links = append(c.head.Links, link) }

// Direct responses

func (c *requestContext) JSON(code int, v any) error {
	c.status = code
	c.header.Set("Content-Type", "application/json")
	return json.NewEncoder(&c.body).Encode(v)
}

func (c *requestContext) Text(code int, body string) error {
	c.status = code
	c.header.Set("Content-Type", "text/plain; charset=utf-8")
	_, err := c.body.WriteString(body)
	return err
}

// Assets

func (c *requestContext) Asset(source string) string {
	if c.resolver == nil {
		return "/" + source
	}
	return c.resolver.Asset(source)
}

// Islands

func (c *requestContext) Island(component string, props map[string]any, children ...*vdom.VNode) *vdom.VNode {
	return c.islands.New(component, props, children...)
}

// Ambient

func (c *requestContext) Logger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

func (c *requestContext) StdContext() context.Context { return c.request.Context() }

func (c *requestContext) SetValue(key, value any) { c.values[key] = value }
func (c *requestContext) Value(key any) any       { return c.values[key] }

// applyTo writes the buffered headers and cookies to w. The status is
// written separately, after the headers are complete.
func (c *requestContext) applyTo(w http.ResponseWriter) {
	for key, values := range c.header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	for _, cookie := range c.cookies {
		http.SetCookie(w, cookie)
	}
}

// hasBody reports whether a direct response body has been buffered.
func (c *requestContext) hasBody() bool {
	return c.body.Len() > 0
}
