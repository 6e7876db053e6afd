package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node with the given tag.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, attr := range v {
				node.setAttr(attr)
			}
		default:
			appendChildren(node, []any{arg})
		}
	}

	return node
}

func (v *VNode) setAttr(attr Attr) {
	if attr.Key == "" {
		return
	}
	if attr.Key == "key" {
		if s, ok := attr.Value.(string); ok {
			v.Key = s
		}
		return
	}
	v.Props[attr.Key] = attr.Value
}

// Document structure elements.

func Html(args ...any) *VNode  { return El("html", args...) }
func Head(args ...any) *VNode  { return El("head", args...) }
func Body(args ...any) *VNode  { return El("body", args...) }
func Title(args ...any) *VNode { return El("title", args...) }
func Meta(args ...any) *VNode  { return El("meta", args...) }
func Link(args ...any) *VNode  { return El("link", args...) }

// Sectioning and heading elements.

func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Article(args ...any) *VNode { return El("article", args...) }
func Aside(args ...any) *VNode   { return El("aside", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }
func H4(args ...any) *VNode      { return El("h4", args...) }
func H5(args ...any) *VNode      { return El("h5", args...) }
func H6(args ...any) *VNode      { return El("h6", args...) }

// Grouping content.

func Div(args ...any) *VNode        { return El("div", args...) }
func P(args ...any) *VNode          { return El("p", args...) }
func Pre(args ...any) *VNode        { return El("pre", args...) }
func Blockquote(args ...any) *VNode { return El("blockquote", args...) }
func Ol(args ...any) *VNode         { return El("ol", args...) }
func Ul(args ...any) *VNode         { return El("ul", args...) }
func Li(args ...any) *VNode         { return El("li", args...) }
func Figure(args ...any) *VNode     { return El("figure", args...) }
func Figcaption(args ...any) *VNode { return El("figcaption", args...) }
func Hr(args ...any) *VNode         { return El("hr", args...) }
func Br(args ...any) *VNode         { return El("br", args...) }

// Text-level semantics.

func A(args ...any) *VNode      { return El("a", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func Em(args ...any) *VNode     { return El("em", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }
func Small(args ...any) *VNode  { return El("small", args...) }
func Code(args ...any) *VNode   { return El("code", args...) }
func Time(args ...any) *VNode   { return El("time", args...) }

// Embedded content.

func Img(args ...any) *VNode    { return El("img", args...) }
func Iframe(args ...any) *VNode { return El("iframe", args...) }
func Script(args ...any) *VNode { return El("script", args...) }
func Style(args ...any) *VNode  { return El("style", args...) }

// Tables.

func Table(args ...any) *VNode { return El("table", args...) }
func Thead(args ...any) *VNode { return El("thead", args...) }
func Tbody(args ...any) *VNode { return El("tbody", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Th(args ...any) *VNode    { return El("th", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }

// Forms.

func Form(args ...any) *VNode     { return El("form", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Select(args ...any) *VNode   { return El("select", args...) }
func Option(args ...any) *VNode   { return El("option", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
