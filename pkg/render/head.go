package render

import (
	"fmt"
	"io"
)

// Head holds per-request document head metadata. It is constructed by the
// invoked page component, merged with ancestor layout defaults, and
// consumed exactly once when the document frame is emitted.
type Head struct {
	// Title is the document title. Empty means no title tag is emitted.
	Title string

	// Meta tags, emitted in insertion order after the title.
	Meta []MetaTag

	// Links, emitted in insertion order after the meta tags.
	Links []LinkTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
	Charset   string // charset attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string // rel attribute
	Href        string // href attribute
	Type        string // type attribute
	Sizes       string // sizes attribute
	CrossOrigin string // crossorigin attribute
	Media       string // media attribute
}

// Merge layers h over defaults from an ancestor layout. The page's own
// title wins; layout meta and link tags precede the page's.
func (h Head) Merge(defaults Head) Head {
	merged := Head{Title: h.Title}
	if merged.Title == "" {
		merged.Title = defaults.Title
	}
	merged.Meta = append(append([]MetaTag{}, defaults.Meta...), h.Meta...)
	merged.Links = append(append([]LinkTag{}, defaults.Links...), h.Links...)
	return merged
}

// IsZero reports whether no metadata has been set.
func (h Head) IsZero() bool {
	return h.Title == "" && len(h.Meta) == 0 && len(h.Links) == 0
}

// write emits the head metadata: title first, then meta tags in insertion
// order, then link tags in insertion order.
func (h Head) write(w io.Writer) error {
	if h.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(h.Title)); err != nil {
			return err
		}
	}
	for _, meta := range h.Meta {
		if err := meta.write(w); err != nil {
			return err
		}
	}
	for _, link := range h.Links {
		if err := link.write(w); err != nil {
			return err
		}
	}
	return nil
}

func (m MetaTag) write(w io.Writer) error {
	if _, err := w.Write([]byte("  <meta")); err != nil {
		return err
	}
	attrs := []struct{ key, value string }{
		{"charset", m.Charset},
		{"name", m.Name},
		{"property", m.Property},
		{"http-equiv", m.HTTPEquiv},
		{"content", m.Content},
	}
	for _, attr := range attrs {
		if attr.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, attr.key, escapeAttr(attr.value)); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte(">\n"))
	return err
}

func (l LinkTag) write(w io.Writer) error {
	if _, err := w.Write([]byte("  <link")); err != nil {
		return err
	}
	attrs := []struct{ key, value string }{
		{"rel", l.Rel},
		{"href", l.Href},
		{"type", l.Type},
		{"sizes", l.Sizes},
		{"crossorigin", l.CrossOrigin},
		{"media", l.Media},
	}
	for _, attr := range attrs {
		if attr.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, attr.key, escapeAttr(attr.value)); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte(">\n"))
	return err
}
