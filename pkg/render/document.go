package render

import (
	"context"
	"fmt"
	"io"

	"github.com/strata-dev/strata/pkg/vdom"
)

// IslandManifestID is the DOM id of the embedded island manifest script.
// The client bootstrapper locates the manifest by this id.
const IslandManifestID = "__STRATA_ISLANDS__"

// ManifestSource supplies the island manifest JSON for a page. The
// renderer consumes it after the body has rendered, so islands created
// while rendering (inside async subtrees or lazy components) are
// included.
type ManifestSource interface {
	Manifest() (string, error)
}

// Document describes a complete HTML page: the merged head metadata, the
// body content, and the client bootstrap payload.
type Document struct {
	// Head is the final head metadata, already merged with layout defaults.
	Head Head

	// Body is the page content, with all layouts applied.
	Body *vdom.VNode

	// Lang is the html element lang attribute. Defaults to "en".
	Lang string

	// Islands supplies the island manifest. Consumed exactly once, after
	// the body renders. Nil, or an empty manifest, embeds nothing.
	Islands ManifestSource

	// ClientScript is the URL of the hydration bootstrapper. The script
	// tag is emitted only when the manifest is non-empty.
	ClientScript string
}

// RenderDocument renders a complete HTML document to w in buffered mode.
// Asynchronous subtrees block inline; use StreamDocument for incremental
// emission.
func (r *Renderer) RenderDocument(ctx context.Context, w io.Writer, doc Document) error {
	if err := r.writeFramePrefix(w, doc); err != nil {
		return err
	}
	if err := r.Render(ctx, w, doc.Body); err != nil {
		return err
	}
	return r.writeFrameSuffix(w, doc)
}

// writeFramePrefix emits everything up to and including the opening body tag.
// Head metadata is consumed here, exactly once per document.
func (r *Renderer) writeFramePrefix(w io.Writer, doc Document) error {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}
	if err := doc.Head.write(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
		return err
	}
	return nil
}

// writeFrameSuffix emits the island manifest, the client bootstrap script,
// and the closing tags. The manifest source is read here, after the body
// has fully rendered, so every island the render produced is present.
func (r *Renderer) writeFrameSuffix(w io.Writer, doc Document) error {
	var manifest string
	if doc.Islands != nil {
		m, err := doc.Islands.Manifest()
		if err != nil {
			return fmt.Errorf("render: island manifest: %w", err)
		}
		manifest = m
	}
	if manifest != "" {
		if _, err := fmt.Fprintf(w, "\n"+`<script type="application/json" id="%s">%s</script>`+"\n",
			IslandManifestID, manifest); err != nil {
			return err
		}
		if doc.ClientScript != "" {
			if _, err := fmt.Fprintf(w, `<script src="%s" defer></script>`+"\n",
				escapeAttr(doc.ClientScript)); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
