package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/strata-dev/strata/pkg/vdom"
)

// StreamDocument renders a complete HTML document with incremental
// flushing. The head is flushed immediately for faster first paint; body
// content is emitted in document order, suspending on unresolved
// asynchronous subtrees. All async subtrees start resolving concurrently
// as soon as streaming begins, but an unresolved subtree reserves its
// position and delays everything after it in the document.
//
// When ctx is cancelled (client disconnect), chunk production stops and
// pending resolutions are abandoned.
func (r *Renderer) StreamDocument(ctx context.Context, w http.ResponseWriter, doc Document) error {
	flusher, _ := w.(http.Flusher)
	s := &streamer{
		renderer: r,
		ctx:      ctx,
		w:        w,
		flusher:  flusher,
		pending:  make(map[*vdom.VNode]chan asyncResult),
		settled:  make(map[*vdom.VNode]asyncResult),
	}

	if err := r.writeFramePrefix(w, doc); err != nil {
		return err
	}
	s.flush()

	s.start(doc.Body)
	if err := s.emit(doc.Body); err != nil {
		return err
	}
	s.flush()

	if err := r.writeFrameSuffix(w, doc); err != nil {
		return err
	}
	s.flush()
	return nil
}

// asyncResult carries a settled async subtree.
type asyncResult struct {
	node *vdom.VNode
	err  error
}

// streamer is the single consumer that emits chunks in document order.
// Resolution goroutines are the producers; backpressure comes from the
// consumer writing directly to the response writer instead of buffering.
type streamer struct {
	renderer *Renderer
	ctx      context.Context
	w        io.Writer
	flusher  http.Flusher

	mu      sync.Mutex
	pending map[*vdom.VNode]chan asyncResult
	settled map[*vdom.VNode]asyncResult
}

func (s *streamer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// start kicks off resolution of every async node in the subtree. Async
// nodes nested inside a not-yet-resolved subtree are started when their
// parent settles.
func (s *streamer) start(node *vdom.VNode) {
	if node == nil {
		return
	}
	if node.Kind == vdom.KindAsync {
		s.startAsync(node)
		return
	}
	if node.Kind == vdom.KindComponent {
		// Component output is produced during emission; its async
		// children are started then.
		return
	}
	for _, child := range node.Children {
		s.start(child)
	}
}

func (s *streamer) startAsync(node *vdom.VNode) {
	s.mu.Lock()
	if _, ok := s.pending[node]; ok {
		s.mu.Unlock()
		return
	}
	ch := make(chan asyncResult, 1)
	s.pending[node] = ch
	s.mu.Unlock()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- asyncResult{err: fmt.Errorf("render: async subtree panicked: %v", rec)}
			}
		}()
		if node.Resolve == nil {
			ch <- asyncResult{}
			return
		}
		resolved, err := node.Resolve(s.ctx)
		ch <- asyncResult{node: resolved, err: err}
	}()
}

// emit walks the tree in document order, writing chunks as they become
// available.
func (s *streamer) emit(node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	if err := s.ctx.Err(); err != nil {
		return err
	}

	switch node.Kind {
	case vdom.KindAsync:
		return s.emitAsync(node)
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		out, err := renderComponent(node.Comp)
		if err != nil {
			return err
		}
		s.start(out)
		return s.emit(out)
	case vdom.KindElement:
		if _, err := fmt.Fprintf(s.w, "<%s", node.Tag); err != nil {
			return err
		}
		if err := renderAttributes(s.w, node.Props); err != nil {
			return err
		}
		if vdom.IsVoidElement(node.Tag) {
			_, err := s.w.Write([]byte{'>'})
			return err
		}
		if _, err := s.w.Write([]byte{'>'}); err != nil {
			return err
		}
		for _, child := range node.Children {
			if err := s.emit(child); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(s.w, "</%s>", node.Tag)
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := s.emit(child); err != nil {
				return err
			}
		}
		return nil
	default:
		// Text and raw nodes are leaf chunks.
		return s.renderer.renderNode(s.ctx, s.w, node)
	}
}

// emitAsync flushes everything written so far, then suspends until the
// subtree settles or the client disconnects. A settled result is cached
// so a node aliased into several document positions emits each time
// instead of blocking on the drained channel.
func (s *streamer) emitAsync(node *vdom.VNode) error {
	s.mu.Lock()
	result, done := s.settled[node]
	ch := s.pending[node]
	s.mu.Unlock()

	if !done {
		if ch == nil {
			s.startAsync(node)
			s.mu.Lock()
			ch = s.pending[node]
			s.mu.Unlock()
		}

		s.flush()

		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		case result = <-ch:
			s.mu.Lock()
			s.settled[node] = result
			s.mu.Unlock()
		}
	}

	if result.err != nil {
		return fmt.Errorf("render: async subtree: %w", result.err)
	}
	s.start(result.node)
	return s.emit(result.node)
}

// renderComponent invokes a component, converting a panic into an error.
func renderComponent(comp vdom.Component) (node *vdom.VNode, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render: component panicked: %v", rec)
		}
	}()
	return comp.Render(), nil
}
