package render

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/strata-dev/strata/pkg/vdom"
)

// flushRecorder is a minimal http.ResponseWriter with flush counting.
type flushRecorder struct {
	bytes.Buffer
	header     http.Header
	flushCount int
}

func newFlushRecorder() *flushRecorder {
	return &flushRecorder{header: make(http.Header)}
}

func (f *flushRecorder) Header() http.Header  { return f.header }
func (f *flushRecorder) WriteHeader(code int) {}
func (f *flushRecorder) Flush()               { f.flushCount++ }

func TestStreamDocumentPreservesDocumentOrder(t *testing.T) {
	first := make(chan struct{})
	second := make(chan struct{})
	close(second) // second subtree settles immediately

	body := vdom.Div(
		vdom.P(vdom.Text("intro")),
		vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
			<-first
			return vdom.P(vdom.Text("slow")), nil
		}),
		vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
			<-second
			return vdom.P(vdom.Text("fast")), nil
		}),
	)

	// Release the slow subtree after the fast one has long settled.
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(first)
	}()

	w := newFlushRecorder()
	err := New(Config{Streaming: true}).StreamDocument(context.Background(), w, Document{Body: body})
	if err != nil {
		t.Fatalf("StreamDocument: %v", err)
	}

	html := w.String()
	slow := strings.Index(html, "<p>slow</p>")
	fast := strings.Index(html, "<p>fast</p>")
	if slow < 0 || fast < 0 {
		t.Fatalf("both subtrees should be emitted: %q", html)
	}
	if slow > fast {
		t.Errorf("document order violated: slow at %d, fast at %d", slow, fast)
	}
	if w.flushCount == 0 {
		t.Error("expected at least one flush")
	}
}

func TestStreamDocumentHeadFlushedBeforeAsyncSettles(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	var headFlushed bytes.Buffer
	w := newFlushRecorder()

	body := vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
		// Snapshot what has been written before this subtree settles.
		headFlushed.Write(w.Bytes())
		return vdom.P(vdom.Text("late")), nil
	})

	err := New(Config{Streaming: true}).StreamDocument(context.Background(), w, Document{
		Head: Head{Title: "Early"},
		Body: body,
	})
	if err != nil {
		t.Fatalf("StreamDocument: %v", err)
	}

	if !strings.Contains(headFlushed.String(), "<title>Early</title>") {
		t.Errorf("head should be written before async subtree settles, got %q", headFlushed.String())
	}
}

func TestStreamDocumentCancellationStopsChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	body := vdom.Div(
		vdom.P(vdom.Text("sent")),
		vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}),
		vdom.P(vdom.Text("never")),
	)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	w := newFlushRecorder()
	err := New(Config{Streaming: true}).StreamDocument(ctx, w, Document{Body: body})
	if err == nil {
		t.Fatal("expected error on cancellation")
	}

	html := w.String()
	if !strings.Contains(html, "<p>sent</p>") {
		t.Errorf("content before the suspension point should be emitted: %q", html)
	}
	if strings.Contains(html, "never") {
		t.Errorf("no chunks may be produced after cancellation: %q", html)
	}
}

func TestStreamDocumentAsyncErrorSurfaced(t *testing.T) {
	body := vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
		return nil, context.DeadlineExceeded
	})

	w := newFlushRecorder()
	err := New(Config{Streaming: true}).StreamDocument(context.Background(), w, Document{Body: body})
	if err == nil {
		t.Fatal("expected async error to surface")
	}
}

func TestStreamDocumentNestedAsync(t *testing.T) {
	body := vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
		return vdom.Div(
			vdom.Text("outer"),
			vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
				return vdom.Text("inner"), nil
			}),
		), nil
	})

	w := newFlushRecorder()
	err := New(Config{Streaming: true}).StreamDocument(context.Background(), w, Document{Body: body})
	if err != nil {
		t.Fatalf("StreamDocument: %v", err)
	}
	if !strings.Contains(w.String(), "<div>outerinner</div>") {
		t.Errorf("nested async subtree missing: %q", w.String())
	}
}

func TestStreamDocumentAliasedAsyncNode(t *testing.T) {
	shared := vdom.Async(func(ctx context.Context) (*vdom.VNode, error) {
		return vdom.Span(vdom.Text("twin")), nil
	})
	w := newFlushRecorder()

	done := make(chan error, 1)
	go func() {
		done <- New(Config{Streaming: true}).StreamDocument(context.Background(), w,
			Document{Body: vdom.Div(shared, shared)})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("StreamDocument: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream stalled on an async node used in two positions")
	}

	if got := strings.Count(w.String(), "twin"); got != 2 {
		t.Errorf("aliased subtree rendered %d times, want 2: %q", got, w.String())
	}
}
