// Package render serializes vdom trees to HTML responses.
//
// Two modes are supported. Buffered rendering (RenderDocument) produces
// the full payload before anything is written. Streaming rendering
// (StreamDocument) emits chunks incrementally, suspending on asynchronous
// subtrees while preserving document order.
//
// Head metadata (title, meta, link) is serialized deterministically:
// title first, then meta tags in insertion order, then link tags in
// insertion order.
package render
