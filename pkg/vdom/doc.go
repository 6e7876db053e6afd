// Package vdom provides the virtual node tree that page components,
// layouts, and islands produce on the server.
//
// Nodes are plain values constructed with element helpers:
//
//	vdom.Div(vdom.Class("card"),
//	    vdom.H1(vdom.Text("Hello")),
//	    vdom.P(vdom.Text("World")),
//	)
//
// Asynchronous subtrees are expressed with vdom.Async and resolved by the
// streaming renderer in document order.
package vdom
