// Package router maps route module files to URL patterns and reserved
// lifecycle slots.
//
// File paths use the bracket convention: "about/[name]" produces a
// pattern with a named parameter, "docs/[...rest]" a trailing catch-all,
// and "index" files route to their directory. Files prefixed with an
// underscore never become routes; they bind reserved slots instead:
//
//	_404     not-found page
//	_error   error page
//	_layout  document layout at the routes root, nested layout elsewhere
//
// The route table is built once by Load and is read-only afterwards.
package router
