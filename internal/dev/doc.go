// Package dev implements the development loop for the strata command: a
// polling file watcher and a WebSocket server that pushes reload events
// to connected browsers.
package dev
