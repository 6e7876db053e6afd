// Package islands implements selective client-side hydration.
//
// An island is a component region the route author explicitly opts into
// interactivity. At server-render time each island gets a placeholder
// element carrying data attributes and a descriptor in the page
// manifest; the client bootstrapper reads the manifest and hydrates each
// island independently, leaving static markup untouched.
package islands
