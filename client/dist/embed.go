package clientdist

import _ "embed"

// StrataJS is the client hydration bootstrapper.
//
// It is served by the framework at "/_strata/client.js".
//
//go:embed strata.js
var StrataJS []byte
