// Package errors provides structured CLI errors with stable codes,
// source locations, and fix suggestions, plus terminal formatting for
// the strata command.
package errors
