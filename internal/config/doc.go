// Package config loads and saves the strata.json project configuration
// used by the strata command.
package config
