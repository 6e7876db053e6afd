package strata

import "log/slog"

// Config is the application configuration.
type Config struct {
	// Static configures static file serving.
	Static StaticConfig

	// Render configures HTML rendering.
	Render RenderConfig

	// Client configures the hydration bootstrapper.
	Client ClientConfig

	// Metrics configures the Prometheus endpoint and request metrics.
	Metrics MetricsConfig

	// Tracing enables the OpenTelemetry request middleware.
	Tracing TracingConfig

	// DevMode relaxes output for development (pretty document spacing,
	// verbose error pages).
	DevMode bool

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files (e.g., "public").
	// Empty disables static serving.
	Dir string

	// Prefix is the URL path prefix for static files. Default: "/".
	Prefix string

	// ManifestPath is the path to a fingerprint manifest.json mapping
	// source asset names to hashed file names. Empty means assets
	// resolve to their source names.
	ManifestPath string
}

// RenderConfig configures HTML rendering.
type RenderConfig struct {
	// Streaming emits pages incrementally, suspending on asynchronous
	// subtrees. Buffered rendering is the default.
	Streaming bool

	// Lang is the default html lang attribute. Default: "en".
	Lang string
}

// ClientConfig configures the client hydration bootstrapper.
type ClientConfig struct {
	// ScriptPath is the URL the bootstrapper is served at.
	// Default: "/_strata/client.js".
	ScriptPath string
}

// MetricsConfig configures Prometheus request metrics.
type MetricsConfig struct {
	// Enabled mounts the metrics middleware and the scrape endpoint.
	Enabled bool

	// Path is the scrape endpoint path. Default: "/metrics".
	Path string
}

// TracingConfig configures OpenTelemetry request tracing.
type TracingConfig struct {
	// Enabled mounts the tracing middleware.
	Enabled bool

	// TracerName names the tracer. Default: "strata".
	TracerName string
}

// DefaultClientScriptPath is where the embedded bootstrapper is served.
const DefaultClientScriptPath = "/_strata/client.js"

// applyDefaults fills zero-valued config fields.
func (c *Config) applyDefaults() {
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}
	if c.Render.Lang == "" {
		c.Render.Lang = "en"
	}
	if c.Client.ScriptPath == "" {
		c.Client.ScriptPath = DefaultClientScriptPath
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "strata"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
