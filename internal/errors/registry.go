package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates. Codes are grouped by
// concern: E1xx config, E2xx route scanning, E3xx dev server, E4xx
// deploy.
var registry = map[string]ErrorTemplate{
	"E101": {
		Category: CategoryConfig,
		Message:  "Project configuration not found",
		Detail:   "No strata.json was found in the project directory.",
		DocURL:   "https://strata.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid project configuration",
		Detail:   "strata.json could not be parsed or written.",
		DocURL:   "https://strata.dev/docs/errors/E102",
	},

	"E201": {
		Category: CategoryScan,
		Message:  "Route file failed to parse",
		Detail:   "A file in the routes directory is not valid Go source.",
		DocURL:   "https://strata.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryScan,
		Message:  "Invalid route pattern",
		Detail:   "A route file path does not form a valid pattern. Catch-all segments must be last, and parameter names must be unique within a route.",
		DocURL:   "https://strata.dev/docs/errors/E202",
	},

	"E301": {
		Category: CategoryDev,
		Message:  "File watcher failed",
		Detail:   "The development file watcher could not observe the project directory.",
		DocURL:   "https://strata.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryDev,
		Message:  "Dev server failed to start",
		Detail:   "The development server could not bind its address.",
		DocURL:   "https://strata.dev/docs/errors/E302",
	},

	"E401": {
		Category: CategoryDeploy,
		Message:  "Deploy upload failed",
		Detail:   "One or more files could not be uploaded to the deployment target.",
		DocURL:   "https://strata.dev/docs/errors/E401",
	},
	"E402": {
		Category: CategoryDeploy,
		Message:  "Deploy credentials missing",
		Detail:   "AWS credentials could not be resolved from the environment.",
		DocURL:   "https://strata.dev/docs/errors/E402",
	},
}
