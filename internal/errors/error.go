package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryScan   Category = "scan"
	CategoryDev    Category = "dev"
	CategoryDeploy Category = "deploy"
	CategoryCLI    Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// StrataError is a structured CLI error with a stable code, source
// location, and a fix suggestion.
type StrataError struct {
	// Code is a unique error identifier (e.g. "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL links to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StrataError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StrataError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location and context lines to the error.
func (e *StrataError) WithLocation(file string, line, column int) *StrataError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 3)
	return e
}

// WithDetail sets the long-form explanation.
func (e *StrataError) WithDetail(detail string) *StrataError {
	e.Detail = detail
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StrataError) WithSuggestion(s string) *StrataError {
	e.Suggestion = s
	return e
}

// Wrap attaches the underlying cause.
func (e *StrataError) Wrap(err error) *StrataError {
	e.Wrapped = err
	return e
}

// New creates an error from a registered code. Unknown codes produce a
// generic CLI error carrying the code.
func New(code string) *StrataError {
	if template, ok := registry[code]; ok {
		return &StrataError{
			Code:     code,
			Category: template.Category,
			Message:  template.Message,
			Detail:   template.Detail,
			DocURL:   template.DocURL,
		}
	}
	return &StrataError{
		Code:     code,
		Category: CategoryCLI,
		Message:  "unknown error",
	}
}

// Newf creates an ad-hoc error with a formatted message.
func Newf(category Category, format string, args ...any) *StrataError {
	return &StrataError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// readContextLines reads lines around the given line number for error
// context. Failures return nil; context is best effort.
func readContextLines(file string, line, radius int) []string {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	current := 0
	for scanner.Scan() {
		current++
		if current < line-radius {
			continue
		}
		if current > line+radius {
			break
		}
		lines = append(lines, fmt.Sprintf("%4d | %s", current, scanner.Text()))
	}
	return lines
}
