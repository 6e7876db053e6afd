package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E101")
	if err.Category != CategoryConfig {
		t.Errorf("category = %q", err.Category)
	}
	if !strings.Contains(err.Error(), "E101") {
		t.Errorf("Error = %q", err.Error())
	}
	if err.DocURL == "" {
		t.Error("registered error missing doc URL")
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("code = %q", err.Code)
	}
	if err.Category != CategoryCLI {
		t.Errorf("category = %q", err.Category)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryDeploy, "bucket %q rejected upload", "assets")
	if err.Message != `bucket "assets" rejected upload` {
		t.Errorf("message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("ad-hoc error has code %q", err.Code)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New("E302").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
}

func TestBuilderChaining(t *testing.T) {
	err := New("E201").
		WithDetail("unexpected token").
		WithSuggestion("check the file for syntax errors")

	if err.Detail != "unexpected token" {
		t.Errorf("detail = %q", err.Detail)
	}
	if err.Suggestion == "" {
		t.Error("suggestion not set")
	}
}

func TestFormatIncludesParts(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E401").
		WithDetail("3 of 12 files failed").
		WithSuggestion("retry the deploy")

	out := err.Format()
	for _, want := range []string{"E401", "3 of 12 files failed", "hint: retry the deploy", "strata.dev/docs"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format missing %q:\n%s", want, out)
		}
	}
}

func TestLocationString(t *testing.T) {
	loc := &Location{File: "routes/index.go", Line: 12, Column: 4}
	if got := loc.String(); got != "routes/index.go:12:4" {
		t.Errorf("String = %q", got)
	}
	loc.Column = 0
	if got := loc.String(); got != "routes/index.go:12" {
		t.Errorf("String = %q", got)
	}
	var nilLoc *Location
	if got := nilLoc.String(); got != "" {
		t.Errorf("nil String = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 12)
	for _, line := range lines {
		if len(line) > 12 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if got := strings.Join(lines, " "); got != "one two three four five six seven" {
		t.Errorf("joined = %q", got)
	}
}
