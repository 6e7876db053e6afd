package router

import (
	"fmt"
	"strings"
)

// Segment is one element of a URL pattern: a literal, a named parameter,
// or a catch-all.
type Segment struct {
	// Literal is the literal text for static segments.
	Literal string

	// Param is the parameter name for dynamic segments ("[name]" in the
	// file path). Empty for static segments.
	Param string

	// CatchAll marks a "[...name]" segment. It must be the last segment.
	CatchAll bool
}

// IsParam reports whether the segment captures a parameter.
func (s Segment) IsParam() bool {
	return s.Param != ""
}

// Pattern is a URL pattern derived deterministically from a route file
// path. Parameter segments use the bracket convention: "about/[name]"
// matches "/about/yusuke" with name="yusuke".
type Pattern struct {
	Segments []Segment
}

// ParsePattern maps a route file path to its URL pattern. The file
// extension is stripped, "index" files map to their directory, bracketed
// segments become named parameters, and "[...name]" becomes a trailing
// catch-all. Parameter names must be unique within one pattern.
//
// ParsePattern is a pure function of the path string; it never touches
// the file system.
func ParsePattern(filePath string) (Pattern, error) {
	path := strings.ReplaceAll(filePath, "\\", "/")
	path = strings.Trim(path, "/")
	path = trimExtension(path)

	// Index files route to their directory.
	if path == "index" {
		path = ""
	} else {
		path = strings.TrimSuffix(path, "/index")
	}

	if path == "" {
		return Pattern{}, nil
	}

	parts := strings.Split(path, "/")
	segments := make([]Segment, 0, len(parts))
	seen := make(map[string]bool)

	for i, part := range parts {
		if part == "" {
			return Pattern{}, fmt.Errorf("router: empty segment in %q", filePath)
		}

		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			inner := part[1 : len(part)-1]
			seg := Segment{}
			if strings.HasPrefix(inner, "...") {
				seg.Param = inner[3:]
				seg.CatchAll = true
				if i != len(parts)-1 {
					return Pattern{}, fmt.Errorf("router: catch-all segment %q must be last in %q", part, filePath)
				}
			} else {
				seg.Param = inner
			}
			if seg.Param == "" {
				return Pattern{}, fmt.Errorf("router: unnamed parameter segment in %q", filePath)
			}
			if seen[seg.Param] {
				return Pattern{}, fmt.Errorf("router: duplicate parameter %q in %q", seg.Param, filePath)
			}
			seen[seg.Param] = true
			segments = append(segments, seg)
			continue
		}

		segments = append(segments, Segment{Literal: part})
	}

	return Pattern{Segments: segments}, nil
}

// String returns the pattern in bracket notation, e.g. "/about/[name]".
func (p Pattern) String() string {
	if len(p.Segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteByte('/')
		switch {
		case seg.CatchAll:
			b.WriteString("[...")
			b.WriteString(seg.Param)
			b.WriteByte(']')
		case seg.IsParam():
			b.WriteByte('[')
			b.WriteString(seg.Param)
			b.WriteByte(']')
		default:
			b.WriteString(seg.Literal)
		}
	}
	return b.String()
}

// ChiPattern returns the pattern in chi mux notation: "[name]" maps to
// "{name}" and "[...name]" to the chi wildcard.
func (p Pattern) ChiPattern() string {
	if len(p.Segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteByte('/')
		switch {
		case seg.CatchAll:
			b.WriteByte('*')
		case seg.IsParam():
			b.WriteByte('{')
			b.WriteString(seg.Param)
			b.WriteByte('}')
		default:
			b.WriteString(seg.Literal)
		}
	}
	return b.String()
}

// ParamNames returns the parameter names in segment order.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, seg := range p.Segments {
		if seg.IsParam() {
			names = append(names, seg.Param)
		}
	}
	return names
}

// specificity orders patterns for registration: static segments beat
// parameter segments, which beat catch-alls. Lower sorts first.
func (p Pattern) specificity() int {
	score := 0
	for _, seg := range p.Segments {
		switch {
		case seg.CatchAll:
			score += 100
		case seg.IsParam():
			score += 10
		}
	}
	return score
}

// routeExtensions are the source-file extensions recognized on route
// module paths. Only these are stripped, so catch-all brackets like
// "[...slug]" are never mistaken for an extension.
var routeExtensions = []string{".go", ".tsx", ".jsx", ".ts", ".js", ".mdx"}

// trimExtension drops a trailing route source-file extension.
func trimExtension(path string) string {
	for _, ext := range routeExtensions {
		if strings.HasSuffix(path, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}
