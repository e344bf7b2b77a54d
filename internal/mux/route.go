package mux

import "strings"

// Route is a compiled route pattern: an ordered sequence of per-segment
// matchers, plus whether the pattern ended in "/" (a trailing wildcard).
type Route struct {
	Matchers []SegmentMatcher
	Wildcard bool
}

// CompileRoute splits a route pattern on "/" into an ordered sequence of
// segment matchers. A segment of the form "{name}" compiles to a variable
// matcher; any other non-empty segment compiles to a literal matcher; a
// trailing "/" appends a wildcard matcher that absorbs the rest of the
// path.
func CompileRoute(pattern string) Route {
	parts := strings.Split(pattern, "/")
	// A leading "/" produces a leading empty element; a trailing "/"
	// produces a trailing empty element. Drop the leading one outright;
	// a trailing one signals a wildcard route instead of a literal empty
	// segment.
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}

	wildcard := false
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		wildcard = true
		parts = parts[:len(parts)-1]
	}

	matchers := make([]SegmentMatcher, 0, len(parts))
	for _, seg := range parts {
		matchers = append(matchers, compileSegment(seg))
	}
	if wildcard {
		matchers = append(matchers, newWildcardMatcher())
	}

	return Route{Matchers: matchers, Wildcard: wildcard}
}

func compileSegment(seg string) SegmentMatcher {
	if len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
		return newVariableMatcher(seg[1 : len(seg)-1])
	}
	return newLiteralMatcher(seg)
}

// splitPath splits a request path on "/", dropping the leading empty
// element a leading "/" produces. A trailing "/" is preserved as a
// trailing empty path segment, so "/a/" and "/a" are distinguishable to a
// non-wildcard route even though a wildcard route treats both the same.
func splitPath(path string) []string {
	segs := strings.Split(path, "/")
	if len(segs) > 0 && segs[0] == "" {
		segs = segs[1:]
	}
	return segs
}

// Match walks path's segments against the compiled matcher sequence. It
// matches iff every non-wildcard matcher's CheckMatch succeeds against the
// corresponding segment and segment counts align: a trailing wildcard
// absorbs any number of remaining segments (including zero); otherwise the
// path must have exactly as many segments as the route has matchers.
func (rt Route) Match(path string) (Params, bool) {
	pathSegs := splitPath(path)

	fixed := rt.Matchers
	if rt.Wildcard {
		fixed = rt.Matchers[:len(rt.Matchers)-1]
	}

	if rt.Wildcard {
		if len(pathSegs) < len(fixed) {
			return nil, false
		}
	} else if len(pathSegs) != len(fixed) {
		return nil, false
	}

	var params Params
	for i, m := range fixed {
		seg := pathSegs[i]
		if !m.CheckMatch(seg) {
			return nil, false
		}
		m.ExtractParam(&params, seg)
	}

	return params, true
}
