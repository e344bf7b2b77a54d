// Package mux compiles route patterns into per-segment matchers and walks
// a request path against them to find a match and extract REST parameters.
//
// Three matcher variants compose into a route: literalMatcher (exact text),
// variableMatcher (captures a non-empty segment under a name), and
// wildcardMatcher (matches any remaining segments, used for a pattern
// ending in "/"). All three share one contract so a route is just an
// ordered slice of SegmentMatcher.
package mux

// Param is a single REST parameter captured from a path segment by a
// variableMatcher.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered list of captured REST parameters, in the order
// their segments appear in the path. It is a slice rather than a map
// because a path can in principle bind the same name more than once and
// callers may care about traversal order.
type Params []Param

// Get returns the value of the first parameter named name, and whether one
// was found.
func (p Params) Get(name string) (string, bool) {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// SegmentMatcher checks one path segment against a compiled pattern piece
// and, when it matches, optionally extracts a named parameter from it.
// Implementations are immutable once constructed and safe to share
// read-only across concurrent route lookups.
type SegmentMatcher interface {
	// CheckMatch reports whether segment satisfies this matcher.
	CheckMatch(segment string) bool
	// ExtractParam appends any REST parameter this matcher captures from
	// segment to params. It is a no-op for matchers that never capture.
	ExtractParam(params *Params, segment string)
}
