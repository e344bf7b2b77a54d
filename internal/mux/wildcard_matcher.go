package mux

// wildcardMatcher matches any segment, including an empty one. It is
// appended to a route's matcher sequence whenever the route pattern ends
// with "/", and at match time it absorbs any number of trailing path
// segments, including zero.
type wildcardMatcher struct{}

func newWildcardMatcher() wildcardMatcher {
	return wildcardMatcher{}
}

// CheckMatch always returns true.
func (m wildcardMatcher) CheckMatch(_ string) bool {
	return true
}

// ExtractParam is a no-op: a wildcard never binds a REST parameter.
func (m wildcardMatcher) ExtractParam(_ *Params, _ string) {}
