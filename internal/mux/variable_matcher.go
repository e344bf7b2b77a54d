package mux

// variableMatcher matches any non-empty path segment, and captures it as a
// named REST parameter. Compiled from a pattern segment of the form
// "{name}".
type variableMatcher struct {
	name string
}

func newVariableMatcher(name string) variableMatcher {
	return variableMatcher{name: name}
}

// CheckMatch reports whether segment is non-empty.
func (m variableMatcher) CheckMatch(segment string) bool {
	return segment != ""
}

// ExtractParam appends (name, segment) to params.
func (m variableMatcher) ExtractParam(params *Params, segment string) {
	*params = append(*params, Param{Name: m.name, Value: segment})
}
