package mux

// entry pairs a compiled route with the opaque handler value registered
// against it. The handler is typed by the caller (internal/server binds it
// to its own Handler type) so this package stays free of any dependency on
// the request/response packages it's composed with.
type entry struct {
	route   Route
	handler any
}

// Router is a route table: an ordered list of compiled routes, walked in
// registration order, each immutable once compiled. It is safe for
// concurrent read-only use (Match) once registration (Handle) is done;
// registering routes concurrently with matching them is not supported, the
// same way the teacher's server only ever wires routes once at startup.
type Router struct {
	entries []entry
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Handle compiles pattern and registers handler against it. Routes are
// tried in registration order; the first match wins.
func (r *Router) Handle(pattern string, handler any) {
	r.entries = append(r.entries, entry{route: CompileRoute(pattern), handler: handler})
}

// Match finds the first registered route whose pattern matches path. It
// returns the handler that was registered for it, the REST parameters the
// match extracted, and whether any route matched at all. When ok is false,
// the caller's fallback (typically a 404 handler) decides what happens
// next — route-matching itself never reports an error.
func (r *Router) Match(path string) (handler any, params Params, ok bool) {
	for _, e := range r.entries {
		if p, matched := e.route.Match(path); matched {
			return e.handler, p, true
		}
	}
	return nil, nil, false
}
