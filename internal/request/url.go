package request

import "strings"

// URL holds the request-target broken into the pieces the dispatch layer
// and the mux router care about. URI never contains a "#fragment" suffix,
// matching the wire semantics of a request-target (fragments are a client
// / browser-side concept and never travel over the wire in a real request,
// but the parser accepts one here because the literal test fixtures in the
// spec exercise it).
type URL struct {
	URI      string
	Path     string
	Query    string
	Fragment string
}

// splitRequestTarget decomposes a raw request-target (as it appeared
// between the two spaces of the request line) into a URL and a decoded
// query-parameter map.
//
// Fragment is split off first, then query. This mirrors the left-to-right
// shape of a request-target (path ["?" query] ["#" fragment]) without
// requiring either component to be present.
func splitRequestTarget(target string) (URL, map[string]string) {
	rest := target
	fragment := ""
	if idx := strings.IndexByte(rest, '#'); idx != -1 {
		fragment = rest[idx+1:]
		rest = rest[:idx]
	}

	uri := rest
	path := rest
	query := ""
	if idx := strings.IndexByte(rest, '?'); idx != -1 {
		path = rest[:idx]
		query = rest[idx+1:]
	}

	return URL{
		URI:      uri,
		Path:     path,
		Query:    query,
		Fragment: fragment,
	}, parseQueryParams(query)
}

// parseQueryParams splits a query string on "&" into "key=value" pairs and
// percent-decodes each side. A pair with no "=" is stored with an empty
// value rather than rejected; a repeated key keeps the last value seen.
//
// This is deliberately lenient: malformed query strings such as
// "?thisiswrong&" or "t=r&wrong" are accepted and produce best-effort
// decoded parameters rather than an error, per the documented open question
// in the source material. A stricter reimplementation is possible but
// would change observable behavior for these inputs, so it is not done
// here.
func parseQueryParams(query string) map[string]string {
	params := map[string]string{}
	if query == "" {
		return params
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key := pair
		value := ""
		if idx := strings.IndexByte(pair, '='); idx != -1 {
			key = pair[:idx]
			value = pair[idx+1:]
		}
		params[percentDecode(key)] = percentDecode(value)
	}
	return params
}

// percentDecode replaces "%HH" escapes with the byte they encode. "+" is
// left as a literal plus, not converted to a space (matching the source
// library's query-decoding behavior, which is not form-encoding). A "%"
// not followed by two hex digits is passed through literally rather than
// treated as an error.
func percentDecode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(hexVal(s[i+1])<<4 | hexVal(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
