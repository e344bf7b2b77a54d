// Package request implements an incremental HTTP/1.x request parser.
//
// A Parser is constructed around an empty *Request and fed byte slices as
// they arrive off a connection, in any chunking the caller likes: a single
// call with the whole request, or a call per byte. It never re-parses a
// prefix it has already consumed, and it never performs I/O itself — every
// return from Parse is a suspension point, and the caller (typically a
// connection-handling goroutine) decides when and whether to call again.
package request

import (
	"strconv"

	"github.com/tallarm/servecore/internal/headers"
	"github.com/tallarm/servecore/internal/mux"
)

// Request is a parsed HTTP request. It is constructed empty, mutated
// exclusively by a Parser over its lifetime, and meant to be read-only once
// the Parser reports StatusFinished.
type Request struct {
	Method      Method
	HTTPVersion string
	URL         URL
	QueryParams map[string]string
	Headers     headers.Headers
	Body        []byte
	Params      mux.Params
}

// substate is the parser's position within the request grammar. It is
// finer-grained than Status: several substates all report StatusReadHeader
// to the caller.
type substate int

const (
	subMethod substate = iota
	subURI
	subVersion
	subReqLineLF
	subHeaderLineStart
	subHeaderName
	subHeaderColonOWS
	subHeaderValue
	subHeaderValueCR
	subHeadersEndCR
	subBody
	subDone
	subError
	subRejected
)

// Parser drives a byte-at-a-time state machine that populates a Request.
// It is not safe for concurrent use: it is meant to be owned by exactly one
// connection handler and fed bytes in TCP order.
type Parser struct {
	req *Request

	sub    substate
	status Status

	maxBytes int // <= 0 means unlimited
	consumed int

	methodBuf  []byte
	uriBuf     []byte
	versionBuf []byte

	headerNameBuf  []byte
	headerValueBuf []byte

	contentLength int
}

// NewParser returns a Parser with no request-size limit that will populate
// req as bytes are fed to Parse.
func NewParser(req *Request) *Parser {
	return NewBoundedParser(req, 0)
}

// NewBoundedParser returns a Parser that transitions to
// StatusRejectedRequestSize once the cumulative number of bytes passed to
// Parse exceeds maxBytes. maxBytes <= 0 means unlimited.
func NewBoundedParser(req *Request, maxBytes int) *Parser {
	req.Headers = headers.NewHeaders()
	req.QueryParams = map[string]string{}
	return &Parser{
		req:      req,
		sub:      subMethod,
		status:   StatusReadHeader,
		maxBytes: maxBytes,
	}
}

// Status returns the status last reported by Parse, without consuming any
// bytes.
func (p *Parser) Status() Status {
	return p.status
}

// Parse feeds data to the parser and returns the resulting Status. It may
// be called repeatedly as bytes arrive; each call resumes from wherever the
// previous call left off. After a terminal status (FINISHED, ERROR, or
// REJECTED_REQUEST_SIZE) it is idempotent: further calls return the same
// status without mutating req.
func (p *Parser) Parse(data []byte) Status {
	if p.status.Terminal() {
		return p.status
	}

	if p.maxBytes > 0 && p.consumed+len(data) > p.maxBytes {
		p.consumed += len(data)
		p.sub = subRejected
		p.status = StatusRejectedRequestSize
		return p.status
	}
	p.consumed += len(data)

	for i := 0; i < len(data); i++ {
		b := data[i]

		switch p.sub {
		case subMethod:
			if b == ' ' {
				m, ok := lookupMethod(string(p.methodBuf))
				if !ok {
					p.fail()
					return p.status
				}
				p.req.Method = m
				p.sub = subURI
				continue
			}
			p.methodBuf = append(p.methodBuf, b)

		case subURI:
			if b == ' ' {
				url, qp := splitRequestTarget(string(p.uriBuf))
				p.req.URL = url
				p.req.QueryParams = qp
				p.sub = subVersion
				continue
			}
			p.uriBuf = append(p.uriBuf, b)

		case subVersion:
			if b == '\r' {
				if !validVersion(p.versionBuf) {
					p.fail()
					return p.status
				}
				p.req.HTTPVersion = string(p.versionBuf)
				p.sub = subReqLineLF
				continue
			}
			p.versionBuf = append(p.versionBuf, b)

		case subReqLineLF:
			if b != '\n' {
				p.fail()
				return p.status
			}
			p.sub = subHeaderLineStart

		case subHeaderLineStart:
			if b == '\r' {
				p.sub = subHeadersEndCR
				continue
			}
			if !headers.ValidTokenChar(b) {
				p.fail()
				return p.status
			}
			p.headerNameBuf = []byte{b}
			p.sub = subHeaderName

		case subHeaderName:
			if b == ':' {
				p.sub = subHeaderColonOWS
				continue
			}
			if !headers.ValidTokenChar(b) {
				p.fail()
				return p.status
			}
			p.headerNameBuf = append(p.headerNameBuf, b)

		case subHeaderColonOWS:
			if b == ' ' || b == '\t' {
				continue
			}
			if b == '\r' {
				p.commitHeader()
				p.sub = subHeaderValueCR
				continue
			}
			p.headerValueBuf = append(p.headerValueBuf, b)
			p.sub = subHeaderValue

		case subHeaderValue:
			if b == '\r' {
				p.commitHeader()
				p.sub = subHeaderValueCR
				continue
			}
			p.headerValueBuf = append(p.headerValueBuf, b)

		case subHeaderValueCR:
			if b != '\n' {
				p.fail()
				return p.status
			}
			p.sub = subHeaderLineStart

		case subHeadersEndCR:
			if b != '\n' {
				p.fail()
				return p.status
			}
			if !p.dispatchAfterHeaders() {
				return p.status
			}
			if p.status == StatusExpectContinue || p.status == StatusFinished {
				// Either is a suspension point: StatusExpectContinue must
				// reach the caller so it can write the 100 Continue interim
				// response before more bytes arrive; StatusFinished means
				// dispatchAfterHeaders already closed out a zero-length
				// body. Any bytes left in data belong to a later call.
				return p.status
			}

		case subBody:
			remaining := p.contentLength - len(p.req.Body)
			if remaining <= 0 {
				p.sub = subDone
				p.status = StatusFinished
				return p.status
			}
			chunk := data[i:]
			if len(chunk) > remaining {
				chunk = chunk[:remaining]
			}
			p.req.Body = append(p.req.Body, chunk...)
			i += len(chunk) - 1
			if len(p.req.Body) >= p.contentLength {
				p.sub = subDone
				p.status = StatusFinished
				return p.status
			}
			p.status = StatusReadBody
		}
	}

	if !p.status.Terminal() {
		if p.sub == subBody {
			p.status = StatusReadBody
		} else {
			p.status = StatusReadHeader
		}
	}
	return p.status
}

// fail transitions the parser to the terminal ERROR status.
func (p *Parser) fail() {
	p.sub = subError
	p.status = StatusError
}

// commitHeader stores the accumulated header-name/header-value pair and
// resets the accumulators for the next header line.
func (p *Parser) commitHeader() {
	p.req.Headers.Set(string(p.headerNameBuf), string(trimTrailingOWS(p.headerValueBuf)))
	p.headerNameBuf = nil
	p.headerValueBuf = nil
}

// trimTrailingOWS trims trailing optional whitespace from a header value.
// Leading OWS is already skipped by subHeaderColonOWS.
func trimTrailingOWS(v []byte) []byte {
	end := len(v)
	for end > 0 && (v[end-1] == ' ' || v[end-1] == '\t') {
		end--
	}
	return v[:end]
}

// dispatchAfterHeaders implements the header-section-completion decision:
// the Expect/Continue handshake, body framing, or immediate completion. It
// returns false if it put the parser into the terminal ERROR status, so the
// caller can return immediately.
func (p *Parser) dispatchAfterHeaders() bool {
	expectContinue := isExpectContinue(p.req.Headers.Get("Expect"))
	hasContentLength := p.req.Headers.Has("Content-Length")

	if expectContinue {
		if !hasContentLength {
			p.fail()
			return false
		}
		cl, err := parseContentLength(p.req.Headers.Get("Content-Length"))
		if err != nil {
			p.fail()
			return false
		}
		p.contentLength = cl
		p.sub = subBody
		p.status = StatusExpectContinue
		return true
	}

	hasContentType := p.req.Headers.Has("Content-Type")
	if hasContentType && hasContentLength {
		cl, err := parseContentLength(p.req.Headers.Get("Content-Length"))
		if err != nil {
			p.fail()
			return false
		}
		if cl > 0 {
			p.contentLength = cl
			p.sub = subBody
			p.status = StatusReadBody
			return true
		}
	}

	p.sub = subDone
	p.status = StatusFinished
	return true
}

func parseContentLength(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}

// isExpectContinue reports whether an Expect header value is the
// 100-continue token, case-insensitively.
func isExpectContinue(v string) bool {
	return equalFold(v, "100-continue")
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// validVersion checks an HTTP-version token against the grammar
// "HTTP/" DIGIT "." DIGIT.
func validVersion(v []byte) bool {
	if len(v) != 8 {
		return false
	}
	if string(v[:5]) != "HTTP/" {
		return false
	}
	return isDigit(v[5]) && v[6] == '.' && isDigit(v[7])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
