// Package response serializes outgoing HTTP/1.1 responses: the status
// line, headers, and a body (plain or chunked). It is the connection
// layer's counterpart to internal/request: where request.Parser reads
// bytes in, response.Writer writes bytes out, including the 100 Continue
// interim line a StatusExpectContinue from the parser requires.
package response

import (
	"fmt"
	"io"

	"github.com/tallarm/servecore/internal/headers"
)

// StatusCode is an HTTP response status code.
type StatusCode int

const (
	StatusContinue            StatusCode = 100
	StatusOK                  StatusCode = 200
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusPayloadTooLarge     StatusCode = 413
	StatusInternalServerError StatusCode = 500
)

var reasonPhrases = map[StatusCode]string{
	StatusContinue:            "100 Continue",
	StatusOK:                  "200 OK",
	StatusBadRequest:          "400 Bad Request",
	StatusNotFound:            "404 Not Found",
	StatusPayloadTooLarge:     "413 Payload Too Large",
	StatusInternalServerError: "500 Internal Server Error",
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n" to w, translating
// statusCode to a human-readable reason phrase. An unrecognized code falls
// back to writing the bare number.
func WriteStatusLine(w io.Writer, statusCode StatusCode) error {
	reasonPhrase, ok := reasonPhrases[statusCode]
	if !ok {
		reasonPhrase = fmt.Sprintf("%d", statusCode)
	}
	_, err := fmt.Fprintf(w, "HTTP/1.1 %s\r\n", reasonPhrase)
	return err
}

// GetDefaultHeaders returns a headers map suitable as the starting point
// for a response with a static body of contentLen bytes: Content-Length
// set to it, Connection: close, and Content-Type: text/plain. Callers
// override Content-Type for anything else.
func GetDefaultHeaders(contentLen int) headers.Headers {
	h := headers.NewHeaders()
	h.Set("Content-Length", fmt.Sprintf("%d", contentLen))
	h.Set("Connection", "close")
	h.Set("Content-Type", "text/plain")
	return h
}

// WriteHeaders writes each key/value pair in hdrs as "key: value\r\n",
// followed by a blank line terminating the header section. Keys are written
// as hdrs stores them, which is lowercased.
func WriteHeaders(w io.Writer, hdrs headers.Headers) error {
	for key, value := range hdrs {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", key, value); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}

// WriteContinue writes the bare "100 Continue" interim response: a status
// line and the blank line that terminates its (empty) header section. The
// connection layer calls this when request.Parser reports
// StatusExpectContinue, before reading any more bytes from the client.
func WriteContinue(w io.Writer) error {
	if err := WriteStatusLine(w, StatusContinue); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}
