// Package server accepts TCP connections and drives internal/request's
// incremental parser and internal/mux's router over each one. It is
// conventional accept-loop-plus-goroutine-per-connection glue; the
// interesting work happens in request.Parser and mux.Router.
package server

import (
	"fmt"
	"io"
	"log"
	"net"
	"sync/atomic"

	"github.com/tallarm/servecore/internal/mux"
	"github.com/tallarm/servecore/internal/request"
	"github.com/tallarm/servecore/internal/response"
)

// Handler serves one fully parsed request. params holds any REST
// parameters the matched route extracted.
type Handler func(w *response.Writer, req *request.Request, params mux.Params)

// Server accepts connections on a TCP listener and dispatches each
// completed request through a Router.
type Server struct {
	listener        net.Listener
	closed          atomic.Bool
	router          *mux.Router
	notFound        Handler
	maxRequestBytes int
}

const defaultReadBufferSize = 4096

// Serve starts a Server listening on port, dispatching through router. It
// returns immediately; connections are accepted and handled in background
// goroutines. maxRequestBytes <= 0 means unlimited.
func Serve(port int, router *mux.Router, notFound Handler, maxRequestBytes int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener:        listener,
		router:          router,
		notFound:        notFound,
		maxRequestBytes: maxRequestBytes,
	}
	go s.listen()
	return s, nil
}

// listen is the accept loop: it runs until the listener is closed.
func (s *Server) listen() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return
			}
			log.Printf("server: error accepting connection: %v", err)
			continue
		}
		go s.handle(conn)
	}
}

// Addr returns the address the server is listening on, useful for tests
// that start a Server on port 0 and need to dial it back.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close marks the server closed and closes the underlying listener. It is
// idempotent.
func (s *Server) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		return s.listener.Close()
	}
	return nil
}

// handle reads one request off conn, feeding bytes to a fresh
// request.Parser as they arrive, then dispatches it through the router.
// One connection serves exactly one request; surplus bytes after
// completion are never read.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	req := &request.Request{}
	parser := request.NewBoundedParser(req, s.maxRequestBytes)

	buf := make([]byte, defaultReadBufferSize)
	status := parser.Status()
	for !status.Terminal() {
		n, err := conn.Read(buf)
		if n > 0 {
			status = parser.Parse(buf[:n])
		}
		if status == request.StatusExpectContinue {
			if werr := response.WriteContinue(conn); werr != nil {
				return
			}
			continue
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Printf("server: error reading connection: %v", err)
			return
		}
	}

	switch status {
	case request.StatusError:
		writeSimple(conn, response.StatusBadRequest, "malformed request")
		return
	case request.StatusRejectedRequestSize:
		writeSimple(conn, response.StatusPayloadTooLarge, "request too large")
		return
	case request.StatusFinished:
		// fall through to dispatch
	default:
		writeSimple(conn, response.StatusBadRequest, "incomplete request")
		return
	}

	handler, params, ok := s.router.Match(req.URL.Path)
	req.Params = params
	if !ok {
		if s.notFound != nil {
			s.notFound(response.NewWriter(conn), req, nil)
			return
		}
		writeSimple(conn, response.StatusNotFound, "not found")
		return
	}
	h, ok := handler.(Handler)
	if !ok {
		writeSimple(conn, response.StatusInternalServerError, "misconfigured route")
		return
	}
	h(response.NewWriter(conn), req, params)
}

// writeSimple writes a minimal plain-text response for connection-layer
// failures that never reach a registered Handler.
func writeSimple(w io.Writer, code response.StatusCode, message string) {
	body := []byte(message)
	response.WriteStatusLine(w, code)
	response.WriteHeaders(w, response.GetDefaultHeaders(len(body)))
	w.Write(body)
}
