package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallarm/servecore/internal/mux"
	"github.com/tallarm/servecore/internal/request"
	"github.com/tallarm/servecore/internal/response"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	router := mux.NewRouter()
	router.Handle("/users/{id}", Handler(func(w *response.Writer, _ *request.Request, params mux.Params) {
		id, _ := params.Get("id")
		body := []byte("user:" + id)
		w.WriteStatusLine(response.StatusOK)
		w.WriteHeaders(response.GetDefaultHeaders(len(body)))
		w.WriteBody(body)
	}))
	router.Handle("/echo", Handler(func(w *response.Writer, req *request.Request, _ mux.Params) {
		w.WriteStatusLine(response.StatusOK)
		w.WriteHeaders(response.GetDefaultHeaders(len(req.Body)))
		w.WriteBody(req.Body)
	}))

	notFound := Handler(func(w *response.Writer, _ *request.Request, _ mux.Params) {
		body := []byte("nope")
		w.WriteStatusLine(response.StatusNotFound)
		w.WriteHeaders(response.GetDefaultHeaders(len(body)))
		w.WriteBody(body)
	})

	srv, err := Serve(0, router, notFound, 0)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestServerRoutesVariableSegment(t *testing.T) {
	srv := newTestServer(t)

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET /users/42 HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	statusLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", statusLine)
}

func TestServerNotFound(t *testing.T) {
	srv := newTestServer(t)

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET /nowhere HTTP/1.1\r\nHost: x\r\n\r\n"))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	statusLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n", statusLine)
}

func TestServerExpectContinueHandshake(t *testing.T) {
	srv := newTestServer(t)

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
	require.NoError(t, err)
	defer conn.Close()

	header := "POST /echo HTTP/1.1\r\n" +
		"Host: x\r\n" +
		"Content-Type: text/plain\r\n" +
		"Expect: 100-continue\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n"
	_, err = conn.Write([]byte(header))
	require.NoError(t, err)

	reader := bufio.NewReader(conn)
	interim, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 100 Continue\r\n", interim)
	blank, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "\r\n", blank)

	_, err = conn.Write([]byte("howdy"))
	require.NoError(t, err)

	statusLine, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", statusLine)
}
