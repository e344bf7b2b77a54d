// Command httpserver is a small composition root demonstrating the
// servecore library: it wires a router with a literal route, a
// {variable}-capture route, and a trailing-wildcard route, then serves
// them over a plain TCP listener.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tallarm/servecore/internal/mux"
	"github.com/tallarm/servecore/internal/request"
	"github.com/tallarm/servecore/internal/response"
	"github.com/tallarm/servecore/internal/server"
)

const defaultPort = 42069
const maxRequestBytes = 1 << 20 // 1 MiB, a DoS-mitigating ceiling, not a protocol requirement.

func main() {
	port := flag.Int("port", defaultPort, "TCP port to listen on")
	flag.Parse()

	router := mux.NewRouter()
	router.Handle("/yourproblem", server.Handler(handler400))
	router.Handle("/myproblem", server.Handler(handler500))
	router.Handle("/users/{id}", server.Handler(handlerUser))
	router.Handle("/static/", server.Handler(handlerStatic))
	router.Handle("/", server.Handler(handler200))

	srv, err := server.Serve(*port, router, server.Handler(handler404), maxRequestBytes)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
	defer srv.Close()
	log.Println("server started on port", *port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("server gracefully stopped")
}

func handler400(w *response.Writer, _ *request.Request, _ mux.Params) {
	writeHTML(w, response.StatusBadRequest, "<h1>Bad Request</h1><p>Your request honestly kinda sucked.</p>")
}

func handler404(w *response.Writer, _ *request.Request, _ mux.Params) {
	writeHTML(w, response.StatusNotFound, "<h1>Not Found</h1><p>There's nothing here.</p>")
}

func handler500(w *response.Writer, _ *request.Request, _ mux.Params) {
	writeHTML(w, response.StatusInternalServerError, "<h1>Internal Server Error</h1><p>Okay, you know what? This one is on me.</p>")
}

func handler200(w *response.Writer, _ *request.Request, _ mux.Params) {
	writeHTML(w, response.StatusOK, "<h1>Success!</h1><p>Your request was an absolute banger.</p>")
}

// handlerUser demonstrates a {id} variable route: it echoes the captured
// REST parameter back in the body.
func handlerUser(w *response.Writer, _ *request.Request, params mux.Params) {
	id, _ := params.Get("id")
	writeHTML(w, response.StatusOK, fmt.Sprintf("<h1>User %s</h1>", id))
}

// handlerStatic demonstrates a trailing-wildcard route: it echoes the full
// request path, including the "/static" prefix and whatever trailing
// segments the wildcard absorbed.
func handlerStatic(w *response.Writer, req *request.Request, _ mux.Params) {
	writeHTML(w, response.StatusOK, fmt.Sprintf("<h1>Static asset</h1><p>%s</p>", req.URL.Path))
}

func writeHTML(w *response.Writer, code response.StatusCode, body string) {
	b := []byte(body)
	w.WriteStatusLine(code)
	h := response.GetDefaultHeaders(len(b))
	h.Override("Content-Type", "text/html")
	w.WriteHeaders(h)
	w.WriteBody(b)
}
