// Package server is the HTTP surface of the metrics exporter:
// a liveness endpoint and a Prometheus registry handler.
package server

import (
	"net/http"
	"time"
)

// HTTPServer serves health and metrics.
type HTTPServer struct {
	Server *http.Server
}

func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{Server: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

func (s *HTTPServer) ListenAndServe() error {
	return s.Server.ListenAndServe()
}
