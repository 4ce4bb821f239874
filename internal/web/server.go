package web

import (
	"fmt"
	"net/http"

	"github.com/taylorp5/dealwise/internal/extractor"
)

// Server exposes the extraction engine to a calling layer over HTTP. The
// caller fetches listing markup itself and posts it here; this server never
// fetches anything.
type Server struct {
	Engine *extractor.Engine
	Addr   string
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.Handler())
}

// Handler builds the route mux; split out so tests can drive it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/extract", s.handleExtract)
	mux.HandleFunc("/api/paste", s.handlePaste)
	return mux
}
