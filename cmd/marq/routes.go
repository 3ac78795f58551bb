package main

import (
	"net/http"

	"github.com/marqlabs/marq"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	fileServer := http.FileServer(http.FS(marq.StaticFS))
	mux.Handle("GET /static/", fileServer)

	// Highlight toggle
	mux.HandleFunc("POST /highlight/{id...}", s.handleHighlightToggle)

	// Delimiter navigation
	mux.HandleFunc("GET /navigate/next/{id...}", s.handleNavigate(marq.NextDelimiter))
	mux.HandleFunc("GET /navigate/prev/{id...}", s.handleNavigate(marq.PrevDelimiter))

	// Search at point
	mux.HandleFunc("GET /lookup/{id...}", s.handleLookupChooser)
	mux.HandleFunc("POST /lookup/{id...}", s.handleLookupDispatch)

	// Passage reports
	mux.HandleFunc("GET /reports", s.handleReportIndex)
	mux.HandleFunc("GET /reports/view/{report}", s.handleReportView)
	mux.HandleFunc("GET /reports/view/{report}/visit", s.handleReportVisit)
	mux.HandleFunc("GET /reports/view/{report}/search", s.handleReportSearch)
	mux.HandleFunc("POST /reports/{id...}", s.handleReportBuild)

	// Content
	mux.HandleFunc("GET /edit/{id...}", s.handleEdit)
	mux.HandleFunc("POST /{id...}", s.handleSave)

	// Handles page views and root
	mux.HandleFunc("GET /{id...}", s.handleView)

	return mux
}
