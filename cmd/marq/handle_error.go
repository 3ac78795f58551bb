package main

import "net/http"

// redirectTo sends a standard 302 redirect.
func (s *Server) redirectTo(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

// showPageNotFound shows a 404 page.
func (s *Server) showPageNotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := s.executePage(w, "404.html", PageData{
		Title:        "Page Not Found",
		NavMenuFiles: s.navigationMenu(""),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// showServerError shows a 500 page response.
func (s *Server) showServerError(w http.ResponseWriter, _ *http.Request, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	if err := s.executePage(w, "500.html", PageData{
		Title:        "Server Error",
		NavMenuFiles: s.navigationMenu(""),
		ErrorMessage: err.Error(),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
