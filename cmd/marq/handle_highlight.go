package main

import "net/http"

func (s *Server) handleHighlightToggle(w http.ResponseWriter, r *http.Request) {
	doc, err := s.fileRepo.GetDocument(r.PathValue("id"))
	if err != nil {
		s.showPageNotFound(w, r)
		return
	}

	pattern, err := s.config.Pattern()
	if err != nil {
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/"+doc.Info.ID)
		return
	}

	if s.highlighter.Toggle(doc.Info.ID, pattern) {
		s.flashManager.SetInfo(w, "Passage highlighting on")
	} else {
		s.flashManager.SetInfo(w, "Passage highlighting off")
	}

	s.redirectTo(w, r, "/"+doc.Info.ID)
}
