package main

import (
	"fmt"
	"net/http"
)

// handleNavigate moves the edit-view cursor to the next or previous left
// delimiter occurrence. When no occurrence exists in the search direction,
// the cursor stays where it is and a notice is flashed.
func (s *Server) handleNavigate(move func(content, left string, pos int) (int, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.fileRepo.GetDocument(r.PathValue("id"))
		if err != nil {
			s.showPageNotFound(w, r)
			return
		}

		content, err := doc.Content()
		if err != nil {
			s.showServerError(w, r, err)
			return
		}

		pos := cursorPos(r, content)
		newPos, found := move(content, s.config.DelimiterLeft, pos)
		if !found {
			s.flashManager.SetInfo(w, "No more passages in this direction")
		}

		s.redirectTo(w, r, fmt.Sprintf("/edit/%s?pos=%d", doc.Info.ID, newPos))
	}
}
