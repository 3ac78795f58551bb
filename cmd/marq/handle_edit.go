package main

import (
	"net/http"
	"strconv"
)

// cursorPos reads the caret byte offset from the request, clamped to the
// content bounds.
func cursorPos(r *http.Request, content string) int {
	pos, err := strconv.Atoi(r.URL.Query().Get("pos"))
	if err != nil || pos < 0 {
		return 0
	}
	if pos > len(content) {
		return len(content)
	}
	return pos
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
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

	data := PageData{
		Title:        "Edit - " + doc.Info.Title,
		CurrentFile:  doc.Info,
		RawContent:   content,
		IsEditing:    true,
		CursorPos:    cursorPos(r, content),
		NavMenuFiles: s.navigationMenu(doc.Info.ID),
		DocumentTree: s.fileRepo.DocumentsTree(),
	}

	if f := s.flashManager.Get(w, r); f != nil {
		data.FlashMessage = f.Message
		data.FlashMessageType = f.Type
	}

	if err := s.executePage(w, "edit.html", data); err != nil {
		s.showServerError(w, r, err)
	}
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	doc, err := s.fileRepo.GetDocument(r.PathValue("id"))
	if err != nil {
		s.showPageNotFound(w, r)
		return
	}

	content := r.FormValue("content")
	if err = doc.Save(content); err != nil {
		s.showServerError(w, r, err)
		return
	}

	// The stored render is stale now
	s.renderer.Refresh(doc.Info.ID)

	s.flashManager.SetSuccess(w, "File saved successfully")
	s.redirectTo(w, r, "/"+doc.Info.ID)
}
