package main

import "net/http"

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		id = "notes"
	}

	doc, err := s.fileRepo.GetDocument(id)
	if err != nil {
		s.showPageNotFound(w, r)
		return
	}

	content, err := doc.Content()
	if err != nil {
		s.showServerError(w, r, err)
		return
	}

	active, rule := s.highlighter.State(doc.Info.ID)
	rendered := s.renderer.Render(doc.Info.ID, content, rule)

	title := rendered.Title
	if title == "" {
		title = doc.Info.TitleBase
	}

	data := PageData{
		Title:        title,
		CurrentFile:  doc.Info,
		Content:      rendered.HTML,
		HighlightOn:  active,
		PassageCount: rendered.PassageCount,
		NavMenuFiles: s.navigationMenu(doc.Info.ID),
		DocumentTree: s.fileRepo.DocumentsTree(),
	}

	if desc, ok := rendered.Metadata["description"].(string); ok {
		data.Description = desc
	}

	if f := s.flashManager.Get(w, r); f != nil {
		data.FlashMessage = f.Message
		data.FlashMessageType = f.Type
	}

	if err := s.executePage(w, "view.html", data); err != nil {
		s.showServerError(w, r, err)
	}
}
