package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marqlabs/marq"
)

// capturingOpener records the URL a dispatch would open so the handler can
// answer the triggering request with a redirect to it.
type capturingOpener struct {
	url string
}

func (o *capturingOpener) OpenURL(url string) error {
	o.url = url
	return nil
}

// handleLookupChooser extracts the passage enclosing the cursor and shows
// the engine chooser for it.
func (s *Server) handleLookupChooser(w http.ResponseWriter, r *http.Request) {
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

	pattern, err := s.config.Pattern()
	if err != nil {
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/"+doc.Info.ID)
		return
	}

	pos := cursorPos(r, content)
	inner, found := pattern.ExtractAt(content, pos)
	if !found {
		s.flashManager.SetInfo(w, "No marked passage at the cursor")
		s.redirectTo(w, r, fmt.Sprintf("/edit/%s?pos=%d", doc.Info.ID, pos))
		return
	}

	data := PageData{
		Title:        "Search - " + doc.Info.Title,
		CurrentFile:  doc.Info,
		Query:        inner,
		Engines:      s.registry.Names(),
		NavMenuFiles: s.navigationMenu(doc.Info.ID),
	}

	if err := s.executePage(w, "search.html", data); err != nil {
		s.showServerError(w, r, err)
	}
}

// handleLookupDispatch sends the chosen engine's URL for the query back as
// a redirect. A dismissed chooser or empty query flashes the failure and
// opens nothing.
func (s *Server) handleLookupDispatch(w http.ResponseWriter, r *http.Request) {
	doc, err := s.fileRepo.GetDocument(r.PathValue("id"))
	if err != nil {
		s.showPageNotFound(w, r)
		return
	}

	opener := &capturingOpener{}
	dispatcher := marq.NewDispatcher(s.registry, opener)

	err = dispatcher.Search(r.FormValue("q"), r.FormValue("engine"))
	switch {
	case errors.Is(err, marq.ErrNoQuery), errors.Is(err, marq.ErrNoEngineSelected):
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/"+doc.Info.ID)
		return
	case err != nil:
		s.showServerError(w, r, err)
		return
	}

	s.redirectTo(w, r, opener.url)
}
