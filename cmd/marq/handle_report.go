package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/marqlabs/marq"
)

// handleReportBuild scans a document and materializes a passage report.
// Zero passages is not an error; it flashes a "none found" notice and
// creates no report.
func (s *Server) handleReportBuild(w http.ResponseWriter, r *http.Request) {
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

	report, err := s.reportBuilder.Build(doc.Info.ID, content, s.config)
	if err != nil {
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/"+doc.Info.ID)
		return
	}

	if report == nil {
		s.flashManager.SetInfo(w, "No marked passages found")
		s.redirectTo(w, r, "/"+doc.Info.ID)
		return
	}

	s.redirectTo(w, r, "/reports/view/"+report.ID)
}

// handleReportIndex lists the reports built in this session, newest first.
func (s *Server) handleReportIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:        "Reports",
		Reports:      s.reports.All(),
		NavMenuFiles: s.navigationMenu(""),
	}

	if f := s.flashManager.Get(w, r); f != nil {
		data.FlashMessage = f.Message
		data.FlashMessageType = f.Type
	}

	if err := s.executePage(w, "reports.html", data); err != nil {
		s.showServerError(w, r, err)
	}
}

// handleReportView renders one report listing: a header row plus one line
// per entry. Back-reference metadata stays in the stored report, keyed by
// entry index; the visible text is never parsed back.
func (s *Server) handleReportView(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Get(r.PathValue("report"))
	if !ok {
		s.showPageNotFound(w, r)
		return
	}

	data := PageData{
		Title:        "Passage Report",
		Report:       report,
		NavMenuFiles: s.navigationMenu(""),
	}

	if f := s.flashManager.Get(w, r); f != nil {
		data.FlashMessage = f.Message
		data.FlashMessageType = f.Type
	}

	if err := s.executePage(w, "report.html", data); err != nil {
		s.showServerError(w, r, err)
	}
}

// entryIndex parses the listing line index from the request. Lines without
// metadata, such as the header row, carry no index and fail with ErrNoEntry.
func entryIndex(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("line")
	if raw == "" {
		return 0, marq.ErrNoEntry
	}

	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, marq.ErrNoEntry
	}
	return index, nil
}

// handleReportVisit jumps to the recorded source location of a listed
// entry. Entries are point-in-time snapshots: after a source edit the
// offset may point at unrelated content, and that is accepted.
func (s *Server) handleReportVisit(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Get(r.PathValue("report"))
	if !ok {
		s.showPageNotFound(w, r)
		return
	}

	var entry marq.ReportEntry
	index, err := entryIndex(r)
	if err == nil {
		entry, err = report.Entry(index)
	}
	if err != nil {
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/reports/view/"+report.ID)
		return
	}

	s.redirectTo(w, r, fmt.Sprintf("/edit/%s?pos=%d", entry.SourceDocumentID, entry.SourceOffset))
}

// handleReportSearch re-runs the search dispatch for a listed entry with
// the default engine, recovering the inner text from the entry's raw text
// and the delimiters recorded at build time.
func (s *Server) handleReportSearch(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Get(r.PathValue("report"))
	if !ok {
		s.showPageNotFound(w, r)
		return
	}

	var inner string
	index, err := entryIndex(r)
	if err == nil {
		inner, err = report.InnerText(index)
	}
	if err != nil {
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/reports/view/"+report.ID)
		return
	}

	opener := &capturingOpener{}
	dispatcher := marq.NewDispatcher(s.registry, opener)

	err = dispatcher.SearchDefault(inner)
	switch {
	case errors.Is(err, marq.ErrNoQuery), errors.Is(err, marq.ErrNoEngineSelected):
		s.flashManager.SetError(w, err.Error())
		s.redirectTo(w, r, "/reports/view/"+report.ID)
		return
	case err != nil:
		s.showServerError(w, r, err)
		return
	}

	s.redirectTo(w, r, opener.url)
}
