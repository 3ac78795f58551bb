package main

import (
	"html/template"

	"github.com/marqlabs/marq"
)

// PageData holds data passed to templates for rendering
type PageData struct {
	Title            string // Page title - an H1 (#) if present, else a metadata title, else the file name
	Description      string // Description from metadata
	CurrentFile      marq.FileInfo
	Content          template.HTML
	RawContent       string
	IsEditing        bool
	CursorPos        int  // Caret byte offset in the edit view
	HighlightOn      bool // Whether the highlight layer is active for the current file
	PassageCount     int  // Number of passages highlighted in the current render
	Query            string
	Engines          []string // Engine chooser labels, in registry order
	Report           *marq.Report
	Reports          []*marq.Report
	NavMenuFiles     []marq.FileInfo
	DocumentTree     *marq.DirectoryNode
	FlashMessage     string
	FlashMessageType string
	ErrorMessage     string
}
