package marq

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase renders a file or directory name for display.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// FileInfo represents metadata about a document file.
type FileInfo struct {
	ID            string // Unique ID for the file, also its URL path
	Path          string // The file path relative to the data directory
	Title         string // Display name (may include the directory path)
	TitleBase     string // Display name without the directory path
	DirectoryPath string // The parent directory path, if any
	IsNavActive   bool   // True if the file should indicate active in navigation
	IsDocument    bool   // True if the file is in the documents/ directory
}

// RelativePath returns the file path relative to the documents/ directory
// if applicable.
func (f FileInfo) RelativePath() string {
	if f.IsDocument {
		return strings.TrimPrefix(f.Path, "documents/")
	}
	return f.Path
}

// PathParts returns the file path parts.
func (f FileInfo) PathParts() []string {
	return strings.Split(f.Path, "/")
}

func (f FileInfo) IsEmpty() bool {
	return f.ID == ""
}

type Breadcrumb struct {
	Path    string
	Name    string
	IsFirst bool
	IsLast  bool
}

// BreadcrumbParts returns the breadcrumb parts for a file's path.
func (f FileInfo) BreadcrumbParts() []Breadcrumb {
	parts := f.PathParts()
	var breadcrumbs []Breadcrumb
	for i, part := range parts {
		breadcrumbs = append(breadcrumbs, Breadcrumb{
			Path:    "/" + strings.Join(parts[:i+1], "/"),
			Name:    TitleCase(strings.TrimSuffix(part, ".md")),
			IsFirst: i == 0,
			IsLast:  i == len(parts)-1,
		})
	}

	return breadcrumbs
}
