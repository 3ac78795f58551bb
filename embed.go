package marq

import "embed"

// TemplateFS holds the HTML templates for the web UI.
//
//go:embed templates
var TemplateFS embed.FS

// StaticFS holds static assets (stylesheets, scripts).
//
//go:embed static
var StaticFS embed.FS
