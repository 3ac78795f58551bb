package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/marqlabs/marq"
	mextension "github.com/marqlabs/marq/extension"
)

// MarkdownRenderer renders document content to sanitized HTML. Rendered
// pages are cached per document; Refresh evicts a document's cache entry so
// the next view re-renders immediately, which is how highlight rule changes
// take effect. MarkdownRenderer implements marq.Renderer.
//
// Marked passages are always consumed by the markedspan extension so their
// text never falls into markdown's raw HTML handling; the highlight rule
// only controls whether they are painted.
type MarkdownRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	base      *marq.Pattern
	mu        sync.Mutex
	cache     map[string]cacheEntry
}

type cacheEntry struct {
	source   string
	rule     *marq.Pattern
	rendered RenderedContent
}

// RenderedContent is the result of rendering one document.
type RenderedContent struct {
	Title        string         // The extracted title, if any.
	HTML         template.HTML  // The rendered HTML content.
	PassageCount int            // Number of passages highlighted in this render.
	Metadata     map[string]any // Metadata extracted from front matter.
}

// NewMarkdownRenderer creates a renderer for documents whose passages are
// delimited per base. The marked-passage extension triggers on the first
// byte of base's left delimiter.
func NewMarkdownRenderer(base *marq.Pattern) *MarkdownRenderer {
	trigger := byte('<')
	if base != nil && base.Left() != "" {
		trigger = base.Left()[0]
	}

	// Angle-quote substitution is disabled so un-highlighted passage
	// delimiters stay visible as typed.
	typographer := extension.NewTypographer(
		extension.WithTypographicSubstitutions(extension.TypographicSubstitutions{
			extension.LeftAngleQuote:  nil,
			extension.RightAngleQuote: nil,
		}),
	)

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Table,
			extension.Strikethrough,
			typographer,
			mextension.NewMarkedSpanExtension(trigger),
			meta.Meta,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // Allow raw HTML, but sanitize later
		),
	)

	sanitizer := bluemonday.UGCPolicy()
	sanitizer.AllowAttrs("class").OnElements("mark", "span")
	sanitizer.AllowAttrs("id").OnElements("mark")

	return &MarkdownRenderer{
		md:        md,
		sanitizer: sanitizer,
		base:      base,
		cache:     make(map[string]cacheEntry),
	}
}

// Render converts content to HTML, highlighting marked passages when rule
// is non-nil. Results are cached per document until Refresh or until the
// source content or rule changes.
func (mr *MarkdownRenderer) Render(docID, content string, rule *marq.Pattern) RenderedContent {
	mr.mu.Lock()
	if entry, ok := mr.cache[docID]; ok && entry.source == content && entry.rule.Equal(rule) {
		mr.mu.Unlock()
		return entry.rendered
	}
	mr.mu.Unlock()

	rendered := mr.render(content, rule)

	mr.mu.Lock()
	mr.cache[docID] = cacheEntry{source: content, rule: rule, rendered: rendered}
	mr.mu.Unlock()

	return rendered
}

// Refresh drops the cached render for a document, forcing the next view to
// recompute its styling.
func (mr *MarkdownRenderer) Refresh(docID string) {
	mr.mu.Lock()
	delete(mr.cache, docID)
	mr.mu.Unlock()
}

func (mr *MarkdownRenderer) render(content string, rule *marq.Pattern) RenderedContent {
	var buf bytes.Buffer
	ctx := parser.NewContext()

	// Passages are recognized with the base pattern even when no rule is
	// active, so toggling the highlight off leaves the text intact.
	pattern := rule
	if pattern == nil {
		pattern = mr.base
	}
	if pattern != nil {
		ctx.Set(mextension.PatternKey, pattern)
		ctx.Set(mextension.HighlightKey, rule != nil)
	}

	if err := mr.md.Convert([]byte(content), &buf, parser.WithContext(ctx)); err != nil {
		escaped := template.HTMLEscapeString(content)
		return RenderedContent{
			Title: extractTitle(content, nil),
			HTML:  template.HTML(fmt.Sprintf("<pre>%s</pre>", escaped)),
		}
	}

	sanitized := mr.sanitizer.Sanitize(buf.String())
	metadata := meta.Get(ctx)

	return RenderedContent{
		Title:        extractTitle(content, metadata),
		HTML:         template.HTML(sanitized),
		PassageCount: mextension.SpansCount(ctx),
		Metadata:     metadata,
	}
}

// extractTitle returns the first H1 heading, falling back to the
// frontmatter title.
func extractTitle(content string, metadata map[string]any) string {
	normalized := strings.ReplaceAll(strings.ReplaceAll(content, "\r\n", "\n"), "\r", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}

	if metaTitle, ok := metadata["title"].(string); ok {
		return metaTitle
	}
	return ""
}
