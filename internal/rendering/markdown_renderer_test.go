package rendering_test

import (
	"strings"
	"testing"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/assert"
	"github.com/marqlabs/marq/internal/rendering"
)

func defaultRule(t *testing.T) *marq.Pattern {
	t.Helper()

	rule, err := marq.CompilePattern("<<", ">>")
	assert.Nil(t, err)

	return rule
}

func TestMarkdownRenderer_Render(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))

	rendered := mr.Render("notes", "# Hello\n\nSome **bold** text.", nil)
	assert.Equal(t, rendered.Title, "Hello")
	assert.True(t, strings.Contains(string(rendered.HTML), "<strong>bold</strong>"))
	assert.Equal(t, rendered.PassageCount, 0)
}

func TestMarkdownRenderer_Highlighting(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))
	content := "# Doc\n\nplain <<marked one>> and <<marked two>>."

	// Without a rule the passages render as the plain text the author
	// typed, delimiters included.
	rendered := mr.Render("notes", content, nil)
	assert.Equal(t, rendered.PassageCount, 0)
	assert.False(t, strings.Contains(string(rendered.HTML), "<mark"))
	assert.True(t, strings.Contains(string(rendered.HTML), "&lt;&lt;marked one&gt;&gt;"))
	assert.True(t, strings.Contains(string(rendered.HTML), "&lt;&lt;marked two&gt;&gt;"))

	mr.Refresh("notes")

	rendered = mr.Render("notes", content, defaultRule(t))
	assert.Equal(t, rendered.PassageCount, 2)
	assert.True(t, strings.Contains(string(rendered.HTML), `class="marked-passage"`))
	assert.True(t, strings.Contains(string(rendered.HTML), "marked one"))
	assert.True(t, strings.Contains(string(rendered.HTML), "marked two"))
}

func TestMarkdownRenderer_PlainViewKeepsPassageText(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))

	// The initial, un-highlighted state must not lose passage text to
	// raw HTML stripping.
	rendered := mr.Render("notes", "plain <<marked one>> tail", nil)
	html := string(rendered.HTML)
	assert.True(t, strings.Contains(html, "marked one"))
	assert.True(t, strings.Contains(html, "&lt;&lt;marked one&gt;&gt;"))
	assert.True(t, strings.Contains(html, "plain"))
	assert.True(t, strings.Contains(html, "tail"))
	assert.False(t, strings.Contains(html, "<mark"))
}

func TestMarkdownRenderer_MultiLineDelimitersNotAPassage(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))

	// Delimiters split by a newline form no passage and paint nothing.
	rendered := mr.Render("notes", "para start <<foo\nbar>> para end", defaultRule(t))
	assert.Equal(t, rendered.PassageCount, 0)
	assert.False(t, strings.Contains(string(rendered.HTML), "<mark"))
}

func TestMarkdownRenderer_CacheAndRefresh(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))
	rule := defaultRule(t)
	content := "body <<passage>>"

	first := mr.Render("notes", content, rule)
	second := mr.Render("notes", content, rule)
	assert.Equal(t, string(first.HTML), string(second.HTML))

	// A rule change on the same content re-renders without highlighting.
	third := mr.Render("notes", content, nil)
	assert.Equal(t, third.PassageCount, 0)

	mr.Refresh("notes")
	fourth := mr.Render("notes", content, rule)
	assert.Equal(t, fourth.PassageCount, 1)
}

func TestMarkdownRenderer_SanitizesRawHTML(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))

	rendered := mr.Render("notes", "text <script>alert(1)</script> more", nil)
	assert.False(t, strings.Contains(string(rendered.HTML), "<script>"))
}

func TestMarkdownRenderer_FrontmatterTitle(t *testing.T) {
	mr := rendering.NewMarkdownRenderer(defaultRule(t))
	content := "---\ntitle: From Meta\ndescription: A test file\n---\n\nNo heading here."

	rendered := mr.Render("notes", content, nil)
	assert.Equal(t, rendered.Title, "From Meta")

	desc, ok := rendered.Metadata["description"].(string)
	assert.True(t, ok)
	assert.Equal(t, desc, "A test file")
}
