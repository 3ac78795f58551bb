package extension

import (
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/extension/ast"
)

// PatternKey carries the passage pattern for the document being rendered.
// The parser always consumes passages so their text survives markdown's raw
// HTML handling; HighlightKey decides whether they are painted or emitted
// as the plain text the author typed.
var PatternKey = parser.NewContextKey()

// HighlightKey carries the per-render highlight flag.
var HighlightKey = parser.NewContextKey()

// SpansCountKey tracks how many passages were highlighted during a render.
var SpansCountKey = parser.NewContextKey()

// SpansCount returns the number of passages highlighted in this render.
func SpansCount(pc parser.Context) int {
	if val := pc.Get(SpansCountKey); val != nil {
		if count, ok := val.(int); ok {
			return count
		}
	}
	return 0
}

type markedSpanParser struct {
	trigger byte
}

// NewMarkedSpanParser returns an InlineParser that consumes marked
// passages. The trigger must be the first byte of the configured left
// delimiter.
func NewMarkedSpanParser(trigger byte) parser.InlineParser {
	return &markedSpanParser{trigger: trigger}
}

func (s *markedSpanParser) Trigger() []byte {
	return []byte{s.trigger}
}

func (s *markedSpanParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	pattern, _ := pc.Get(PatternKey).(*marq.Pattern)
	if pattern == nil {
		return nil
	}

	line, _ := block.PeekLine()
	loc := pattern.FindSubmatchIndex(line)
	if loc == nil || loc[0] != 0 {
		return nil
	}

	highlight, _ := pc.Get(HighlightKey).(bool)

	spanID := 0
	if highlight {
		spanID = SpansCount(pc) + 1
		pc.Set(SpansCountKey, spanID)
	}

	left := template.HTMLEscapeString(string(line[loc[2]:loc[3]]))
	inner := template.HTMLEscapeString(string(line[loc[4]:loc[5]]))
	right := template.HTMLEscapeString(string(line[loc[6]:loc[7]]))

	block.Advance(loc[1])
	return ast.NewMarkedSpan(spanID, left, inner, right, highlight)
}

// MarkedSpanHTMLRenderer is a renderer.NodeRenderer implementation that
// renders marked passages as highlighted <mark> elements.
type MarkedSpanHTMLRenderer struct {
	html.Config
}

// NewMarkedSpanHTMLRenderer returns a new MarkedSpanHTMLRenderer.
func NewMarkedSpanHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &MarkedSpanHTMLRenderer{
		Config: html.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *MarkedSpanHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindMarkedSpan, r.renderMarkedSpan)
}

func (r *MarkedSpanHTMLRenderer) renderMarkedSpan(
	w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*ast.MarkedSpan)

	// An unhighlighted passage is exactly the text the author typed.
	if !n.Highlight {
		_, _ = w.WriteString(n.Left)
		_, _ = w.WriteString(n.Inner)
		_, _ = w.WriteString(n.Right)
		return gast.WalkContinue, nil
	}

	// All three capture groups are painted: delimiters and inner text.
	_, _ = w.WriteString(fmt.Sprintf(`<mark id="passage-%d" class="marked-passage">`, n.SpanID))
	_, _ = w.WriteString(fmt.Sprintf(`<span class="passage-delim">%s</span>`, n.Left))
	_, _ = w.WriteString(fmt.Sprintf(`<span class="passage-text">%s</span>`, n.Inner))
	_, _ = w.WriteString(fmt.Sprintf(`<span class="passage-delim">%s</span>`, n.Right))
	_, _ = w.WriteString(`</mark>`)

	return gast.WalkContinue, nil
}

type markedSpan struct {
	trigger byte
}

// NewMarkedSpanExtension creates a goldmark extension that recognizes
// marked passages via the pattern in the parser context, painting them only
// when the context's highlight flag is set. The trigger is the first byte
// of the configured left delimiter.
func NewMarkedSpanExtension(trigger byte) goldmark.Extender {
	return &markedSpan{trigger: trigger}
}

func (e *markedSpan) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(NewMarkedSpanParser(e.trigger), 0),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewMarkedSpanHTMLRenderer(), 500),
	))
}
