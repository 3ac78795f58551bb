package ast

import (
	gast "github.com/yuin/goldmark/ast"
)

// A MarkedSpan struct represents one marked passage. The three string
// fields mirror the pattern's capture groups; all are HTML-escaped before
// construction. Highlight reports whether the passage is painted or
// rendered as the plain text the author typed.
type MarkedSpan struct {
	gast.BaseInline
	SpanID    int
	Left      string
	Inner     string
	Right     string
	Highlight bool
}

// Dump implements Node.Dump.
func (n *MarkedSpan) Dump(source []byte, level int) {
	m := map[string]string{
		"Inner": n.Inner,
	}
	gast.DumpHelper(n, source, level, m, nil)
}

// KindMarkedSpan is a NodeKind of the MarkedSpan node.
var KindMarkedSpan = gast.NewNodeKind("MarkedSpan")

// Kind implements Node.Kind.
func (n *MarkedSpan) Kind() gast.NodeKind {
	return KindMarkedSpan
}

// NewMarkedSpan returns a new MarkedSpan node.
func NewMarkedSpan(spanID int, left, inner, right string, highlight bool) *MarkedSpan {
	return &MarkedSpan{
		SpanID:    spanID,
		Left:      left,
		Inner:     inner,
		Right:     right,
		Highlight: highlight,
	}
}
