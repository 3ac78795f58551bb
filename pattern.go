package marq

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern matches marked passages for one delimiter pair. The compiled
// expression has three capture groups: left delimiter, inner content, right
// delimiter. Inner content excludes the right delimiter's first character,
// so a single match can never run across two adjacent passages, and
// excludes newlines, so a passage is always contained on one line and the
// scanner, extractor, and rendered highlight all agree on what a passage is.
//
// Only the first character of the right delimiter is excluded, even when the
// delimiter is longer. For the default ">>" this means inner content cannot
// contain a lone '>' either; that matches the historical behavior and is
// kept as-is.
type Pattern struct {
	re    *regexp.Regexp
	left  string
	right string
}

// CompilePattern builds the passage pattern for the given delimiter pair.
// Both delimiters are treated as opaque literals; characters that are
// special in regular expressions are escaped before composition.
func CompilePattern(left, right string) (*Pattern, error) {
	if left == "" {
		return nil, &ConfigurationError{Field: "delimiter_left", Reason: "must not be empty"}
	}
	if right == "" {
		return nil, &ConfigurationError{Field: "delimiter_right", Reason: "must not be empty"}
	}

	stop := []rune(right)[0]
	expr := fmt.Sprintf("(%s)([^%s\n]*?)(%s)",
		regexp.QuoteMeta(left),
		regexp.QuoteMeta(string(stop)),
		regexp.QuoteMeta(right))

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile passage pattern: %w", err)
	}

	return &Pattern{re: re, left: left, right: right}, nil
}

// Left returns the left delimiter this pattern was compiled from.
func (p *Pattern) Left() string { return p.left }

// Right returns the right delimiter this pattern was compiled from.
func (p *Pattern) Right() string { return p.right }

// Equal reports whether two patterns were compiled from the same delimiters.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.left == other.left && p.right == other.right
}

// FindSubmatchIndex returns the match and group index pairs of the first
// passage in b, or nil if none. Index layout follows regexp: pairs 1-3 are
// the left delimiter, inner content, and right delimiter groups.
func (p *Pattern) FindSubmatchIndex(b []byte) []int {
	return p.re.FindSubmatchIndex(b)
}

// ExtractAt returns the inner text of the passage enclosing the cursor
// position, or ("", false) if the cursor is not inside a terminated passage.
//
// The algorithm searches backward from pos for the left delimiter, then
// scans forward with the full pattern starting one character before the
// occurrence. Stepping back first guarantees the forward match can start at
// or before the passage opening even when the backward search landed on the
// delimiter's last character.
func (p *Pattern) ExtractAt(content string, pos int) (string, bool) {
	if pos < 0 || pos > len(content) {
		return "", false
	}

	open := strings.LastIndex(content[:pos], p.left)
	if open < 0 {
		return "", false
	}

	from := open - 1
	if from < 0 {
		from = 0
	}

	loc := p.re.FindStringSubmatchIndex(content[from:])
	if loc == nil {
		return "", false
	}

	start, end := from+loc[0], from+loc[1]
	if pos < start || pos >= end {
		return "", false
	}

	return content[from+loc[4] : from+loc[5]], true
}
