package marq

import "strings"

// MarkedSpan is one scanned passage occurrence. Spans are derived values,
// recomputed on every scan and never mutated; offsets are byte positions
// relative to the document start and line numbers are 1-based.
type MarkedSpan struct {
	RawText     string // full text including both delimiters
	InnerText   string // content between the delimiters
	StartOffset int
	EndOffset   int
	LineNumber  int
}

// Scan finds every marked passage in content, in document order. Matches
// are non-overlapping and leftmost-first: once a match is consumed,
// scanning resumes after its end offset, so a delimiter sequence inside a
// consumed raw text cannot start a second, overlapping match.
func (p *Pattern) Scan(content string) []MarkedSpan {
	locs := p.re.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]MarkedSpan, 0, len(locs))
	line := 1
	prev := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		line += strings.Count(content[prev:start], "\n")
		prev = start

		spans = append(spans, MarkedSpan{
			RawText:     content[start:end],
			InnerText:   content[loc[4]:loc[5]],
			StartOffset: start,
			EndOffset:   end,
			LineNumber:  line,
		})
	}

	return spans
}

// LineNumberAt returns the 1-based line number of the byte offset in
// content. Offsets past the end report the last line.
func LineNumberAt(content string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + strings.Count(content[:offset], "\n")
}
