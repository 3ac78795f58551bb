package marq

import "strings"

// NextDelimiter finds the next occurrence of the left delimiter at or after
// pos and returns the position immediately after it. The search is a
// case-sensitive literal search, not a full pattern match, so it can land
// inside a malformed passage whose right delimiter never appears. Returns
// (pos, false) when no occurrence follows, leaving the cursor unchanged.
func NextDelimiter(content, left string, pos int) (int, bool) {
	if left == "" || pos < 0 || pos > len(content) {
		return pos, false
	}

	idx := strings.Index(content[pos:], left)
	if idx < 0 {
		return pos, false
	}

	return pos + idx + len(left), true
}

// PrevDelimiter finds the closest occurrence of the left delimiter that
// ends at or before pos and returns its start position, so that repeated
// calls walk backward through the document. Returns (pos, false) when no
// occurrence precedes the cursor.
func PrevDelimiter(content, left string, pos int) (int, bool) {
	if left == "" || pos < 0 {
		return pos, false
	}

	end := pos
	if end > len(content) {
		end = len(content)
	}

	idx := strings.LastIndex(content[:end], left)
	if idx < 0 {
		return pos, false
	}

	return idx, true
}
