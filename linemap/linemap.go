// Package linemap translates match byte-offsets back into source lines for
// grep-style reporting. The newline index is a host-only structure, built
// once per search; the matching lanes never see it.
package linemap

import (
	"sort"
)

// Index maps byte offsets in a text to 1-based line numbers. Line starts
// are offset 0 plus one entry immediately after each newline byte, so they
// are strictly increasing and binary-searchable.
type Index struct {
	text   []byte
	starts []int64
}

// New builds the newline index for text in one sequential scan.
func New(text []byte) *Index {
	starts := make([]int64, 1, 64)
	for i, c := range text {
		if c == '\n' {
			starts = append(starts, int64(i)+1)
		}
	}
	return &Index{text: text, starts: starts}
}

// Resolve returns the 1-based line number containing the byte at pos and
// that line's text, excluding the trailing newline. pos must be a valid
// offset into the indexed text.
func (ix *Index) Resolve(pos int64) (line int, text []byte) {
	// Greatest line start <= pos.
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > pos
	}) - 1

	start := ix.starts[i]
	end := int64(len(ix.text))
	if i+1 < len(ix.starts) {
		end = ix.starts[i+1] - 1
	}

	return i + 1, ix.text[start:end]
}

// Lines returns the number of lines in the indexed text. A trailing
// newline opens a final empty line, matching the offsets Resolve reports.
func (ix *Index) Lines() int {
	return len(ix.starts)
}
