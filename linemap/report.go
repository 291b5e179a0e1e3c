package linemap

import (
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
)

// Report is the renderable outcome of one completed search.
//
// Positions are in slot-claim order, which is not offset order; rendering
// preserves it rather than re-sorting.
type Report struct {
	Filename string
	Pattern  string

	// Positions are the retained match offsets, at most Capacity of them.
	Positions []int64

	// Total is the true match count, which exceeds len(Positions) when
	// the result buffer overflowed.
	Total int64

	// Capacity is the result buffer size, quoted in the overflow warning.
	Capacity int
}

// Truncated reports whether matches were dropped for lack of buffer space.
func (r Report) Truncated() bool {
	return r.Total > int64(len(r.Positions))
}

// MatchedLines returns the set of 1-based line numbers containing at least
// one retained match.
func (r Report) MatchedLines(ix *Index) *roaring.Bitmap {
	lines := roaring.New()
	for _, pos := range r.Positions {
		line, _ := ix.Resolve(pos)
		lines.Add(uint32(line))
	}
	return lines
}

// Render writes the summary line and one record per retained match to out.
// If matches were dropped, a warning naming the true count and the cap is
// written to errOut first.
//
// Output format, per match:
//
//	<filename>:<line>:\t<line text>
func (r Report) Render(out, errOut io.Writer, ix *Index) error {
	if r.Truncated() {
		fmt.Fprintf(errOut, "Warning: Found %d matches but only %d can be stored\n", r.Total, r.Capacity)
	}

	if _, err := fmt.Fprintf(out, "Found %d matches for '%s' in file '%s'\n", r.Total, r.Pattern, r.Filename); err != nil {
		return err
	}

	for _, pos := range r.Positions {
		line, text := ix.Resolve(pos)
		if _, err := fmt.Fprintf(out, "%s:%d:\t%s\n", r.Filename, line, text); err != nil {
			return err
		}
	}
	return nil
}
