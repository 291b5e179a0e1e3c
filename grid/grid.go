// Package grid computes the lane geometry for one parallel search
// dispatch: how many independent lanes to launch and which candidate
// starting offsets each lane owns.
package grid

// Grid describes the geometry of a single kernel launch.
//
// The set of valid starting offsets for a pattern of length P in a text of
// length T is [0, T-P]. A Grid partitions that range so that every valid
// offset belongs to exactly one lane: lane i owns the half-open block
// [i*Stride, (i+1)*Stride), clipped to the valid range. With Stride == 1
// this degenerates to one offset per lane.
type Grid struct {
	// Lanes is the number of lanes to launch. Zero means the search is
	// trivially empty and no dispatch should occur.
	Lanes int

	// Stride is the number of consecutive offsets each lane scans. The
	// kernel must loop over the whole block; launching a strided grid
	// against a kernel that tests a single offset per lane would leave
	// most of the text unexamined.
	Stride int

	// MaxOffset is the largest valid starting offset, inclusive. Only
	// meaningful when Lanes > 0.
	MaxOffset int64
}

// Plan computes the launch geometry for searching a pattern of length
// patternLen in a text of length textLen, with stride offsets per lane.
// A stride below 1 is treated as 1.
//
// If the pattern is empty or longer than the text there is nothing to
// test and the returned grid has zero lanes.
func Plan(textLen, patternLen, stride int) Grid {
	if stride < 1 {
		stride = 1
	}
	if patternLen == 0 || textLen < patternLen {
		return Grid{Stride: stride}
	}

	valid := textLen - patternLen + 1
	lanes := (valid + stride - 1) / stride

	return Grid{
		Lanes:     lanes,
		Stride:    stride,
		MaxOffset: int64(valid - 1),
	}
}

// Empty reports whether the grid launches no lanes.
func (g Grid) Empty() bool {
	return g.Lanes == 0
}

// LaneSpan returns the half-open offset range [lo, hi) that lane owns,
// clipped to the valid offsets. For out-of-range lanes it returns an empty
// span.
func (g Grid) LaneSpan(lane int) (lo, hi int64) {
	if lane < 0 || lane >= g.Lanes {
		return 0, 0
	}
	lo = int64(lane) * int64(g.Stride)
	hi = lo + int64(g.Stride)
	if hi > g.MaxOffset+1 {
		hi = g.MaxOffset + 1
	}
	return lo, hi
}
