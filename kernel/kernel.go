// Package kernel holds the matching kernel: the device program source
// asset, its host (goroutine-lane) implementation, and the Horspool
// bad-character machinery used by the host-side reference scanner.
//
// The host implementation and the program source must stay semantically
// identical; the tests pin both against independent oracles.
package kernel

import (
	"github.com/hupe1980/lanegrep/device"
	"github.com/hupe1980/lanegrep/grid"
)

func init() {
	device.RegisterKernel(EntryPoint, matchLanes)
}

// matchLanes is the host implementation of Match. It tests every starting
// offset in the lane's block and claims one collector slot per full match.
// It never reads past the bound lengths.
func matchLanes(lane int, g grid.Grid, b *device.Bindings) {
	lo, hi := g.LaneSpan(lane)
	for p := lo; p < hi; p++ {
		if matchAt(b.Text, b.Pattern, p, b.PatternLen) {
			b.Out.Claim(p)
		}
	}
}

// matchAt reports whether pattern[:n] occurs in text at offset p. The
// comparison runs right to left, aligned with the shift table's
// precomputation even though the brute-force path never consults it.
// The caller guarantees p+n <= len(text).
func matchAt(text, pattern []byte, p int64, n int) bool {
	for j := n - 1; j >= 0; j-- {
		if pattern[j] != text[p+int64(j)] {
			return false
		}
	}
	return true
}
