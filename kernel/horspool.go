package kernel

// ShiftTable is a Horspool bad-character table: for each byte value, the
// distance the search window may safely advance after inspecting the
// window's last text byte. Bytes absent from the pattern (or occurring
// only at its last position) shift by the full pattern length.
type ShiftTable [256]int

// NewShiftTable precomputes the shift table for pattern. An empty pattern
// yields an all-zero table, which no scanner should consult.
func NewShiftTable(pattern []byte) ShiftTable {
	var t ShiftTable
	n := len(pattern)
	for i := range t {
		t[i] = n
	}
	for i := 0; i < n-1; i++ {
		t[pattern[i]] = n - 1 - i
	}
	return t
}

// Scan finds every occurrence of pattern in text using the Horspool skip
// scanner and returns the match offsets in ascending order. It is the
// sequential host-side counterpart to the parallel kernel and doubles as
// the oracle its tests compare against.
func Scan(text, pattern []byte) []int64 {
	n := len(pattern)
	if n == 0 || len(text) < n {
		return nil
	}

	t := NewShiftTable(pattern)

	var out []int64
	for p := 0; p+n <= len(text); {
		j := n - 1
		for j >= 0 && pattern[j] == text[p+j] {
			j--
		}
		if j < 0 {
			out = append(out, int64(p))
		}
		p += t[text[p+n-1]]
	}
	return out
}
