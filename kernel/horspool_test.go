package kernel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShiftTable(t *testing.T) {
	tbl := NewShiftTable([]byte("needle"))

	// Bytes absent from the pattern shift the full pattern length.
	assert.Equal(t, 6, tbl['x'])

	// Interior bytes shift by distance from the last position.
	assert.Equal(t, 5, tbl['n'])
	assert.Equal(t, 1, tbl['l'])

	assert.Equal(t, 2, tbl['d'])

	// The last byte only counts if it also occurs earlier: 'e' does, so
	// its shift comes from its rightmost interior occurrence (index 2).
	assert.Equal(t, 3, tbl['e'])
}

func TestNewShiftTableLastByteUnique(t *testing.T) {
	tbl := NewShiftTable([]byte("ab"))

	assert.Equal(t, 1, tbl['a'])
	assert.Equal(t, 2, tbl['b'], "a byte occurring only at the last position keeps the default shift")
}

func TestScanFindsOverlappingMatches(t *testing.T) {
	assert.Equal(t, []int64{0, 1, 2}, Scan([]byte("aaaa"), []byte("aa")))
	assert.Equal(t, []int64{0, 2}, Scan([]byte("ababa"), []byte("aba")))
}

func TestScanEdgeCases(t *testing.T) {
	assert.Nil(t, Scan(nil, []byte("a")))
	assert.Nil(t, Scan([]byte("abc"), nil))
	assert.Nil(t, Scan([]byte("ab"), []byte("abcd")))
	assert.Equal(t, []int64{0}, Scan([]byte("abc"), []byte("abc")))
}

func TestScanAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []byte("abz\n\x07\xff")

	for i := 0; i < 500; i++ {
		text := make([]byte, rng.Intn(300))
		for j := range text {
			text[j] = alphabet[rng.Intn(len(alphabet))]
		}
		pattern := make([]byte, 1+rng.Intn(8))
		for j := range pattern {
			pattern[j] = alphabet[rng.Intn(len(alphabet))]
		}

		require.Equal(t, naiveFindAll(text, pattern), Scan(text, pattern),
			"text=%q pattern=%q", text, pattern)
	}
}
