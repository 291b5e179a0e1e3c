package collector

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimRetainsPositions(t *testing.T) {
	c := New(4)
	c.Claim(7)
	c.Claim(3)

	assert.Equal(t, int64(2), c.Total())
	assert.False(t, c.Truncated())
	assert.ElementsMatch(t, []int64{7, 3}, c.Positions())
	assert.Equal(t, 4, c.Capacity())
}

func TestOverflowCountsButDrops(t *testing.T) {
	c := New(3)
	for i := 0; i < 10; i++ {
		c.Claim(int64(i))
	}

	assert.Equal(t, int64(10), c.Total())
	assert.True(t, c.Truncated())

	got := c.Positions()
	require.Len(t, got, 3)
	// Sequential claims fill slots in claim order.
	assert.Equal(t, []int64{0, 1, 2}, got)
}

func TestZeroCapacityOnlyCounts(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		c := New(capacity)
		c.Claim(1)
		c.Claim(2)

		assert.Equal(t, int64(2), c.Total())
		assert.Empty(t, c.Positions())
		assert.Equal(t, 0, c.Capacity())
	}
}

func TestReset(t *testing.T) {
	c := New(2)
	c.Claim(1)
	c.Reset()

	assert.Equal(t, int64(0), c.Total())
	assert.Empty(t, c.Positions())
}

// TestConcurrentClaimsAreExclusive hammers Claim from many goroutines and
// verifies that no two claims landed in the same slot: with capacity equal
// to the claim count, the retained positions must be exactly the claimed
// set, each present once.
func TestConcurrentClaimsAreExclusive(t *testing.T) {
	const (
		goroutines = 32
		perG       = 128
		total      = goroutines * perG
	)

	c := New(total)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				c.Claim(int64(g*perG + i))
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, int64(total), c.Total())

	got := append([]int64(nil), c.Positions()...)
	require.Len(t, got, total)

	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i, pos := range got {
		require.Equal(t, int64(i), pos, "slot contents must be a permutation of the claimed positions")
	}
}

// TestConcurrentOverflow verifies that under concurrent overflow the
// retained prefix still holds only genuine claimed positions and the
// counter holds the true total.
func TestConcurrentOverflow(t *testing.T) {
	const (
		capacity   = 64
		goroutines = 16
		perG       = 100
	)

	c := New(capacity)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				c.Claim(int64(g*perG + i))
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*perG), c.Total())
	assert.True(t, c.Truncated())

	got := c.Positions()
	require.Len(t, got, capacity)

	seen := make(map[int64]bool, capacity)
	for _, pos := range got {
		assert.GreaterOrEqual(t, pos, int64(0))
		assert.Less(t, pos, int64(goroutines*perG))
		assert.False(t, seen[pos], "position %d retained twice", pos)
		seen[pos] = true
	}
}
