package device

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lanegrep/collector"
	"github.com/hupe1980/lanegrep/grid"
)

// laneProbeSource declares the probe kernel registered below: each lane
// claims every offset in its span, turning the collector into a record of
// which offsets were visited.
const laneProbeSource = `
kernel void lane_probe(device long* match_positions [[buffer(2)]],
                       device atomic_int* match_count [[buffer(3)]],
                       uint tid [[thread_position_in_grid]])
{
}
`

func init() {
	RegisterKernel("lane_probe", func(lane int, g grid.Grid, b *Bindings) {
		lo, hi := g.LaneSpan(lane)
		for p := lo; p < hi; p++ {
			b.Out.Claim(p)
		}
	})
}

func TestParseEntryPoint(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr error
	}{
		{"plain", "kernel void grep_kernel(device const char* t)", "grep_kernel", nil},
		{"leading text", "#include <metal_stdlib>\nkernel void match_kernel(\n  uint tid)", "match_kernel", nil},
		{"no kernel", "void helper(int x) {}", "", ErrNoEntryPoint},
		{"missing paren", "kernel void broken", "", ErrNoEntryPoint},
		{"empty name", "kernel void (int x)", "", ErrNoEntryPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntryPoint(tt.source)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileUnknownKernel(t *testing.T) {
	dev := NewGoroutine(0)
	defer dev.Close()

	_, err := dev.Compile("kernel void never_registered(uint tid)")
	require.ErrorIs(t, err, ErrUnknownKernel)
	assert.Contains(t, err.Error(), "never_registered")
}

func TestCompileOnClosedDevice(t *testing.T) {
	dev := NewGoroutine(0)
	require.NoError(t, dev.Close())

	_, err := dev.Compile(laneProbeSource)
	assert.ErrorIs(t, err, ErrDeviceClosed)
}

func TestDispatchAfterClose(t *testing.T) {
	dev := NewGoroutine(0)
	pipe, err := dev.Compile(laneProbeSource)
	require.NoError(t, err)
	require.NoError(t, dev.Close())

	g := grid.Plan(8, 1, 1)
	err = pipe.Dispatch(context.Background(), g, &Bindings{Out: collector.New(8)})
	assert.ErrorIs(t, err, ErrDeviceClosed)
}

func TestDispatchEmptyGridIsNoop(t *testing.T) {
	dev := NewGoroutine(0)
	defer dev.Close()

	pipe, err := dev.Compile(laneProbeSource)
	require.NoError(t, err)

	out := collector.New(8)
	g := grid.Plan(2, 4, 1) // pattern longer than text: zero lanes
	require.True(t, g.Empty())

	require.NoError(t, pipe.Dispatch(context.Background(), g, &Bindings{Out: out}))
	assert.Equal(t, int64(0), out.Total())
}

// TestDispatchRunsEveryLaneOnce launches the probe kernel across a range
// of geometries and worker counts and verifies each valid offset was
// visited exactly once, concurrently.
func TestDispatchRunsEveryLaneOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 8, 0} {
		for _, stride := range []int{1, 3, 17} {
			dev := NewGoroutine(workers)
			pipe, err := dev.Compile(laneProbeSource)
			require.NoError(t, err)

			const textLen, patternLen = 1000, 3
			valid := textLen - patternLen + 1

			g := grid.Plan(textLen, patternLen, stride)
			out := collector.New(valid)

			require.NoError(t, pipe.Dispatch(context.Background(), g, &Bindings{Out: out}))
			require.Equal(t, int64(valid), out.Total(),
				"workers=%d stride=%d", workers, stride)

			got := append([]int64(nil), out.Positions()...)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			for i, pos := range got {
				require.Equal(t, int64(i), pos, "workers=%d stride=%d", workers, stride)
			}

			require.NoError(t, dev.Close())
		}
	}
}

func TestDispatchCancelledContext(t *testing.T) {
	dev := NewGoroutine(0)
	defer dev.Close()

	pipe, err := dev.Compile(laneProbeSource)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := grid.Plan(100, 1, 1)
	err = pipe.Dispatch(ctx, g, &Bindings{Out: collector.New(100)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultDevice(t *testing.T) {
	dev := Default()
	defer dev.Close()

	assert.Equal(t, "goroutine", dev.Name())
}

func TestRegisterKernelPanics(t *testing.T) {
	assert.Panics(t, func() { RegisterKernel("nil_fn", nil) })
	assert.Panics(t, func() {
		RegisterKernel("lane_probe", func(int, grid.Grid, *Bindings) {})
	})
}
