package kernel

// Program is a device kernel source asset. The source is compiled at
// runtime by whatever backend executes it; the version tracks semantic
// revisions of the source text so hosts can log what they dispatched.
type Program struct {
	Name    string
	Version int
	Source  string
}

// EntryPoint is the kernel function name declared by Match.Source and
// registered by this package's host implementation.
const EntryPoint = "match_kernel"

// Match is the exact substring-matching program. One thread tests a block
// of `stride` consecutive starting offsets, comparing pattern bytes right
// to left, and claims a result slot through the atomic counter on each
// full match.
//
// v2 loops over its whole strided block; v1 tested a single offset per
// thread and could not be launched with stride > 1.
var Match = Program{
	Name:    EntryPoint,
	Version: 2,
	Source:  matchSource,
}

const matchSource = `
#include <metal_stdlib>
using namespace metal;

kernel void match_kernel(
    device const char* text [[buffer(0)]],
    device const char* pattern [[buffer(1)]],
    device long* match_positions [[buffer(2)]],
    device atomic_int* match_count [[buffer(3)]],
    constant uint& stride [[buffer(4)]],
    constant uint& max_matches [[buffer(5)]],
    uint tid [[thread_position_in_grid]])
{
    // Buffers are null-terminated; lengths are rediscovered on-device.
    uint text_length = 0;
    while (text[text_length] != '\0') text_length++;

    uint pattern_length = 0;
    while (pattern[pattern_length] != '\0') pattern_length++;

    if (pattern_length == 0 || text_length < pattern_length) return;

    uint last = text_length - pattern_length;
    uint lo = tid * stride;

    for (uint p = lo; p < lo + stride; ++p) {
        if (p > last) break;

        int j = pattern_length - 1;
        while (j >= 0 && pattern[j] == text[p + j]) {
            j--;
        }

        if (j < 0) {
            int k = atomic_fetch_add_explicit(match_count, 1, memory_order_relaxed);
            if (k < (int)max_matches) {
                match_positions[k] = (long)p;
            }
        }
    }
}
`
