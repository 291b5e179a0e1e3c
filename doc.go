// Package lanegrep is a single-pattern exact substring search engine that
// offloads per-offset comparison work to a massively parallel backend and
// maps the resulting byte offsets back to source lines for grep-style
// reporting.
//
// # Architecture
//
// A search flows through four stages:
//
//   - grid plans the launch: every valid starting offset in the text is
//     assigned to exactly one lane.
//   - device compiles the kernel program and executes all lanes of one
//     launch, blocking until they complete. The shipped backend schedules
//     lanes across host goroutines.
//   - collector gathers match positions from concurrently matching lanes
//     through an atomic claim-a-slot protocol with a fixed capacity and a
//     true-count overflow counter.
//   - linemap resolves retained positions to line numbers and renders the
//     report.
//
// Engine is the host coordinator tying these together: it compiles the
// program once at construction (a compile failure is fatal and nothing is
// ever dispatched), allocates fresh result buffers per search, submits a
// single launch, and performs the one blocking wait after which results
// are safe to read.
//
// Lanes have no ordering guarantees relative to each other, and result
// positions are in slot-claim order, not offset order.
package lanegrep
