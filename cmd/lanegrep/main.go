// Command lanegrep searches for a fixed pattern in a file or on stdin,
// dispatching the per-offset comparisons across parallel lanes, and prints
// matching lines grep-style.
//
// Usage:
//
//	lanegrep <pattern> [file]
//
// Exit codes: 0 on a completed search (even with zero matches), 1 on a
// usage error, 2 when the compute backend cannot be initialized or the
// kernel fails to compile.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/lanegrep"
	"github.com/hupe1980/lanegrep/input"
	"github.com/hupe1980/lanegrep/linemap"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitBackend = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(stderr, "Usage: lanegrep <pattern> [file]")
		return exitUsage
	}
	pattern := args[0]

	logger := lanegrep.NewLogger(nil)
	if os.Getenv("LANEGREP_DEBUG") != "" {
		logger = lanegrep.NewTextLogger(slog.LevelDebug)
	}

	filename := "stdin"
	var text *input.Text
	var err error
	if len(args) == 2 {
		filename = args[1]
		text, err = input.Open(filename)
	} else {
		text, err = input.Slurp(stdin)
	}
	if err != nil {
		// Unreadable input degrades to an empty search, not a failure.
		fmt.Fprintf(stderr, "cannot read %s: %v\n", filename, err)
		text = new(input.Text)
	}
	defer text.Close()

	data := text.Bytes()
	if len(data) == 0 || len(pattern) == 0 {
		fmt.Fprintf(stdout, "Found 0 matches for '%s' in file '%s'\n", pattern, filename)
		return exitOK
	}

	eng, err := lanegrep.New(lanegrep.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitBackend
	}
	defer eng.Close()

	res, err := eng.Search(context.Background(), data, []byte(pattern))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitBackend
	}

	ix := linemap.New(data)
	rep := linemap.Report{
		Filename:  filename,
		Pattern:   pattern,
		Positions: res.Positions,
		Total:     res.Total,
		Capacity:  res.Capacity,
	}
	if err := rep.Render(stdout, stderr, ix); err != nil {
		fmt.Fprintln(stderr, err)
		return exitBackend
	}

	logger.Debug("search complete",
		"matches", res.Total,
		"distinct_lines", rep.MatchedLines(ix).GetCardinality(),
	)
	return exitOK
}
