// Package input materializes search corpora into memory. The search
// operates on a whole in-memory buffer, so every source is fully read (or
// mapped) before any dispatch: plain files are mmap'd read-only, compressed
// files are decompressed up front, and stdin is slurped to EOF.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Text is an in-memory corpus. Close releases the backing mapping, if any;
// Bytes must not be used afterwards. The zero value is an empty corpus.
type Text struct {
	data  []byte
	close func() error
}

// Bytes returns the corpus contents. The slice is read-only for mapped
// sources.
func (t *Text) Bytes() []byte { return t.data }

// Close releases any resources backing the corpus.
func (t *Text) Close() error {
	if t.close == nil {
		return nil
	}
	c := t.close
	t.close = nil
	return c()
}

// Slurp reads r to EOF into a heap-backed Text. Used for stdin and for
// decompressed streams.
func Slurp(r io.Reader) (*Text, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return &Text{data: data}, nil
}

// Open materializes the file at path. Inputs named *.gz, *.zst or *.lz4
// are decompressed in full; anything else is mapped read-only into memory
// with a sequential-access hint.
func Open(path string) (*Text, error) {
	switch filepath.Ext(path) {
	case ".gz", ".zst", ".lz4":
		return openCompressed(path)
	}
	return openMapped(path)
}

func openCompressed(path string) (*Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer zr.Close()
		return Slurp(zr)

	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd %s: %w", path, err)
		}
		defer zr.Close()
		return Slurp(zr)

	case ".lz4":
		return Slurp(lz4.NewReader(f))
	}

	// Unreachable: Open routes only known extensions here.
	return nil, fmt.Errorf("unsupported compressed input %s", path)
}
