//go:build !windows

package input

import (
	"os"

	"golang.org/x/sys/unix"
)

func openMapped(path string) (*Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &Text{}, nil
	}
	if !info.Mode().IsRegular() || size > maxInt {
		return Slurp(f)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		// Some filesystems refuse mmap; fall back to a plain read.
		return Slurp(f)
	}

	// Advisory only; alignment quirks make this fail on some kernels.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &Text{
		data:  data,
		close: func() error { return unix.Munmap(data) },
	}, nil
}

const maxInt = int64(^uint(0) >> 1)
