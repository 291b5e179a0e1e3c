//go:build windows

package input

import "os"

func openMapped(path string) (*Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Text{data: data}, nil
}
