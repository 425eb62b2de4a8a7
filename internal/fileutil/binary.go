package fileutil

import (
	"errors"
	"io"
	"os"
)

// binaryProbeSize is how many leading bytes are inspected for a NUL byte.
const binaryProbeSize = 512

// IsBinary reports whether the file's leading bytes contain a NUL byte,
// the same heuristic editors and search tools use to avoid dumping binary
// content to a terminal.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, binaryProbeSize)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	for _, b := range buf[:n] {
		if b == 0 {
			return true, nil
		}
	}
	return false, nil
}
