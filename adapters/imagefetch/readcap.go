package imagefetch

import (
	"fmt"
	"io"
)

// readCapped reads at most max bytes, rejecting larger payloads instead of
// truncating them.
func readCapped(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("payload exceeds %d bytes", max)
	}
	return data, nil
}
