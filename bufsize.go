package recordio

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// ParseBufSize parses sizes like "4KiB" or "64k" into a buffer length usable by NewScanner and NewTailer.
func ParseBufSize(s string) (int, error) {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidBufferSize, s, err)
	}

	if size < 1 || size > math.MaxInt {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidBufferSize, s)
	}

	return int(size), nil
}
