package recordio

import (
	"bufio"
	"bytes"
)

// SplitFunc adapts s to a bufio.SplitFunc. Tokens include the trailing \n.
// At EOF whatever is left is returned as the last token, delimited or not.
func SplitFunc(s Splitter) bufio.SplitFunc {
	maxLines := linesPerRecord(s)

	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if len(data) == 0 {
			return 0, nil, nil
		}

		end := s.LocateNextRecord(data, 0)
		if end != NoRecord {
			// bufio hands over arbitrary chunks, so a short record is only
			// final once the reader is drained
			if !atEOF && end == len(data) && bytes.Count(data, []byte{LineDelimiter}) < maxLines {
				return 0, nil, nil
			}
			return end, data[:end], nil
		}

		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	}
}
