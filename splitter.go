package recordio

import "fmt"

// LineDelimiter terminates every line. Matching is done on the raw byte value.
const LineDelimiter byte = '\n'

// NoRecord is returned by a Splitter when buf does not yet hold a complete record.
const NoRecord = -1

// Splitter locates record boundaries in a buffer of bytes read from a growing file.
//
// LocateNextRecord scans buf[pos:] and returns the offset right after the
// record(s) it found, which is where the next record starts. It returns
// NoRecord if more bytes are needed. The caller's cursor is never moved on
// NoRecord, so the same pos can be retried once more data has been appended.
//
// A Splitter that may cut a record short at the end of buf should also
// implement LinesPerRecorder, so streaming callers can hold the short record
// back until the source is drained. Splitters without it are taken to return
// one line per record.
type Splitter interface {
	LocateNextRecord(buf []byte, pos int) int
}

// LinesPerRecorder reports how many lines make a full record.
type LinesPerRecorder interface {
	MaxLinesPerRecord() int
}

func linesPerRecord(s Splitter) int {
	if l, ok := s.(LinesPerRecorder); ok {
		return l.MaxLinesPerRecord()
	}

	return 1
}

// NewSplitter returns a SingleLineSplitter for 1 and a MultiLineSplitter for anything larger.
func NewSplitter(linesPerRecord int) (Splitter, error) {
	if linesPerRecord == 1 {
		return SingleLineSplitter{}, nil
	}

	return NewMultiLineSplitter(linesPerRecord)
}

// SingleLineSplitter returns one record per line.
type SingleLineSplitter struct{}

func (SingleLineSplitter) MaxLinesPerRecord() int {
	return 1
}

func (SingleLineSplitter) LocateNextRecord(buf []byte, pos int) int {
	if pos < 0 {
		pos = 0
	}

	for i := pos; i < len(buf); i++ {
		if buf[i] == LineDelimiter {
			return i + 1
		}
	}

	return NoRecord
}

// MultiLineSplitter returns one record per maxLinesPerRecord lines. Fewer lines
// make a record only when the buffer ends exactly on a line boundary.
type MultiLineSplitter struct {
	maxLinesPerRecord int
}

func NewMultiLineSplitter(maxLinesPerRecord int) (*MultiLineSplitter, error) {
	if maxLinesPerRecord < 2 {
		return nil, fmt.Errorf("%w: multi-line splitter needs at least 2, got %d", ErrInvalidLinesPerRecord, maxLinesPerRecord)
	}

	return &MultiLineSplitter{maxLinesPerRecord: maxLinesPerRecord}, nil
}

func (s *MultiLineSplitter) MaxLinesPerRecord() int {
	return s.maxLinesPerRecord
}

func (s *MultiLineSplitter) LocateNextRecord(buf []byte, pos int) int {
	if pos < 0 {
		pos = 0
	}

	matchedLines := 0
	endedOnDelimiter := false
	for i := pos; i < len(buf); i++ {
		if buf[i] == LineDelimiter {
			endedOnDelimiter = true
			matchedLines++
			if matchedLines == s.maxLinesPerRecord {
				return i + 1
			}
		} else {
			endedOnDelimiter = false
		}
	}

	// a short record is fine as long as it ends on a full line
	if endedOnDelimiter {
		return len(buf)
	}

	return NoRecord
}
