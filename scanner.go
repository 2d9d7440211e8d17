package recordio

import (
	"bytes"
	"io"
	"os"
)

// Scanner reads records from fd into a fixed buffer. fd must already be
// positioned at the starting byte.
type Scanner struct {
	fd          *os.File
	buf         []byte
	splitter    Splitter
	maxLines    int
	recStartIdx int
	dataLen     int
	err         error
	eof         error
	lastrec     Record
}

type ScannerOption func(*Scanner)

// WithStartPos makes offsets start at startingByte and numbering at startingRecord.
func WithStartPos(startingByte int64, startingRecord int) ScannerOption {
	return func(s *Scanner) {
		s.lastrec.End = startingByte
		s.lastrec.No = startingRecord - 1
	}
}

func WithSplitter(splitter Splitter) ScannerOption {
	return func(s *Scanner) {
		s.splitter = splitter
	}
}

func NewScanner(fd *os.File, buf []byte, opts ...ScannerOption) Scanner {
	s := Scanner{
		fd:       fd,
		buf:      buf,
		splitter: SingleLineSplitter{},
	}

	for i := range opts {
		opts[i](&s)
	}

	s.maxLines = linesPerRecord(s.splitter)

	return s
}

func (s *Scanner) ResumeFromEOF() (bool, error) {
	if s.err != nil && s.err != io.EOF {
		return false, s.err
	}

	n, err := s.fd.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	fi, err := s.fd.Stat()
	if err != nil {
		return false, err
	}

	if n < fi.Size() {
		s.err = nil
		s.eof = nil
		return true, nil
	}

	return false, nil
}

func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	if s.dataLen == len(s.buf) && s.recStartIdx == s.dataLen {
		s.dataLen = 0
		s.recStartIdx = 0
	}

	if s.dataLen < len(s.buf) && s.eof == nil {
		n, err := s.fd.Read(s.buf[s.dataLen:])
		if n > 0 {
			s.dataLen += n
		}

		if err != nil {
			if err == io.EOF {
				s.eof = err
				// continue to read from buffer
			} else {
				s.err = err
				return false
			}
		}
	}

	end := s.splitter.LocateNextRecord(s.buf[:s.dataLen], s.recStartIdx)
	if end != NoRecord {
		raw := s.buf[s.recStartIdx:end]
		lines := bytes.Count(raw, []byte{LineDelimiter})
		// a short record may only be cut when nothing more can arrive
		if lines >= s.maxLines || s.eof != nil || (end == len(s.buf) && s.recStartIdx == 0) {
			s.lastrec.No++
			s.lastrec.Start = s.lastrec.End
			s.lastrec.End += int64(len(raw))
			s.lastrec.Lines = lines
			s.lastrec.Raw = raw
			s.recStartIdx = end

			return true
		}
	}

	if s.dataLen == len(s.buf) && s.recStartIdx == 0 {
		// the whole buffer does not contain a record.
		s.err = ErrRecordTooLong
		return false
	}

	if s.eof != nil {
		// both the buffer and file are consumed
		s.err = io.EOF
		return false
	}

	n := copy(s.buf, s.buf[s.recStartIdx:s.dataLen])
	s.dataLen = n
	s.recStartIdx = 0

	return s.Scan()
}

func (s Scanner) Record() Record {
	return s.lastrec
}

// Pending returns the bytes read but not yet part of any record, e.g. a last line without \n.
func (s Scanner) Pending() []byte {
	return s.buf[s.recStartIdx:s.dataLen]
}

func (s Scanner) Err() error {
	return s.err
}
