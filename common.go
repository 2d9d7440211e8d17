package recordio

import "errors"

var ErrEndOfTail error = errors.New("end of tail")
var ErrRecordTooLong error = errors.New("a record doesnot fit in the buffer")
var ErrInvalidLinesPerRecord error = errors.New("lines per record must be at least 1")
var ErrInvalidBufferSize error = errors.New("buffer size must be at least 1 byte")

type Record struct {
	// No is the number of current record, starting from 1
	No int
	// Start is the offset of the first byte of current record in the File, staring from 0
	Start int64
	// End is the offset right after the last \n of current record, i.e. where the next record starts
	End int64
	// Lines is the number of \n in Raw
	Lines int
	// Raw holds the record content, including every \n
	Raw []byte
}

func (r Record) Copy() Record {
	raw := make([]byte, len(r.Raw))
	copy(raw, r.Raw)
	r.Raw = raw
	return r
}
