package recordio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Tailer follows a growing file and hands complete records to a consumer in batches.
type Tailer struct {
	fd             io.ReadSeeker
	buf            []byte
	splitter       Splitter
	logger         *slog.Logger
	StartingByte   int64
	StartingRecord int
}

type TailerOption func(*Tailer)

func WithTailSplitter(splitter Splitter) TailerOption {
	return func(t *Tailer) {
		t.splitter = splitter
	}
}

func WithLogger(logger *slog.Logger) TailerOption {
	return func(t *Tailer) {
		t.logger = logger
	}
}

// NewTailer allocates a buffer of bufSize bytes. A bufSize below 1 makes Tail fail with ErrInvalidBufferSize.
func NewTailer(fd io.ReadSeeker, bufSize int, opts ...TailerOption) *Tailer {
	if bufSize < 0 {
		bufSize = 0
	}

	t := &Tailer{
		fd:             fd,
		buf:            make([]byte, bufSize),
		splitter:       SingleLineSplitter{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		StartingByte:   0,
		StartingRecord: 1,
	}

	for i := range opts {
		opts[i](t)
	}

	return t
}

// Tail blocks until ctx is done, consume returns an error, or a record cannot fit in the buffer.
// Every call to consume gets a fresh slice, but Raw of each Record points into the internal
// buffer and is only valid during consume; use Copy to keep it.
// Returning ErrEndOfTail from consume stops tailing without an error.
func (t *Tailer) Tail(ctx context.Context, backoff time.Duration, consume func([]Record) error) error {
	if len(t.buf) == 0 {
		return fmt.Errorf("%w: tailer buffer is empty", ErrInvalidBufferSize)
	}

	_, err := t.fd.Seek(t.StartingByte, io.SeekStart)
	if err != nil {
		return err
	}

	maxLines := linesPerRecord(t.splitter)
	offsetInFile := t.StartingByte // file offset of buf[0]
	recno := t.StartingRecord - 1
	dataEnd := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := t.fd.Read(t.buf[dataEnd:])
		if err != nil && err != io.EOF {
			return err
		}

		dataEnd += n
		drained := err == io.EOF
		if n > 0 || (drained && dataEnd > 0) {
			var records []Record
			pos := 0
			for {
				end := t.splitter.LocateNextRecord(t.buf[:dataEnd], pos)
				if end == NoRecord {
					break
				}

				raw := t.buf[pos:end]
				lines := bytes.Count(raw, []byte{LineDelimiter})
				if lines < maxLines && !drained && end < len(t.buf) {
					t.logger.Debug("short record deferred until the file is drained",
						slog.Int64("offset", offsetInFile+int64(pos)), slog.Int("lines", lines))
					break
				}

				recno++
				records = append(records, Record{
					No:    recno,
					Start: offsetInFile + int64(pos),
					End:   offsetInFile + int64(end),
					Lines: lines,
					Raw:   raw,
				})
				pos = end
			}

			if len(records) > 0 {
				if err := consume(records); err != nil {
					if errors.Is(err, ErrEndOfTail) {
						return nil
					}
					return err
				}
			}

			if pos == 0 && dataEnd == len(t.buf) {
				return ErrRecordTooLong
			}

			offsetInFile += int64(pos)
			dataEnd = copy(t.buf, t.buf[pos:dataEnd])
		}

		if drained {
			t.logger.Debug("reached end of file, backing off",
				slog.Int64("offset", offsetInFile+int64(dataEnd)), slog.Duration("backoff", backoff))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}

			// reset EOF
			if _, err := t.fd.Seek(0, io.SeekCurrent); err != nil {
				return err
			}
		}
	}
}
