package resp

import (
	"bufio"
	"errors"
	"io"
)

const defaultReadSize = 4096

// Reader decodes a stream of values from an io.Reader. It keeps bytes that
// arrived ahead of the current value for the next call, so pipelined input is
// handled naturally.
type Reader struct {
	rd    io.Reader
	dec   *Decoder
	buf   []byte
	start int
	end   int
}

// NewReader returns a Reader using DefaultLimits.
func NewReader(rd io.Reader) *Reader {
	return NewReaderSize(rd, defaultReadSize, DefaultLimits())
}

// NewReaderSize returns a Reader with an initial buffer of size bytes. The
// buffer grows as needed up to what limits allow for a single value.
func NewReaderSize(rd io.Reader, size int, limits Limits) *Reader {
	if size <= 0 {
		size = defaultReadSize
	}
	return &Reader{
		rd:  rd,
		dec: NewDecoder(limits),
		buf: make([]byte, size),
	}
}

// ReadValue returns the next value. A *ParseError leaves the offending bytes
// buffered; call Discard to drop them before reading again. Read errors from
// the underlying reader are returned as is, except that EOF in the middle of
// a value becomes io.ErrUnexpectedEOF.
func (r *Reader) ReadValue() (Value, error) {
	for {
		if r.end > r.start {
			v, n, err := r.dec.Decode(r.buf[r.start:r.end])
			if err == nil {
				r.start += n
				if r.start == r.end {
					r.start, r.end = 0, 0
				}
				return v, nil
			}
			if !errors.Is(err, ErrIncomplete) {
				return Value{}, err
			}
		}

		if err := r.fill(); err != nil {
			if errors.Is(err, io.EOF) && r.end > r.start {
				return Value{}, io.ErrUnexpectedEOF
			}
			return Value{}, err
		}
	}
}

// Buffered reports how many received bytes have not been decoded yet.
func (r *Reader) Buffered() int {
	return r.end - r.start
}

// Discard drops all buffered bytes and returns how many were dropped.
func (r *Reader) Discard() int {
	n := r.end - r.start
	r.start, r.end = 0, 0
	return n
}

// fill reads at least one more byte into the buffer, compacting or growing
// it first when there is no free space at the end.
func (r *Reader) fill() error {
	if r.start > 0 {
		copy(r.buf, r.buf[r.start:r.end])
		r.end -= r.start
		r.start = 0
	}
	if r.end == len(r.buf) {
		grown := make([]byte, 2*len(r.buf))
		copy(grown, r.buf[:r.end])
		r.buf = grown
	}

	n, err := r.rd.Read(r.buf[r.end:])
	r.end += n
	if n > 0 {
		return nil
	}
	if err == nil {
		return io.ErrNoProgress
	}
	return err
}

// Writer encodes values onto a buffered stream.
type Writer struct {
	bw      *bufio.Writer
	scratch []byte
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteValue buffers the encoding of v. Call Flush to send it.
func (w *Writer) WriteValue(v Value) error {
	w.scratch = AppendEncode(w.scratch[:0], v)
	_, err := w.bw.Write(w.scratch)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
