package resp

import (
	"bytes"
	"math"
)

// Limits bound the resources a single decoded value may claim.
type Limits struct {
	// MaxBulkLen is the largest accepted bulk string payload in bytes.
	MaxBulkLen int `koanf:"max_bulk_len" yaml:"max_bulk_len"`
	// MaxArrayLen is the largest accepted array element count.
	MaxArrayLen int `koanf:"max_array_len" yaml:"max_array_len"`
	// MaxDepth is the deepest accepted array nesting.
	MaxDepth int `koanf:"max_depth" yaml:"max_depth"`
	// MaxLineLen is the longest accepted header or simple string line.
	MaxLineLen int `koanf:"max_line_len" yaml:"max_line_len"`
}

// DefaultLimits returns limits matching the usual server defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxBulkLen:  512 * 1024 * 1024,
		MaxArrayLen: 1024 * 1024,
		MaxDepth:    32,
		MaxLineLen:  64 * 1024,
	}
}

// withDefaults fills zero fields from DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxBulkLen <= 0 {
		l.MaxBulkLen = d.MaxBulkLen
	}
	if l.MaxArrayLen <= 0 {
		l.MaxArrayLen = d.MaxArrayLen
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = d.MaxDepth
	}
	if l.MaxLineLen <= 0 {
		l.MaxLineLen = d.MaxLineLen
	}
	return l
}

// Decoder decodes values under a set of Limits. A Decoder holds no buffer
// state and is safe for concurrent use.
type Decoder struct {
	limits Limits
}

// NewDecoder returns a Decoder enforcing limits. Zero fields take defaults.
func NewDecoder(limits Limits) *Decoder {
	return &Decoder{limits: limits.withDefaults()}
}

var defaultDecoder = NewDecoder(DefaultLimits())

// Decode decodes the first value in buf with the default limits.
// See (*Decoder).Decode.
func Decode(buf []byte) (Value, int, error) {
	return defaultDecoder.Decode(buf)
}

// Decode decodes the first complete value in buf and returns it with the
// number of bytes it occupied. If buf holds only a prefix of a value the
// error is ErrIncomplete and nothing is consumed. Malformed input yields a
// *ParseError. Decoded payloads never alias buf.
//
// The value is validated in full before anything is allocated, so a caller
// retrying on ErrIncomplete as bytes arrive pays for each payload only once.
func (d *Decoder) Decode(buf []byte) (Value, int, error) {
	if _, _, err := d.decode(buf, 0, 0, false); err != nil {
		return Value{}, 0, err
	}
	v, next, err := d.decode(buf, 0, 0, true)
	if err != nil {
		return Value{}, 0, err
	}
	return v, next, nil
}

// decode parses the value at pos. With build false it only validates and
// measures the value, returning a zero Value without allocating.
func (d *Decoder) decode(buf []byte, pos, depth int, build bool) (Value, int, error) {
	if pos >= len(buf) {
		return Value{}, pos, ErrIncomplete
	}

	typ := buf[pos]
	switch typ {
	case '+', '-':
		line, next, err := d.readLine(buf, pos+1)
		if err != nil {
			return Value{}, pos, err
		}
		if !build {
			return Value{}, next, nil
		}
		kind := KindSimpleString
		if typ == '-' {
			kind = KindError
		}
		return Value{kind: kind, text: bytes.Clone(line)}, next, nil

	case ':':
		line, next, err := d.readLine(buf, pos+1)
		if err != nil {
			return Value{}, pos, err
		}
		n, ok := parseInt(line)
		if !ok {
			return Value{}, pos, protocolError(pos+1, "invalid integer %q", line)
		}
		return Integer(n), next, nil

	case '$':
		n, next, err := d.readLength(buf, pos, "bulk string length", d.limits.MaxBulkLen)
		if err != nil {
			return Value{}, pos, err
		}
		if n < 0 {
			return NullBulkString(), next, nil
		}
		end := next + n
		if len(buf) < end+2 {
			return Value{}, pos, ErrIncomplete
		}
		if buf[end] != '\r' || buf[end+1] != '\n' {
			return Value{}, pos, protocolError(end, "bulk string not terminated by CRLF")
		}
		if !build {
			return Value{}, end + 2, nil
		}
		return BulkString(bytes.Clone(buf[next:end])), end + 2, nil

	case '*':
		n, next, err := d.readLength(buf, pos, "array length", d.limits.MaxArrayLen)
		if err != nil {
			return Value{}, pos, err
		}
		if n < 0 {
			return NullArray(), next, nil
		}
		if depth >= d.limits.MaxDepth {
			return Value{}, pos, limitError(pos, "array nesting exceeds limit %d", d.limits.MaxDepth)
		}
		if !build {
			for i := 0; i < n; i++ {
				if _, next, err = d.decode(buf, next, depth+1, false); err != nil {
					return Value{}, pos, err
				}
			}
			return Value{}, next, nil
		}
		// The value is known to be complete here, so n elements follow.
		elems := make([]Value, n)
		for i := range elems {
			if elems[i], next, err = d.decode(buf, next, depth+1, true); err != nil {
				return Value{}, pos, err
			}
		}
		return Array(elems...), next, nil
	}

	return Value{}, pos, protocolError(pos, "unsupported type byte %q", typ)
}

// readLength reads a "$<n>" or "*<n>" header. It returns -1 for the null
// sentinel.
func (d *Decoder) readLength(buf []byte, pos int, what string, limit int) (int, int, error) {
	line, next, err := d.readLine(buf, pos+1)
	if err != nil {
		return 0, pos, err
	}
	n, ok := parseInt(line)
	if !ok {
		return 0, pos, protocolError(pos+1, "invalid %s %q", what, line)
	}
	switch {
	case n == -1:
		return -1, next, nil
	case n < 0:
		return 0, pos, protocolError(pos+1, "invalid %s %d", what, n)
	case n > int64(limit):
		return 0, pos, limitError(pos+1, "%s %d exceeds limit %d", what, n, limit)
	}
	return int(n), next, nil
}

// readLine returns the bytes between pos and the next CRLF, and the position
// just past the CRLF.
func (d *Decoder) readLine(buf []byte, pos int) ([]byte, int, error) {
	rest := buf[pos:]
	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		if len(rest) > d.limits.MaxLineLen+1 {
			return nil, pos, limitError(pos, "line length exceeds limit %d", d.limits.MaxLineLen)
		}
		return nil, pos, ErrIncomplete
	}
	if idx == 0 || rest[idx-1] != '\r' {
		return nil, pos, protocolError(pos+idx, "line not terminated by CRLF")
	}
	line := rest[:idx-1]
	if len(line) > d.limits.MaxLineLen {
		return nil, pos, limitError(pos, "line length exceeds limit %d", d.limits.MaxLineLen)
	}
	if i := bytes.IndexByte(line, '\r'); i >= 0 {
		return nil, pos, protocolError(pos+i, "unexpected CR inside line")
	}
	return line, pos + idx + 1, nil
}

// parseInt accepts an optional leading '-' followed by decimal digits only.
// It does not allocate.
func parseInt(b []byte) (int64, bool) {
	neg := len(b) > 0 && b[0] == '-'
	digits := b
	if neg {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}

	// Accumulate as a negative number so that math.MinInt64 fits.
	var n int64
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		dig := int64(c - '0')
		if n < (math.MinInt64+dig)/10 {
			return 0, false
		}
		n = n*10 - dig
	}
	if !neg {
		if n == math.MinInt64 {
			return 0, false
		}
		n = -n
	}
	return n, true
}
