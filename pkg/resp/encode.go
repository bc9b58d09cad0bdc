package resp

import "strconv"

var crlf = []byte("\r\n")

// Encode returns the canonical wire encoding of v.
func Encode(v Value) []byte {
	return AppendEncode(nil, v)
}

// AppendEncode appends the canonical wire encoding of v to dst.
func AppendEncode(dst []byte, v Value) []byte {
	switch v.kind {
	case KindSimpleString:
		dst = append(dst, '+')
		dst = append(dst, v.text...)
		return append(dst, crlf...)
	case KindError:
		dst = append(dst, '-')
		dst = append(dst, v.text...)
		return append(dst, crlf...)
	case KindInteger:
		dst = append(dst, ':')
		dst = strconv.AppendInt(dst, v.num, 10)
		return append(dst, crlf...)
	case KindArray:
		if !v.present {
			return append(dst, "*-1\r\n"...)
		}
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v.elems)), 10)
		dst = append(dst, crlf...)
		for _, e := range v.elems {
			dst = AppendEncode(dst, e)
		}
		return dst
	default:
		if !v.present {
			return append(dst, "$-1\r\n"...)
		}
		dst = append(dst, '$')
		dst = strconv.AppendInt(dst, int64(len(v.text)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.text...)
		return append(dst, crlf...)
	}
}
