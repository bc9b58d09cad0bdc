// Package resp implements the RESP2 wire format used by respkv.
//
// The codec maps raw bytes to a typed Value tree and back:
//
//	+<text>\r\n                 simple string
//	-<text>\r\n                 error
//	:<integer>\r\n              integer
//	$<len>\r\n<bytes>\r\n       bulk string ($-1\r\n is the null bulk string)
//	*<count>\r\n<values...>     array (*-1\r\n is the null array)
//
// Decoding is incremental. Decode reports ErrIncomplete when the buffer ends
// before a value is complete, so a caller can read more bytes and retry. Any
// other error is a *ParseError wrapping ErrProtocol or ErrLimitExceeded.
//
// Encoding is total and canonical: every Value has exactly one encoding.
package resp
