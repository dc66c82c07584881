// Package meta parses the LaTeX-flavored article metadata grammar.
//
// Every parser consumes a prefix of its input and returns the remainder.
// Returned spans alias the input buffer and are only valid while the
// buffer is.
package meta

import "bytes"

// parMarker terminates field values in the source grammar.
var parMarker = []byte(`\par`)

// space consumes the maximal prefix of space, tab, CR and LF bytes.
// It never fails.
func space(in []byte) []byte {
	i := 0
	for i < len(in) {
		switch in[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return in[i:]
		}
	}
	return in[i:]
}

// paragraph skips leading whitespace and consumes bytes up to the next
// \par marker, which is consumed and discarded. If no marker occurs the
// whole remaining input is the field body (the trailing-field case).
// The body is not trimmed on the right.
func paragraph(in []byte) (body, rest []byte) {
	in = space(in)
	i := bytes.Index(in, parMarker)
	if i < 0 {
		return in, in[len(in):]
	}
	return in[:i], in[i+len(parMarker):]
}
