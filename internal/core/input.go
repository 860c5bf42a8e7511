package core

// input.go prepares raw file bytes for CSV parsing.
//
// The whole dataset is materialized in memory, so the fixes are applied to
// the byte slice in one pass rather than through wrapping readers:
//
//   - the UTF-8 byte order mark written by Windows tools is removed
//   - invalid UTF-8 sequences are replaced with U+FFFD

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sanitizeInput strips a leading BOM and repairs invalid UTF-8.
func sanitizeInput(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return sanitizeUTF8(data)
}

// sanitizeUTF8 replaces each invalid byte with the replacement character.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
			data = data[1:]
			continue
		}
		buf.Write(data[:size])
		data = data[size:]
	}

	return buf.Bytes()
}
