package cli

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newImportReader wraps r for import parsing: the UTF-8 BOM that Windows
// spreadsheet tools prepend is stripped and invalid UTF-8 bytes are replaced
// with '?'. The wrapping streams, so large files never load whole.
func newImportReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return &sanitizedReader{r: br}
}

// sanitizedReader replaces invalid UTF-8 sequences with '?' on the fly. A
// multi-byte rune split across two reads is held in pending until the rest
// arrives.
type sanitizedReader struct {
	r       io.Reader
	pending []byte
}

func (s *sanitizedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := 0
	if len(s.pending) > 0 {
		offset = copy(p, s.pending)
		s.pending = s.pending[:0]
	}

	n, err := s.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	if allASCII(p[:n]) {
		return n, err
	}
	return s.sanitize(p[:n], err == io.EOF), err
}

// allASCII is the fast path; most import data never leaves ASCII.
func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// sanitize rewrites data in place, replacing invalid bytes with '?'. Unless
// atEOF, an incomplete trailing sequence is saved to pending instead of
// being rewritten. Returns the number of bytes kept.
func (s *sanitizedReader) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && incompleteRune(data[read:]) {
				s.pending = append(s.pending, data[read:]...)
				return write
			}
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

// incompleteRune reports whether tail starts a multi-byte sequence that
// needs more bytes than tail holds.
func incompleteRune(tail []byte) bool {
	if len(tail) == 0 || len(tail) >= utf8.UTFMax {
		return false
	}
	b := tail[0]
	var want int
	switch {
	case b < 0x80:
		want = 1
	case b < 0xC0:
		return false // stray continuation byte, always invalid
	case b < 0xE0:
		want = 2
	case b < 0xF0:
		want = 3
	default:
		want = 4
	}
	return want > len(tail)
}
