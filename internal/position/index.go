// Package position converts byte offsets in a source text into the
// line/character pairs editors expect. Characters are UTF-16 code units.
package position

import (
	"fmt"
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Index records the byte offset at which each line of a text starts
type Index struct {
	text       string
	lineStarts []int
}

// NewIndex scans text once for line breaks
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Position returns the 0-based line and UTF-16 character of byteOffset.
// Offsets past the end of the text clamp to the end.
func (x *Index) Position(byteOffset int) (line, character uint32) {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset > len(x.text) {
		byteOffset = len(x.text)
	}
	// first line start strictly greater than the offset, minus one
	l := sort.SearchInts(x.lineStarts, byteOffset+1) - 1
	start := x.lineStarts[l]
	return uint32(l), uint32(UTF16Len(x.text[start:byteOffset]))
}

// UTF16Len returns the length of s in UTF-16 code units. Invalid bytes
// count as one unit each.
func UTF16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			n++
		} else {
			n += utf16.RuneLen(r)
		}
		s = s[size:]
	}
	return n
}

// Lines returns the number of lines in the text
func (x *Index) Lines() int {
	return len(x.lineStarts)
}

// Offset returns the byte offset of a 0-based line and UTF-16 character.
// A character past the end of its line clamps to the line end; a line past
// the end of the text is an error.
func (x *Index) Offset(line, character uint32) (int, error) {
	if int(line) >= len(x.lineStarts) {
		return 0, fmt.Errorf("line %d out of range (%d lines)", line, len(x.lineStarts))
	}
	start := x.lineStarts[line]
	end := len(x.text)
	if int(line)+1 < len(x.lineStarts) {
		end = x.lineStarts[line+1] - 1
	}

	units := 0
	for i := start; i < end; {
		if units >= int(character) {
			return i, nil
		}
		r, size := utf8.DecodeRuneInString(x.text[i:end])
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return end, nil
}
