package surface

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"xtouch-bridge/debug"
)

const (
	NumSegments = 12

	segmentCommand = 0x37
	dotsPerWord    = 7
)

// glyphs maps characters to 7-segment patterns, bit order GFEDCBA.
// k, m, v, w and z have no readable shape (v and z would read as u and 2).
var glyphs = map[rune]byte{
	'0': 0b0111111,
	'1': 0b0000110,
	'2': 0b1011011,
	'3': 0b1001111,
	'4': 0b1100110,
	'5': 0b1101101,
	'6': 0b1111101,
	'7': 0b0000111,
	'8': 0b1111111,
	'9': 0b1101111,
	'a': 0b1110111,
	'b': 0b1111100,
	'c': 0b0111001,
	'd': 0b1011110,
	'e': 0b1111001,
	'f': 0b1110001,
	'g': 0b0111101,
	'h': 0b1110100,
	'i': 0b0000100,
	'j': 0b0011110,
	'l': 0b0111000,
	'n': 0b0110111,
	'o': 0b1011100,
	'p': 0b1110011,
	'q': 0b1100111,
	'r': 0b1010000,
	's': 0b1101101,
	't': 0b1111000,
	'u': 0b0011100,
	'x': 0b1110110,
	'y': 0b1101110,
	'-': 0b1000000,
	' ': 0b0000000,
}

// Glyph returns the segment pattern for a character (case-insensitive)
func Glyph(r rune) (byte, bool) {
	g, ok := glyphs[toLower(r)]
	return g, ok
}

// GlyphChar reverses Glyph. Patterns shared by several characters ('5'
// and 's') resolve to the digit.
func GlyphChar(pattern byte) (rune, bool) {
	var best rune
	found := false
	for r, g := range glyphs {
		if g != pattern {
			continue
		}
		if !found || r < best {
			best, found = r, true
		}
	}
	return best, found
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// RenderSegments builds the segment display frame:
// F0 00 20 32 14 37 <12 segments> <dots 0-6> <dots 7-11> F7
func RenderSegments(segments [NumSegments]byte, dots [2]byte) []byte {
	frame := make([]byte, 0, len(sysExHeader)+1+NumSegments+2+1)
	frame = append(frame, sysExHeader...)
	frame = append(frame, segmentCommand)
	frame = append(frame, segments[:]...)
	frame = append(frame, dots[:]...)
	return append(frame, sysExEnd)
}

// dotBit locates the dot of a segment slot: slots 0-6 live in the first
// dot byte, 7-11 in the second
func dotBit(idx int) (word int, mask byte) {
	if idx < dotsPerWord {
		return 0, 1 << idx
	}
	return 1, 1 << (idx - dotsPerWord)
}

// Dot reports whether the dot after slot idx is lit
func (st *State) Dot(idx int) bool {
	if idx < 0 || idx >= NumSegments {
		return false
	}
	w, m := dotBit(idx)
	return st.Dots[w]&m != 0
}

// SetSegmentText writes text into the display starting at slot start and
// re-renders it. A '.' lights the dot of the previous slot without taking
// a slot. Text past slot 11 is dropped with a warning; characters without
// a glyph are skipped with a warning but still take their slot.
func (s *Surface) SetSegmentText(start int, text string) error {
	if start < 0 || start >= NumSegments {
		debug.Error("segment", "index %d out of range (0-%d)", start, NumSegments-1)
		return fmt.Errorf("segment index %d: %w", start, ErrIndexOutOfRange)
	}

	if width := utf8.RuneCountInString(text) - strings.Count(text, "."); start+width > NumSegments {
		debug.Warn("segment", "text %q doesn't fit from slot %d and will be cut off", text, start)
	}

	idx := start
	for _, r := range text {
		if r == '.' {
			// the dot belongs to the slot we just wrote
			if idx > 0 {
				w, m := dotBit(idx - 1)
				s.Dots[w] |= m
			}
			continue
		}
		if idx >= NumSegments {
			break
		}

		if g, ok := Glyph(r); ok {
			s.Segments[idx] = g
			w, m := dotBit(idx)
			s.Dots[w] &^= m
		} else {
			debug.Warn("segment", "char %q is not a valid segment character", r)
		}
		idx++
	}

	return s.flushSegments()
}

// ClearSegments blanks every slot and dot
func (s *Surface) ClearSegments() error {
	s.Segments = [NumSegments]byte{}
	s.Dots = [2]byte{}
	return s.flushSegments()
}

func (s *Surface) flushSegments() error {
	if err := s.out.WriteSysEx(RenderSegments(s.Segments, s.Dots)); err != nil {
		return fmt.Errorf("segment display: %w", err)
	}
	return nil
}
