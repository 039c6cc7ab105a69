package cipher

import "unicode/utf8"

// glyphBytes returns the UTF-8 encoding of a single code point glyph.
func glyphBytes(g rune) []byte {
	buf := make([]byte, utf8.RuneLen(g))
	utf8.EncodeRune(buf, g)
	return buf
}
